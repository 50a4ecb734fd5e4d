package types

import (
	"fmt"

	"github.com/google/uuid"
)

// OrgSlug represents an organization slug on the remote service
type OrgSlug string

// String returns the string representation
func (s OrgSlug) String() string {
	return string(s)
}

// ProjectSlug represents a project slug within an organization
type ProjectSlug string

// String returns the string representation
func (s ProjectSlug) String() string {
	return string(s)
}

// IssueID represents an issue identifier issued by the remote service
type IssueID string

// String returns the string representation
func (id IssueID) String() string {
	return string(id)
}

// TargetKey identifies one (org, project) pair as "org/project"
type TargetKey string

// String returns the string representation
func (k TargetKey) String() string {
	return string(k)
}

// Alias is a short human-typable label for a target
type Alias string

// String returns the string representation
func (a Alias) String() string {
	return string(a)
}

// StateKey identifies one persisted listing state, derived from the query fingerprint
type StateKey string

// String returns the string representation
func (k StateKey) String() string {
	return string(k)
}

// RoundID identifies one dispatch/merge/finalize round for log correlation
type RoundID string

// String returns the string representation
func (id RoundID) String() string {
	return string(id)
}

// NewRoundID creates a new RoundID
func NewRoundID() RoundID {
	return RoundID(fmt.Sprintf("round-%s", uuid.New().String()))
}
