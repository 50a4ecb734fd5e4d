package model

import (
	"fmt"

	"github.com/secmon-lab/faultline/pkg/domain/types"
)

// Target is one (organization, project) pair queried for issues.
// Identity is the pair; a target is immutable for the lifetime of one
// list operation.
type Target struct {
	Org     types.OrgSlug     `yaml:"org" json:"org"`
	Project types.ProjectSlug `yaml:"project" json:"project"`
}

// Key returns the identity of the target as "org/project"
func (t Target) Key() types.TargetKey {
	return types.TargetKey(fmt.Sprintf("%s/%s", t.Org, t.Project))
}

// String returns the string representation
func (t Target) String() string {
	return t.Key().String()
}

// DedupTargets removes duplicate targets while preserving the order of
// first appearance. The returned slice is always a fresh allocation.
func DedupTargets(targets []Target) []Target {
	seen := make(map[types.TargetKey]struct{}, len(targets))
	result := make([]Target, 0, len(targets))
	for _, t := range targets {
		key := t.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, t)
	}
	return result
}
