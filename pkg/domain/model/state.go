package model

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/secmon-lab/faultline/pkg/domain/types"
)

// ListState is the resumable state of one listing query: the compound
// cursor of the previous round. Keyed in the state store by the query
// fingerprint so that a later invocation with the same targets, query
// and sort can continue where it left off.
type ListState struct {
	Cursor  string    `yaml:"cursor"`
	SavedAt time.Time `yaml:"saved_at"`
}

// ListDefaults holds the stored default target selection
type ListDefaults struct {
	Org     types.OrgSlug     `yaml:"org"`
	Project types.ProjectSlug `yaml:"project"`
}

// Fingerprint derives a stable state key from the parameters that define
// one listing query. Target order matters: the compound cursor is
// index-aligned with the target list, so a reordered list is a different
// query.
func Fingerprint(targets []Target, query string, sort types.SortValue) types.StateKey {
	h := xxhash.New()
	for _, t := range targets {
		_, _ = h.WriteString(t.Key().String())
		_, _ = h.WriteString("\n")
	}
	_, _ = h.WriteString(query)
	_, _ = h.WriteString("\n")
	_, _ = h.WriteString(sort.String())
	return types.StateKey(fmt.Sprintf("%016x", h.Sum64()))
}
