package model

import "github.com/secmon-lab/faultline/pkg/domain/types"

// Issue represents one issue as reported by the remote service.
// Timestamps are kept as the ISO-8601 strings the API returned; ordering
// over them is the comparator's job and absent values sort as oldest.
type Issue struct {
	ID        types.IssueID `json:"id"`
	ShortID   string        `json:"shortId"`
	Title     string        `json:"title"`
	Culprit   string        `json:"culprit,omitempty"`
	Level     string        `json:"level,omitempty"`
	Status    string        `json:"status,omitempty"`
	Priority  string        `json:"priority,omitempty"`
	Count     int64         `json:"count"`
	UserCount int64         `json:"userCount"`
	FirstSeen string        `json:"firstSeen,omitempty"`
	LastSeen  string        `json:"lastSeen,omitempty"`
	Permalink string        `json:"permalink,omitempty"`
}

// IssuePage is one page of issues returned for a single target.
// NextCursor is fully opaque; an empty value means the target is exhausted.
type IssuePage struct {
	Issues     []*Issue `json:"issues"`
	NextCursor string   `json:"nextCursor"`
}

// PageOptions carries the shared query parameters of one paginated fetch
type PageOptions struct {
	Query  string
	Sort   types.SortValue
	Limit  int
	Cursor string
}
