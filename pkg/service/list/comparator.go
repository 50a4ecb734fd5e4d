package list

import (
	"time"

	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
)

// CompareFunc orders two issues: negative when a sorts before b, zero
// when they tie. Ties are not broken here; the orchestrator's stable
// merge keeps per-target ordering for equal issues.
type CompareFunc func(a, b *model.Issue) int

// Comparator returns the ordering for a sort key. Every key sorts
// descending (most recent, highest count, highest priority first).
// An unknown key falls back to recency.
func Comparator(sort types.SortValue) CompareFunc {
	switch sort {
	case types.SortDate:
		return func(a, b *model.Issue) int {
			return CompareDates(a.LastSeen, b.LastSeen)
		}
	case types.SortNew:
		return func(a, b *model.Issue) int {
			return CompareDates(a.FirstSeen, b.FirstSeen)
		}
	case types.SortFreq:
		return func(a, b *model.Issue) int {
			return compareCounts(a.Count, b.Count)
		}
	case types.SortUser:
		return func(a, b *model.Issue) int {
			return compareCounts(a.UserCount, b.UserCount)
		}
	case types.SortPriority:
		return func(a, b *model.Issue) int {
			return compareCounts(priorityRank(a.Priority), priorityRank(b.Priority))
		}
	default:
		return func(a, b *model.Issue) int {
			return CompareDates(a.LastSeen, b.LastSeen)
		}
	}
}

// CompareDates orders two optional ISO-8601 timestamps, most recent
// first. A missing or unparseable timestamp sorts as the oldest possible
// value, so an issue that has a timestamp always sorts before one that
// does not.
func CompareDates(a, b string) int {
	ta := parseWhen(a)
	tb := parseWhen(b)
	switch {
	case ta.After(tb):
		return -1
	case ta.Before(tb):
		return 1
	default:
		return 0
	}
}

// parseWhen parses an ISO-8601 timestamp, treating absence as epoch
func parseWhen(s string) time.Time {
	if s == "" {
		return time.Unix(0, 0).UTC()
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}

// compareCounts orders two counters descending
func compareCounts(a, b int64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

// priorityRank maps the service's priority labels onto a comparable
// scale; unknown labels sort last
func priorityRank(priority string) int64 {
	switch priority {
	case "high":
		return 3
	case "medium":
		return 2
	case "low":
		return 1
	default:
		return 0
	}
}
