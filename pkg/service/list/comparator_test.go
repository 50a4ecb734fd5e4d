package list_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
	"github.com/secmon-lab/faultline/pkg/service/list"
)

func sampleIssues() []*model.Issue {
	return []*model.Issue{
		{ID: "1", Priority: "high", Count: 120, UserCount: 40, FirstSeen: "2026-08-01T10:00:00Z", LastSeen: "2026-08-28T09:30:00Z"},
		{ID: "2", Priority: "low", Count: 3, UserCount: 1, FirstSeen: "2026-08-20T00:00:00Z", LastSeen: "2026-08-27T23:59:59Z"},
		{ID: "3", Priority: "medium", Count: 55, UserCount: 55, FirstSeen: "2026-07-15T08:00:00Z", LastSeen: "2026-08-28T09:30:00Z"},
		{ID: "4", Priority: "", Count: 0, UserCount: 0},
		{ID: "5", Priority: "high", Count: 120, UserCount: 7, FirstSeen: "2026-08-25T12:00:00Z", LastSeen: "2026-08-26T00:00:00Z"},
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestComparatorLaws(t *testing.T) {
	issues := sampleIssues()

	for _, sv := range types.SortValues() {
		t.Run(sv.String(), func(t *testing.T) {
			cmp := list.Comparator(sv)
			for _, a := range issues {
				gt.Equal(t, cmp(a, a), 0)
				for _, b := range issues {
					gt.Equal(t, sign(cmp(a, b)), -sign(cmp(b, a)))
				}
			}
		})
	}
}

func TestComparatorDate(t *testing.T) {
	cmp := list.Comparator(types.SortDate)
	newer := &model.Issue{LastSeen: "2026-08-28T09:30:00Z"}
	older := &model.Issue{LastSeen: "2026-08-01T00:00:00Z"}
	missing := &model.Issue{}

	gt.True(t, cmp(newer, older) < 0)
	gt.True(t, cmp(older, newer) > 0)
	// A missing timestamp sorts as the oldest possible value
	gt.True(t, cmp(older, missing) < 0)
	gt.Equal(t, cmp(missing, missing), 0)
}

func TestComparatorCounters(t *testing.T) {
	freq := list.Comparator(types.SortFreq)
	user := list.Comparator(types.SortUser)
	busy := &model.Issue{Count: 1000, UserCount: 5}
	quiet := &model.Issue{Count: 2, UserCount: 300}

	gt.True(t, freq(busy, quiet) < 0)
	gt.True(t, user(busy, quiet) > 0)
}

func TestComparatorPriority(t *testing.T) {
	cmp := list.Comparator(types.SortPriority)
	high := &model.Issue{Priority: "high"}
	medium := &model.Issue{Priority: "medium"}
	low := &model.Issue{Priority: "low"}
	unknown := &model.Issue{Priority: "weird"}

	gt.True(t, cmp(high, medium) < 0)
	gt.True(t, cmp(medium, low) < 0)
	gt.True(t, cmp(low, unknown) < 0)
}

func TestCompareDates(t *testing.T) {
	// A valid date always beats an absent one
	gt.True(t, list.CompareDates("2026-08-28T00:00:00Z", "") < 0)
	gt.True(t, list.CompareDates("", "2026-08-28T00:00:00Z") > 0)
	gt.Equal(t, list.CompareDates("", ""), 0)

	// Unparseable input degrades to epoch instead of failing
	gt.True(t, list.CompareDates("2026-08-28T00:00:00Z", "not-a-date") < 0)

	// Fractional seconds are accepted
	gt.True(t, list.CompareDates("2026-08-28T00:00:00.500Z", "2026-08-28T00:00:00.250Z") < 0)
}
