package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
	"github.com/secmon-lab/faultline/pkg/service/api"
	"github.com/secmon-lab/faultline/pkg/service/list"
	"github.com/secmon-lab/faultline/pkg/usecase"
)

type fetchCall struct {
	target model.Target
	opts   model.PageOptions
}

// fakeFetcher records every fetch and answers through a respond func
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []fetchCall
	respond func(target model.Target, opts model.PageOptions) (*model.IssuePage, error)
}

func (f *fakeFetcher) FetchIssuesPage(ctx context.Context, org types.OrgSlug, project types.ProjectSlug, opts model.PageOptions) (*model.IssuePage, error) {
	target := model.Target{Org: org, Project: project}

	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{target: target, opts: opts})
	f.mu.Unlock()

	return f.respond(target, opts)
}

func (f *fakeFetcher) callsFor(target model.Target) []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var calls []fetchCall
	for _, c := range f.calls {
		if c.target == target {
			calls = append(calls, c)
		}
	}
	return calls
}

var (
	projA = model.Target{Org: "acme", Project: "alpha"}
	projB = model.Target{Org: "acme", Project: "beta"}
)

func issueAt(id string, lastSeen string) *model.Issue {
	return &model.Issue{ID: types.IssueID(id), LastSeen: lastSeen}
}

// twoProjectFetcher serves 3 issues from projA and 2 from projB, each
// newest-first, with a next page cursor on both targets
func twoProjectFetcher() *fakeFetcher {
	return &fakeFetcher{
		respond: func(target model.Target, opts model.PageOptions) (*model.IssuePage, error) {
			switch target {
			case projA:
				return &model.IssuePage{
					Issues: []*model.Issue{
						issueAt("a1", "2026-08-28T10:00:00Z"),
						issueAt("a2", "2026-08-28T09:00:00Z"),
						issueAt("a3", "2026-08-28T08:00:00Z"),
					},
					NextCursor: "a-next",
				}, nil
			case projB:
				return &model.IssuePage{
					Issues: []*model.Issue{
						issueAt("b1", "2026-08-28T09:30:00Z"),
						issueAt("b2", "2026-08-28T07:00:00Z"),
					},
					NextCursor: "b-next",
				}, nil
			default:
				return nil, goerr.New("unexpected target")
			}
		},
	}
}

func TestListIssuesFairnessAcrossProjects(t *testing.T) {
	fetcher := twoProjectFetcher()
	uc := usecase.NewList(fetcher)

	out, err := uc.ListIssues(context.Background(), &usecase.ListInput{
		Targets: []model.Target{projA, projB},
		Sort:    types.SortDate,
		Limit:   3,
	})
	gt.NoError(t, err)
	gt.Equal(t, len(out.Candidates), 3)

	fromB := 0
	for _, c := range out.Candidates {
		if c.Target == projB {
			fromB++
		}
	}
	gt.True(t, fromB >= 1)

	// Globally newest first
	gt.Equal(t, out.Candidates[0].Issue.ID, types.IssueID("a1"))
}

func TestListIssuesLimitOne(t *testing.T) {
	fetcher := twoProjectFetcher()
	uc := usecase.NewList(fetcher)

	out, err := uc.ListIssues(context.Background(), &usecase.ListInput{
		Targets: []model.Target{projA, projB},
		Sort:    types.SortDate,
		Limit:   1,
	})
	gt.NoError(t, err)
	gt.Equal(t, len(out.Candidates), 1)
	gt.Equal(t, out.Candidates[0].Issue.ID, types.IssueID("a1"))

	// Both targets still have pages, so the compound cursor keeps a
	// live slot for each.
	slots := list.DecodeCursor(out.NextCursor)
	gt.Equal(t, slots, []string{"a-next", "b-next"})
}

func TestListIssuesSkipsExhaustedTarget(t *testing.T) {
	fetcher := twoProjectFetcher()
	uc := usecase.NewList(fetcher)

	// Previous round exhausted projB: its slot is null.
	out, err := uc.ListIssues(context.Background(), &usecase.ListInput{
		Targets: []model.Target{projA, projB},
		Sort:    types.SortDate,
		Limit:   10,
		Cursor:  "a-tok|",
	})
	gt.NoError(t, err)

	gt.Equal(t, len(fetcher.callsFor(projB)), 0)
	callsA := fetcher.callsFor(projA)
	gt.Equal(t, len(callsA), 1)
	gt.Equal(t, callsA[0].opts.Cursor, "a-tok")

	for _, c := range out.Candidates {
		gt.Equal(t, c.Target, projA)
	}
}

func TestListIssuesLegacyCursorStartsFresh(t *testing.T) {
	fetcher := twoProjectFetcher()
	uc := usecase.NewList(fetcher)

	_, err := uc.ListIssues(context.Background(), &usecase.ListInput{
		Targets: []model.Target{projA, projB},
		Sort:    types.SortDate,
		Limit:   10,
		Cursor:  `["old","format"]`,
	})
	gt.NoError(t, err)

	// Both targets fetched from the start despite the stale cursor
	gt.Equal(t, len(fetcher.callsFor(projA)), 1)
	gt.Equal(t, len(fetcher.callsFor(projB)), 1)
	gt.Equal(t, fetcher.callsFor(projA)[0].opts.Cursor, "")
}

func TestListIssuesCursorTargetMismatch(t *testing.T) {
	fetcher := twoProjectFetcher()
	uc := usecase.NewList(fetcher)

	// A three-slot cursor against two targets cannot be aligned;
	// resuming it would skip or repeat data.
	_, err := uc.ListIssues(context.Background(), &usecase.ListInput{
		Targets: []model.Target{projA, projB},
		Sort:    types.SortDate,
		Limit:   10,
		Cursor:  "x|y|z",
	})
	gt.NoError(t, err)
	gt.Equal(t, fetcher.callsFor(projA)[0].opts.Cursor, "")
	gt.Equal(t, fetcher.callsFor(projB)[0].opts.Cursor, "")
}

func TestListIssuesPartialAccessDenied(t *testing.T) {
	fetcher := &fakeFetcher{
		respond: func(target model.Target, opts model.PageOptions) (*model.IssuePage, error) {
			if target == projA {
				return nil, goerr.New("access denied", goerr.T(api.ErrTagAccessDenied))
			}
			return &model.IssuePage{
				Issues: []*model.Issue{issueAt("b1", "2026-08-28T09:30:00Z")},
			}, nil
		},
	}
	uc := usecase.NewList(fetcher)

	out, err := uc.ListIssues(context.Background(), &usecase.ListInput{
		Targets: []model.Target{projA, projB},
		Sort:    types.SortDate,
		Limit:   10,
	})
	gt.NoError(t, err)
	gt.Equal(t, len(out.Candidates), 1)
	gt.Equal(t, out.Candidates[0].Target, projB)

	// The denied target is exhausted going forward; projB returned a
	// short page, so everything is done.
	gt.Equal(t, out.NextCursor, "")
}

func TestListIssuesAllTargetsFailed(t *testing.T) {
	fetcher := &fakeFetcher{
		respond: func(target model.Target, opts model.PageOptions) (*model.IssuePage, error) {
			return nil, goerr.New("access denied", goerr.T(api.ErrTagAccessDenied))
		},
	}
	uc := usecase.NewList(fetcher)

	_, err := uc.ListIssues(context.Background(), &usecase.ListInput{
		Targets: []model.Target{projA, projB},
		Sort:    types.SortDate,
		Limit:   10,
	})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrAllTargetsFailed))

	// The aggregate error names the failed targets for remediation
	gerr := goerr.Unwrap(err)
	gt.NotNil(t, gerr)
	keys, ok := gerr.Values()["targets"].([]types.TargetKey)
	gt.True(t, ok)
	gt.Equal(t, len(keys), 2)
}

func TestListIssuesNoTargets(t *testing.T) {
	uc := usecase.NewList(&fakeFetcher{
		respond: func(target model.Target, opts model.PageOptions) (*model.IssuePage, error) {
			t.Error("fetch must not be attempted without targets")
			return nil, nil
		},
	})

	_, err := uc.ListIssues(context.Background(), &usecase.ListInput{
		Sort:  types.SortDate,
		Limit: 10,
	})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrNoTargets))
}

func TestListIssuesAliasAnnotation(t *testing.T) {
	fetcher := twoProjectFetcher()
	uc := usecase.NewList(fetcher)

	out, err := uc.ListIssues(context.Background(), &usecase.ListInput{
		Targets: []model.Target{projA, projB},
		Sort:    types.SortDate,
		Limit:   5,
	})
	gt.NoError(t, err)
	gt.Equal(t, out.Aliases.Len(), 2)

	for _, c := range out.Candidates {
		gt.True(t, c.Format.MultiProject)
		gt.NotEqual(t, c.Format.Alias, "")
		gt.Equal(t, c.Format.Alias, out.Aliases.Lookup(c.Target).String())
	}
}

func TestListIssuesMergePreservesTargetOrder(t *testing.T) {
	// Equal sort keys must not interleave a single target's page
	fetcher := &fakeFetcher{
		respond: func(target model.Target, opts model.PageOptions) (*model.IssuePage, error) {
			if target == projA {
				return &model.IssuePage{Issues: []*model.Issue{
					issueAt("a1", "2026-08-28T10:00:00Z"),
					issueAt("a2", "2026-08-28T10:00:00Z"),
				}}, nil
			}
			return &model.IssuePage{Issues: []*model.Issue{
				issueAt("b1", "2026-08-28T10:00:00Z"),
			}}, nil
		},
	}
	uc := usecase.NewList(fetcher)

	out, err := uc.ListIssues(context.Background(), &usecase.ListInput{
		Targets: []model.Target{projA, projB},
		Sort:    types.SortDate,
		Limit:   10,
	})
	gt.NoError(t, err)
	gt.Equal(t, len(out.Candidates), 3)
	gt.Equal(t, out.Candidates[0].Issue.ID, types.IssueID("a1"))
	gt.Equal(t, out.Candidates[1].Issue.ID, types.IssueID("a2"))
	gt.Equal(t, out.Candidates[2].Issue.ID, types.IssueID("b1"))
}

func TestListIssuesDefaultLimit(t *testing.T) {
	fetcher := twoProjectFetcher()
	uc := usecase.NewList(fetcher)

	_, err := uc.ListIssues(context.Background(), &usecase.ListInput{
		Targets: []model.Target{projA},
		Sort:    types.SortDate,
	})
	gt.NoError(t, err)
	gt.Equal(t, fetcher.callsFor(projA)[0].opts.Limit, usecase.DefaultLimit)
}
