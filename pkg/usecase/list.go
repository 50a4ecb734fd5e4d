package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/faultline/pkg/domain/interfaces"
	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
	"github.com/secmon-lab/faultline/pkg/service/list"
	"github.com/secmon-lab/faultline/pkg/utils/async"
)

// DefaultLimit is the result-size limit when the caller does not set one
const DefaultLimit = 30

// List aggregates paginated issue streams from multiple targets into one
// globally ordered, fairness-trimmed view. One call is one round:
// dispatch concurrent per-target fetches, K-way merge the pages, trim,
// and re-encode the compound cursor for the next round. It holds no
// state between rounds beyond what the caller persists in the cursor.
type List struct {
	fetcher interfaces.IssueFetcher
}

// NewList creates a new List use case
func NewList(fetcher interfaces.IssueFetcher) *List {
	return &List{
		fetcher: fetcher,
	}
}

// ListInput carries the parameters of one listing round. Targets must be
// in the same order as on the previous round for Cursor to line up.
type ListInput struct {
	Targets []model.Target
	Query   string
	Sort    types.SortValue
	Limit   int
	Cursor  string
}

// ListOutput is the result of one listing round. NextCursor is empty
// when every target is exhausted.
type ListOutput struct {
	Candidates []*model.Candidate
	NextCursor string
	Aliases    *model.AliasSet
}

// fetchResult is the settled outcome of one target's dispatch
type fetchResult struct {
	page    *model.IssuePage
	err     error
	skipped bool
}

// ListIssues runs one dispatch/merge/finalize round.
//
// A target whose cursor slot is already empty is skipped entirely: it
// was exhausted in a previous round. A target whose fetch fails with
// access-denied or any other error contributes nothing and is marked
// exhausted; the round only fails as a whole when every dispatched
// target failed.
func (u *List) ListIssues(ctx context.Context, input *ListInput) (*ListOutput, error) {
	logger := ctxlog.From(ctx)

	targets := model.DedupTargets(input.Targets)
	if len(targets) == 0 {
		return nil, goerr.Wrap(model.ErrNoTargets, "nothing to list")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	slots := list.DecodeCursor(input.Cursor)
	if len(slots) > 0 && len(slots) != len(targets) {
		// Cursor from a different target list; resuming it would skip
		// or repeat data, so start fresh instead.
		logger.Warn("cursor does not match target list, starting fresh",
			"slots", len(slots),
			"targets", len(targets),
		)
		slots = nil
	}
	fresh := len(slots) == 0

	roundID := types.NewRoundID()
	logger.Debug("dispatching listing round",
		"round", roundID,
		"targets", len(targets),
		"sort", input.Sort,
		"limit", limit,
		"fresh", fresh,
	)

	results := u.dispatch(ctx, targets, slots, fresh, limit, input)

	dispatched := 0
	failed := 0
	var failedTargets []types.TargetKey
	var fetchErrs []error
	for i, res := range results {
		if res.skipped {
			continue
		}
		dispatched++
		if res.err != nil {
			failed++
			failedTargets = append(failedTargets, targets[i].Key())
			fetchErrs = append(fetchErrs, res.err)
			logger.Warn("target fetch failed, treating as exhausted",
				"round", roundID,
				"target", targets[i].Key(),
				"error", res.err,
			)
		}
	}
	if dispatched > 0 && failed == dispatched {
		return nil, goerr.Wrap(model.ErrAllTargetsFailed, "no target could be queried",
			goerr.V("targets", failedTargets),
			goerr.V("causes", errors.Join(fetchErrs...)))
	}

	merged := mergeCandidates(targets, results, list.Comparator(input.Sort))
	trimmed := list.Trim(merged, limit)

	present := presentTargets(trimmed)
	aliases := list.BuildAliases(present)
	multi := len(present) > 1
	for _, c := range trimmed {
		c.Format = model.FormatOptions{
			Alias:        aliases.Lookup(c.Target).String(),
			MultiProject: multi,
		}
	}

	nextSlots := make([]string, len(targets))
	for i, res := range results {
		if res.skipped || res.err != nil || res.page == nil {
			continue
		}
		nextSlots[i] = res.page.NextCursor
	}
	nextCursor := list.EncodeCursor(nextSlots)

	logger.Debug("listing round finished",
		"round", roundID,
		"merged", len(merged),
		"returned", len(trimmed),
		"failed", failed,
		"exhausted", nextCursor == "",
	)

	return &ListOutput{
		Candidates: trimmed,
		NextCursor: nextCursor,
		Aliases:    aliases,
	}, nil
}

// dispatch issues one concurrent fetch per still-active target
func (u *List) dispatch(ctx context.Context, targets []model.Target, slots []string, fresh bool, limit int, input *ListInput) []fetchResult {
	results := make([]fetchResult, len(targets))

	var indices []int
	for i := range targets {
		if !fresh && slots[i] == "" {
			results[i].skipped = true
			continue
		}
		indices = append(indices, i)
	}

	async.Each(ctx, len(indices), func(ctx context.Context, n int) error {
		i := indices[n]
		cursor := ""
		if !fresh {
			cursor = slots[i]
		}
		page, err := u.fetcher.FetchIssuesPage(ctx, targets[i].Org, targets[i].Project, model.PageOptions{
			Query:  input.Query,
			Sort:   input.Sort,
			Limit:  limit,
			Cursor: cursor,
		})
		results[i] = fetchResult{page: page, err: err}
		return nil
	})

	return results
}

// mergeCandidates K-way merges the fetched pages under cmp, tagging each
// issue with its originating target. Within one target the remote
// ordering is preserved; ties across targets resolve to the lower target
// index, so the merge is stable.
func mergeCandidates(targets []model.Target, results []fetchResult, cmp list.CompareFunc) []*model.Candidate {
	heads := make([]int, len(results))
	total := 0
	for _, res := range results {
		if res.page != nil {
			total += len(res.page.Issues)
		}
	}

	merged := make([]*model.Candidate, 0, total)
	for {
		best := -1
		for i, res := range results {
			if res.err != nil || res.page == nil || heads[i] >= len(res.page.Issues) {
				continue
			}
			if best < 0 || cmp(res.page.Issues[heads[i]], results[best].page.Issues[heads[best]]) < 0 {
				best = i
			}
		}
		if best < 0 {
			break
		}
		merged = append(merged, &model.Candidate{
			Issue:  results[best].page.Issues[heads[best]],
			Target: targets[best],
		})
		heads[best]++
	}
	return merged
}

// presentTargets collects the distinct targets represented in a
// candidate list, in order of first appearance
func presentTargets(candidates []*model.Candidate) []model.Target {
	seen := make(map[types.TargetKey]struct{})
	var present []model.Target
	for _, c := range candidates {
		key := c.Target.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		present = append(present, c.Target)
	}
	return present
}
