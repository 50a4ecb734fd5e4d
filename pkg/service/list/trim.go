package list

import (
	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
)

// Trim limits a sorted candidate list to at most limit items without
// starving any project. The input must already be in comparator order;
// the output is an order-preserving subsequence of it.
//
// When the number of distinct projects P fits within limit, every project
// keeps at least one representative: seats are reserved for projects not
// yet represented, and a candidate from an already-represented project is
// only admitted while free seats remain beyond the reservations. When
// P exceeds limit, the reservation never releases, so the result is the
// first representative of the limit best-ranked projects: exactly limit
// items, round-robin fair across projects.
func Trim(candidates []*model.Candidate, limit int) []*model.Candidate {
	if limit <= 0 {
		return []*model.Candidate{}
	}
	if len(candidates) <= limit {
		return candidates
	}

	unseen := make(map[types.TargetKey]struct{})
	for _, c := range candidates {
		unseen[c.Target.Key()] = struct{}{}
	}

	result := make([]*model.Candidate, 0, limit)
	for _, c := range candidates {
		if len(result) >= limit {
			break
		}
		key := c.Target.Key()
		if _, first := unseen[key]; first {
			delete(unseen, key)
			result = append(result, c)
			continue
		}
		// Admit a repeat only if seats remain after reserving one
		// per still-unrepresented project.
		if len(result)+len(unseen) < limit {
			result = append(result, c)
		}
	}
	return result
}
