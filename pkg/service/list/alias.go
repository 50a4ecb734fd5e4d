package list

import (
	"fmt"
	"sort"
	"strings"

	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
)

// aliasBaseLen is the preferred alias length before disambiguation
const aliasBaseLen = 3

// BuildAliases assigns a short, unique alias to every target in the set.
// Aliases derive from project-slug prefixes, extended one character at a
// time when two prefixes collide. Two targets that expose the same
// project slug in different orgs cannot be told apart by any slug prefix,
// so both get the org-qualified form "o<n>:<prefix>" where n is the
// position of the org among the set's orgs in sorted order.
//
// The allocation is a pure function of the input set: no hidden state,
// deterministic for a given input. Aliases are not guaranteed stable
// across calls with different input sets.
func BuildAliases(targets []model.Target) *model.AliasSet {
	targets = model.DedupTargets(targets)
	set := model.NewAliasSet()

	slugCount := make(map[types.ProjectSlug]int, len(targets))
	for _, t := range targets {
		slugCount[normalizeSlug(t.Project)]++
	}
	orgIndex := orgOrdinals(targets)

	// Allocate shorter slugs first so a slug that is a prefix of a
	// longer one claims its own full form before the longer slug
	// starts extending.
	ordered := make([]model.Target, len(targets))
	copy(ordered, targets)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Project, ordered[j].Project
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})

	for _, t := range ordered {
		slug := normalizeSlug(t.Project)
		if slugCount[slug] > 1 {
			set.Assign(t, orgQualifiedAlias(orgIndex[t.Org], slug, set))
		} else {
			set.Assign(t, prefixAlias(slug, set))
		}
	}
	return set
}

// prefixAlias picks the shortest free prefix of slug, starting at the
// base length. With shorter slugs allocated first the full slug is
// always free by the time extension reaches it.
func prefixAlias(slug types.ProjectSlug, set *model.AliasSet) types.Alias {
	s := slug.String()
	n := aliasBaseLen
	if n > len(s) {
		n = len(s)
	}
	for ; n <= len(s); n++ {
		alias := types.Alias(s[:n])
		if _, taken := set.Entries[alias]; !taken {
			return alias
		}
	}
	return types.Alias(s)
}

// orgQualifiedAlias builds the "o<n>:<prefix>" disambiguated form,
// extending the prefix if the alias is somehow already taken
func orgQualifiedAlias(ordinal int, slug types.ProjectSlug, set *model.AliasSet) types.Alias {
	s := slug.String()
	n := aliasBaseLen
	if n > len(s) {
		n = len(s)
	}
	for ; n <= len(s); n++ {
		alias := types.Alias(fmt.Sprintf("o%d:%s", ordinal, s[:n]))
		if _, taken := set.Entries[alias]; !taken {
			return alias
		}
	}
	return types.Alias(fmt.Sprintf("o%d:%s:%d", ordinal, s, set.Len()))
}

// orgOrdinals numbers the distinct orgs of the set in sorted slug order,
// starting at 1
func orgOrdinals(targets []model.Target) map[types.OrgSlug]int {
	var orgs []string
	seen := make(map[string]struct{})
	for _, t := range targets {
		o := strings.ToLower(t.Org.String())
		if _, ok := seen[o]; !ok {
			seen[o] = struct{}{}
			orgs = append(orgs, o)
		}
	}
	sort.Strings(orgs)

	index := make(map[types.OrgSlug]int, len(targets))
	for _, t := range targets {
		for i, o := range orgs {
			if strings.ToLower(t.Org.String()) == o {
				index[t.Org] = i + 1
				break
			}
		}
	}
	return index
}

// normalizeSlug lowercases a project slug for alias derivation
func normalizeSlug(slug types.ProjectSlug) types.ProjectSlug {
	return types.ProjectSlug(strings.ToLower(slug.String()))
}
