package model

import "github.com/secmon-lab/faultline/pkg/domain/types"

// AliasSet maps targets to their assigned aliases and back.
// Aliases are pairwise unique within one set. A set is built fresh per
// invocation from the targets actually present in the result; any
// persistence across invocations is the state store's concern.
type AliasSet struct {
	AliasOf map[types.TargetKey]types.Alias
	Entries map[types.Alias]Target
}

// NewAliasSet creates an empty AliasSet
func NewAliasSet() *AliasSet {
	return &AliasSet{
		AliasOf: make(map[types.TargetKey]types.Alias),
		Entries: make(map[types.Alias]Target),
	}
}

// Assign records one target/alias binding
func (s *AliasSet) Assign(target Target, alias types.Alias) {
	s.AliasOf[target.Key()] = alias
	s.Entries[alias] = target
}

// Lookup returns the alias of a target, or empty if none is assigned
func (s *AliasSet) Lookup(target Target) types.Alias {
	return s.AliasOf[target.Key()]
}

// Resolve returns the target an alias stands for
func (s *AliasSet) Resolve(alias types.Alias) (Target, bool) {
	t, ok := s.Entries[alias]
	return t, ok
}

// Len returns the number of bindings
func (s *AliasSet) Len() int {
	return len(s.Entries)
}
