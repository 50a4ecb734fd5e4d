package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/faultline/pkg/domain/interfaces"
	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
)

// Memory implements StateStore with in-memory storage
type Memory struct {
	mu       sync.RWMutex
	states   map[types.StateKey]*model.ListState
	aliases  map[types.StateKey]*model.AliasSet
	defaults *model.ListDefaults
}

// NewMemory creates a new memory state store
func NewMemory() interfaces.StateStore {
	return &Memory{
		states:  make(map[types.StateKey]*model.ListState),
		aliases: make(map[types.StateKey]*model.AliasSet),
	}
}

// GetListState retrieves a saved listing state
func (m *Memory) GetListState(ctx context.Context, key types.StateKey) (*model.ListState, error) {
	if key == "" {
		return nil, goerr.New("state key is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	state, exists := m.states[key]
	if !exists {
		return nil, goerr.Wrap(model.ErrStateNotFound, "no saved state", goerr.V("key", key))
	}

	// Return a copy to prevent external modification
	stateCopy := *state
	return &stateCopy, nil
}

// SaveListState saves a listing state
func (m *Memory) SaveListState(ctx context.Context, key types.StateKey, state *model.ListState) error {
	if key == "" {
		return goerr.New("state key is empty")
	}
	if state == nil {
		return goerr.New("state is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stateCopy := *state
	m.states[key] = &stateCopy
	return nil
}

// GetAliases retrieves the cached alias set of a listing
func (m *Memory) GetAliases(ctx context.Context, key types.StateKey) (*model.AliasSet, error) {
	if key == "" {
		return nil, goerr.New("state key is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	set, exists := m.aliases[key]
	if !exists {
		return nil, goerr.Wrap(model.ErrAliasesNotFound, "no cached aliases", goerr.V("key", key))
	}

	return copyAliasSet(set), nil
}

// SaveAliases caches the alias set of a listing
func (m *Memory) SaveAliases(ctx context.Context, key types.StateKey, aliases *model.AliasSet) error {
	if key == "" {
		return goerr.New("state key is empty")
	}
	if aliases == nil {
		return goerr.New("alias set is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.aliases[key] = copyAliasSet(aliases)
	return nil
}

// GetDefaults retrieves the stored default target selection
func (m *Memory) GetDefaults(ctx context.Context) (*model.ListDefaults, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.defaults == nil {
		return nil, model.ErrDefaultsNotFound
	}

	defaultsCopy := *m.defaults
	return &defaultsCopy, nil
}

// SaveDefaults stores the default target selection
func (m *Memory) SaveDefaults(ctx context.Context, defaults *model.ListDefaults) error {
	if defaults == nil {
		return goerr.New("defaults is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	defaultsCopy := *defaults
	m.defaults = &defaultsCopy
	return nil
}

// Close closes the store
func (m *Memory) Close() error {
	return nil
}

// copyAliasSet deep-copies an alias set so callers cannot mutate stored state
func copyAliasSet(set *model.AliasSet) *model.AliasSet {
	copied := model.NewAliasSet()
	for alias, target := range set.Entries {
		copied.Assign(target, alias)
	}
	return copied
}
