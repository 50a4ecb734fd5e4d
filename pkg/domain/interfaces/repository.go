package interfaces

import (
	"context"

	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
)

// StateStore defines the interface for local persistence of listing state.
// The core never calls it; the CLI layer uses it to resume listings and
// to keep the alias cache for follow-up commands.
type StateStore interface {
	// Listing state operations
	GetListState(ctx context.Context, key types.StateKey) (*model.ListState, error)
	SaveListState(ctx context.Context, key types.StateKey, state *model.ListState) error

	// Alias cache operations
	GetAliases(ctx context.Context, key types.StateKey) (*model.AliasSet, error)
	SaveAliases(ctx context.Context, key types.StateKey, aliases *model.AliasSet) error

	// Stored default target selection
	GetDefaults(ctx context.Context) (*model.ListDefaults, error)
	SaveDefaults(ctx context.Context, defaults *model.ListDefaults) error

	// Close closes the store
	Close() error
}
