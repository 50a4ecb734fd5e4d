package repository

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/faultline/pkg/domain/interfaces"
	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

// File implements StateStore with a single YAML document on disk.
// Every write rewrites the whole file; the document is small (a handful
// of cursors and aliases), so simplicity wins over granular updates.
type File struct {
	mu   sync.Mutex
	path string
}

type fileDoc struct {
	Defaults *model.ListDefaults        `yaml:"defaults,omitempty"`
	States   map[string]*model.ListState `yaml:"states,omitempty"`
	Aliases  map[string][]fileAlias      `yaml:"aliases,omitempty"`
}

type fileAlias struct {
	Alias   string `yaml:"alias"`
	Org     string `yaml:"org"`
	Project string `yaml:"project"`
}

// NewFile creates a new file-backed state store at path, creating parent
// directories as needed
func NewFile(path string) (interfaces.StateStore, error) {
	if path == "" {
		return nil, goerr.New("state file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, goerr.Wrap(err, "failed to create state directory", goerr.V("path", path))
	}
	return &File{path: path}, nil
}

// GetListState retrieves a saved listing state
func (f *File) GetListState(ctx context.Context, key types.StateKey) (*model.ListState, error) {
	if key == "" {
		return nil, goerr.New("state key is empty")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	state, exists := doc.States[key.String()]
	if !exists {
		return nil, goerr.Wrap(model.ErrStateNotFound, "no saved state", goerr.V("key", key))
	}
	return state, nil
}

// SaveListState saves a listing state
func (f *File) SaveListState(ctx context.Context, key types.StateKey, state *model.ListState) error {
	if key == "" {
		return goerr.New("state key is empty")
	}
	if state == nil {
		return goerr.New("state is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	if doc.States == nil {
		doc.States = make(map[string]*model.ListState)
	}
	doc.States[key.String()] = state
	return f.save(doc)
}

// GetAliases retrieves the cached alias set of a listing
func (f *File) GetAliases(ctx context.Context, key types.StateKey) (*model.AliasSet, error) {
	if key == "" {
		return nil, goerr.New("state key is empty")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	entries, exists := doc.Aliases[key.String()]
	if !exists {
		return nil, goerr.Wrap(model.ErrAliasesNotFound, "no cached aliases", goerr.V("key", key))
	}

	set := model.NewAliasSet()
	for _, e := range entries {
		set.Assign(model.Target{
			Org:     types.OrgSlug(e.Org),
			Project: types.ProjectSlug(e.Project),
		}, types.Alias(e.Alias))
	}
	return set, nil
}

// SaveAliases caches the alias set of a listing
func (f *File) SaveAliases(ctx context.Context, key types.StateKey, aliases *model.AliasSet) error {
	if key == "" {
		return goerr.New("state key is empty")
	}
	if aliases == nil {
		return goerr.New("alias set is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	entries := make([]fileAlias, 0, aliases.Len())
	for alias, target := range aliases.Entries {
		entries = append(entries, fileAlias{
			Alias:   alias.String(),
			Org:     target.Org.String(),
			Project: target.Project.String(),
		})
	}
	if doc.Aliases == nil {
		doc.Aliases = make(map[string][]fileAlias)
	}
	doc.Aliases[key.String()] = entries
	return f.save(doc)
}

// GetDefaults retrieves the stored default target selection
func (f *File) GetDefaults(ctx context.Context) (*model.ListDefaults, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	if doc.Defaults == nil {
		return nil, model.ErrDefaultsNotFound
	}
	return doc.Defaults, nil
}

// SaveDefaults stores the default target selection
func (f *File) SaveDefaults(ctx context.Context, defaults *model.ListDefaults) error {
	if defaults == nil {
		return goerr.New("defaults is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	doc.Defaults = defaults
	return f.save(doc)
}

// Close closes the store
func (f *File) Close() error {
	return nil
}

// load reads the YAML document; a missing file is an empty document
func (f *File) load() (*fileDoc, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileDoc{}, nil
		}
		return nil, goerr.Wrap(err, "failed to read state file", goerr.V("path", f.path))
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse state file", goerr.V("path", f.path))
	}
	return &doc, nil
}

// save writes the YAML document back to disk
func (f *File) save(doc *fileDoc) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return goerr.Wrap(err, "failed to serialize state")
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return goerr.Wrap(err, "failed to write state file", goerr.V("path", f.path))
	}
	return nil
}
