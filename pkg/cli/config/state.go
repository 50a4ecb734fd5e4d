package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/faultline/pkg/domain/interfaces"
	"github.com/secmon-lab/faultline/pkg/repository"
	"github.com/urfave/cli/v3"
)

// State holds local state store configuration
type State struct {
	Path string
}

// Flags returns CLI flags for State configuration
func (s *State) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "state-file",
			Usage:       "Path of the local state file (default: <user config dir>/faultline/state.yml)",
			Category:    "State",
			Sources:     cli.EnvVars("FAULTLINE_STATE_FILE"),
			Destination: &s.Path,
		},
	}
}

// Configure creates the state store. Cursors, stored defaults and the
// alias cache live in one YAML file under the user config dir unless a
// path is given.
func (s *State) Configure() (interfaces.StateStore, error) {
	path := s.Path
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to locate user config dir")
		}
		path = filepath.Join(dir, "faultline", "state.yml")
	}
	return repository.NewFile(path)
}

// LogValue returns structured log value
func (s State) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", s.Path),
	)
}
