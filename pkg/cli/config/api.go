package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/faultline/pkg/service/api"
	"github.com/urfave/cli/v3"
)

// API holds remote service configuration
type API struct {
	BaseURL string
	Token   string
}

// Flags returns CLI flags for API configuration
func (a *API) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Usage:       "Base URL of the issue tracking service",
			Category:    "API",
			Value:       "https://faultline.example.com",
			Sources:     cli.EnvVars("FAULTLINE_URL"),
			Destination: &a.BaseURL,
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "API auth token",
			Category:    "API",
			Sources:     cli.EnvVars("FAULTLINE_TOKEN"),
			Destination: &a.Token,
		},
	}
}

// Validate validates the API configuration
func (a *API) Validate() error {
	if a.BaseURL == "" {
		return goerr.New("API base URL is required")
	}
	return nil
}

// Configure creates an API client
func (a *API) Configure() (*api.Client, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return api.New(a.BaseURL, a.Token), nil
}

// LogValue returns structured log value
func (a API) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", a.BaseURL),
		slog.Bool("has_token", a.Token != ""),
	)
}
