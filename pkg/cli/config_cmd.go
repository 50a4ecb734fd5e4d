package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/faultline/pkg/cli/config"
	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdConfig() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage local configuration",
		Commands: []*cli.Command{
			cmdConfigSetDefault(),
			cmdConfigShowDefault(),
		},
	}
}

func cmdConfigSetDefault() *cli.Command {
	var (
		stateCfg config.State
		org      string
		project  string
	)

	flags := joinFlags(
		stateCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "org",
				Usage:       "Default organization slug",
				Required:    true,
				Destination: &org,
			},
			&cli.StringFlag{
				Name:        "project",
				Usage:       "Default project slug",
				Required:    true,
				Destination: &project,
			},
		},
	)

	return &cli.Command{
		Name:  "set-default",
		Usage: "Store the default org/project used when no target flags are given",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := stateCfg.Configure()
			if err != nil {
				return err
			}
			defer store.Close()

			defaults := &model.ListDefaults{
				Org:     types.OrgSlug(org),
				Project: types.ProjectSlug(project),
			}
			if err := store.SaveDefaults(ctx, defaults); err != nil {
				return goerr.Wrap(err, "failed to save defaults")
			}
			fmt.Fprintf(os.Stdout, "Default target set to %s/%s\n", org, project)
			return nil
		},
	}
}

func cmdConfigShowDefault() *cli.Command {
	var stateCfg config.State

	return &cli.Command{
		Name:  "show-default",
		Usage: "Show the stored default org/project",
		Flags: stateCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := stateCfg.Configure()
			if err != nil {
				return err
			}
			defer store.Close()

			defaults, err := store.GetDefaults(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s/%s\n", defaults.Org, defaults.Project)
			return nil
		},
	}
}
