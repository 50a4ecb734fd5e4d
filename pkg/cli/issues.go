package cli

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/faultline/pkg/cli/config"
	"github.com/secmon-lab/faultline/pkg/domain/interfaces"
	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
	"github.com/secmon-lab/faultline/pkg/service/resolver"
	"github.com/secmon-lab/faultline/pkg/usecase"
	"github.com/secmon-lab/faultline/pkg/utils/apperr"
	"github.com/urfave/cli/v3"
)

func cmdIssues() *cli.Command {
	return &cli.Command{
		Name:  "issues",
		Usage: "Work with issues",
		Commands: []*cli.Command{
			cmdIssuesList(),
			cmdIssuesAliases(),
		},
	}
}

// targetFlags is the shared target-selection flag set of issue commands
type targetFlags struct {
	Org          string
	Projects     []string
	ProjectQuery string
}

// Flags returns CLI flags for target selection
func (t *targetFlags) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "org",
			Usage:       "Organization slug",
			Category:    "Targets",
			Sources:     cli.EnvVars("FAULTLINE_ORG"),
			Destination: &t.Org,
		},
		&cli.StringSliceFlag{
			Name:        "project",
			Usage:       "Project slug (repeatable)",
			Category:    "Targets",
			Destination: &t.Projects,
		},
		&cli.StringFlag{
			Name:        "project-query",
			Usage:       "Select projects of the org whose slug matches this term",
			Category:    "Targets",
			Destination: &t.ProjectQuery,
		},
	}
}

// Specs builds the target specifications from the flag values. With no
// targeting flags at all, the stored defaults apply.
func (t *targetFlags) Specs() ([]model.TargetSpec, error) {
	org := types.OrgSlug(t.Org)

	switch {
	case len(t.Projects) > 0:
		if org == "" {
			return nil, goerr.New("--project requires --org")
		}
		specs := make([]model.TargetSpec, 0, len(t.Projects))
		for _, p := range t.Projects {
			specs = append(specs, model.ExplicitSpec{Org: org, Project: types.ProjectSlug(p)})
		}
		return specs, nil

	case t.ProjectQuery != "":
		if org == "" {
			return nil, goerr.New("--project-query requires --org")
		}
		return []model.TargetSpec{model.SearchSpec{Org: org, Query: t.ProjectQuery}}, nil

	case org != "":
		return []model.TargetSpec{model.OrgSpec{Org: org}}, nil

	default:
		return []model.TargetSpec{model.DefaultsSpec{}}, nil
	}
}

// resolveAll resolves every spec and concatenates the targets
func resolveAll(ctx context.Context, rsv interfaces.TargetResolver, specs []model.TargetSpec) ([]model.Target, error) {
	var targets []model.Target
	for _, spec := range specs {
		resolved, err := rsv.ResolveTargets(ctx, spec)
		if err != nil {
			return nil, err
		}
		targets = append(targets, resolved...)
	}
	return model.DedupTargets(targets), nil
}

func cmdIssuesList() *cli.Command {
	var (
		apiCfg   config.API
		stateCfg config.State
		targets  targetFlags

		query    string
		sortKey  string
		limit    int
		cursor   string
		resume   bool
		jsonMode bool
	)

	flags := joinFlags(
		apiCfg.Flags(),
		stateCfg.Flags(),
		targets.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "query",
				Aliases:     []string{"q"},
				Usage:       "Issue search query",
				Destination: &query,
			},
			&cli.StringFlag{
				Name:        "sort",
				Usage:       "Sort key (date, new, priority, freq, user)",
				Value:       types.SortDate.String(),
				Destination: &sortKey,
			},
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "Maximum number of issues to print",
				Value:       usecase.DefaultLimit,
				Destination: &limit,
			},
			&cli.StringFlag{
				Name:        "cursor",
				Usage:       "Compound cursor from a previous invocation",
				Destination: &cursor,
			},
			&cli.BoolFlag{
				Name:        "continue",
				Aliases:     []string{"c"},
				Usage:       "Continue from the last saved position of this query",
				Destination: &resume,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "Print issues as JSON",
				Destination: &jsonMode,
			},
		},
	)

	return &cli.Command{
		Name:  "list",
		Usage: "List issues across one or more projects",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			sort := types.SortValue(sortKey)
			if !sort.IsValid() {
				return goerr.New("invalid sort key",
					goerr.V("sort", sortKey),
					goerr.V("valid", types.SortValues()))
			}

			client, err := apiCfg.Configure()
			if err != nil {
				return err
			}
			store, err := stateCfg.Configure()
			if err != nil {
				return err
			}
			defer store.Close()

			specs, err := targets.Specs()
			if err != nil {
				return err
			}
			resolved, err := resolveAll(ctx, resolver.New(client, store), specs)
			if err != nil {
				apperr.Handle(ctx, err)
				return err
			}

			key := model.Fingerprint(resolved, query, sort)
			if cursor == "" && resume {
				state, err := store.GetListState(ctx, key)
				switch {
				case err == nil:
					cursor = state.Cursor
				case errors.Is(err, model.ErrStateNotFound):
					logger.Debug("no saved state for query, starting fresh", "key", key)
				default:
					return err
				}
			}

			out, err := usecase.NewList(client).ListIssues(ctx, &usecase.ListInput{
				Targets: resolved,
				Query:   query,
				Sort:    sort,
				Limit:   limit,
				Cursor:  cursor,
			})
			if err != nil {
				apperr.Handle(ctx, err)
				return err
			}

			// Persist the resume position and alias cache. A failed save
			// must not fail the listing itself.
			if err := store.SaveListState(ctx, key, &model.ListState{
				Cursor:  out.NextCursor,
				SavedAt: time.Now(),
			}); err != nil {
				logger.Warn("failed to save listing state", "error", err)
			}
			if out.Aliases.Len() > 0 {
				if err := store.SaveAliases(ctx, key, out.Aliases); err != nil {
					logger.Warn("failed to save alias cache", "error", err)
				}
			}

			if jsonMode {
				return printIssuesJSON(os.Stdout, out.Candidates)
			}
			printIssuesTable(os.Stdout, out.Candidates)
			if out.NextCursor != "" {
				logger.Info("more results available, re-run with --continue")
			}
			return nil
		},
	}
}

func cmdIssuesAliases() *cli.Command {
	var (
		apiCfg   config.API
		stateCfg config.State
		targets  targetFlags

		query   string
		sortKey string
	)

	flags := joinFlags(
		apiCfg.Flags(),
		stateCfg.Flags(),
		targets.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "query",
				Aliases:     []string{"q"},
				Usage:       "Issue search query of the listing to look up",
				Destination: &query,
			},
			&cli.StringFlag{
				Name:        "sort",
				Usage:       "Sort key of the listing to look up",
				Value:       types.SortDate.String(),
				Destination: &sortKey,
			},
		},
	)

	return &cli.Command{
		Name:  "aliases",
		Usage: "Show the cached project aliases of a listing",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sort := types.SortValue(sortKey)
			if !sort.IsValid() {
				return goerr.New("invalid sort key", goerr.V("sort", sortKey))
			}

			client, err := apiCfg.Configure()
			if err != nil {
				return err
			}
			store, err := stateCfg.Configure()
			if err != nil {
				return err
			}
			defer store.Close()

			specs, err := targets.Specs()
			if err != nil {
				return err
			}
			resolved, err := resolveAll(ctx, resolver.New(client, store), specs)
			if err != nil {
				apperr.Handle(ctx, err)
				return err
			}

			key := model.Fingerprint(resolved, query, sort)
			aliases, err := store.GetAliases(ctx, key)
			if err != nil {
				if errors.Is(err, model.ErrAliasesNotFound) {
					return goerr.Wrap(err, "no alias cache for this query; run 'issues list' first")
				}
				return err
			}

			printAliasTable(os.Stdout, aliases)
			return nil
		},
	}
}
