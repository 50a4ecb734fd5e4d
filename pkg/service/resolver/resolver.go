package resolver

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/faultline/pkg/domain/interfaces"
	"github.com/secmon-lab/faultline/pkg/domain/model"
)

// Service resolves target specifications into concrete (org, project)
// pairs. Org-wide and search specs enumerate projects through the API;
// the defaults spec reads the stored selection from the state store.
type Service struct {
	projects interfaces.ProjectLister
	store    interfaces.StateStore
}

// New creates a new resolver service
func New(projects interfaces.ProjectLister, store interfaces.StateStore) *Service {
	return &Service{
		projects: projects,
		store:    store,
	}
}

// ResolveTargets resolves a target specification. The switch over spec
// kinds is closed: an unrecognized kind is an error, not a silent no-op.
func (s *Service) ResolveTargets(ctx context.Context, spec model.TargetSpec) ([]model.Target, error) {
	switch sp := spec.(type) {
	case model.ExplicitSpec:
		return []model.Target{{Org: sp.Org, Project: sp.Project}}, nil

	case model.OrgSpec:
		slugs, err := s.projects.ListProjects(ctx, sp.Org)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list projects", goerr.V("org", sp.Org))
		}
		targets := make([]model.Target, 0, len(slugs))
		for _, slug := range slugs {
			targets = append(targets, model.Target{Org: sp.Org, Project: slug})
		}
		return model.DedupTargets(targets), nil

	case model.SearchSpec:
		slugs, err := s.projects.SearchProjects(ctx, sp.Org, sp.Query)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to search projects",
				goerr.V("org", sp.Org),
				goerr.V("query", sp.Query))
		}
		targets := make([]model.Target, 0, len(slugs))
		for _, slug := range slugs {
			targets = append(targets, model.Target{Org: sp.Org, Project: slug})
		}
		return model.DedupTargets(targets), nil

	case model.DefaultsSpec:
		defaults, err := s.store.GetDefaults(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "no default org/project configured; pass --org and --project")
		}
		ctxlog.From(ctx).Debug("resolved targets from stored defaults",
			"org", defaults.Org,
			"project", defaults.Project,
		)
		return []model.Target{{Org: defaults.Org, Project: defaults.Project}}, nil

	default:
		return nil, goerr.New("unhandled target spec kind", goerr.V("spec", spec))
	}
}
