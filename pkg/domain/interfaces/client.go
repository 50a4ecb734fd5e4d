package interfaces

import (
	"context"

	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
)

// IssueFetcher fetches one page of issues for one target. The cursor
// inside PageOptions is opaque: it is stored and replayed, never parsed.
type IssueFetcher interface {
	FetchIssuesPage(ctx context.Context, org types.OrgSlug, project types.ProjectSlug, opts model.PageOptions) (*model.IssuePage, error)
}

// ProjectLister enumerates and searches projects of an organization
type ProjectLister interface {
	ListProjects(ctx context.Context, org types.OrgSlug) ([]types.ProjectSlug, error)
	SearchProjects(ctx context.Context, org types.OrgSlug, query string) ([]types.ProjectSlug, error)
}

// TargetResolver turns a target specification into concrete targets
type TargetResolver interface {
	ResolveTargets(ctx context.Context, spec model.TargetSpec) ([]model.Target, error)
}
