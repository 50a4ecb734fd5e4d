package model

import "github.com/secmon-lab/faultline/pkg/domain/types"

// TargetSpec describes how the set of targets for a listing is selected.
// It is a closed sum type: the resolver branches over the concrete kinds
// with a type switch and rejects anything it does not recognize, so a new
// kind cannot be added without teaching the resolver about it.
type TargetSpec interface {
	isTargetSpec()
}

// ExplicitSpec selects exactly one (org, project) pair
type ExplicitSpec struct {
	Org     types.OrgSlug
	Project types.ProjectSlug
}

func (ExplicitSpec) isTargetSpec() {}

// OrgSpec selects every project of one organization
type OrgSpec struct {
	Org types.OrgSlug
}

func (OrgSpec) isTargetSpec() {}

// SearchSpec selects the projects of one organization whose slug or name
// matches a search term
type SearchSpec struct {
	Org   types.OrgSlug
	Query string
}

func (SearchSpec) isTargetSpec() {}

// DefaultsSpec selects the org/project defaults stored in the local state
type DefaultsSpec struct{}

func (DefaultsSpec) isTargetSpec() {}
