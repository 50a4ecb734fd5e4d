package cli

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/faultline/pkg/domain/model"
)

func TestTargetFlagSpecs(t *testing.T) {
	t.Run("explicit projects", func(t *testing.T) {
		f := targetFlags{Org: "acme", Projects: []string{"alpha", "beta"}}
		specs, err := f.Specs()
		gt.NoError(t, err)
		gt.Equal(t, specs, []model.TargetSpec{
			model.ExplicitSpec{Org: "acme", Project: "alpha"},
			model.ExplicitSpec{Org: "acme", Project: "beta"},
		})
	})

	t.Run("project without org", func(t *testing.T) {
		f := targetFlags{Projects: []string{"alpha"}}
		_, err := f.Specs()
		gt.Error(t, err)
	})

	t.Run("project query", func(t *testing.T) {
		f := targetFlags{Org: "acme", ProjectQuery: "front"}
		specs, err := f.Specs()
		gt.NoError(t, err)
		gt.Equal(t, specs, []model.TargetSpec{model.SearchSpec{Org: "acme", Query: "front"}})
	})

	t.Run("org wide", func(t *testing.T) {
		f := targetFlags{Org: "acme"}
		specs, err := f.Specs()
		gt.NoError(t, err)
		gt.Equal(t, specs, []model.TargetSpec{model.OrgSpec{Org: "acme"}})
	})

	t.Run("defaults", func(t *testing.T) {
		f := targetFlags{}
		specs, err := f.Specs()
		gt.NoError(t, err)
		gt.Equal(t, specs, []model.TargetSpec{model.DefaultsSpec{}})
	})
}
