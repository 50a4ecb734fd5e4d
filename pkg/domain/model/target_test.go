package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
)

func TestTargetKey(t *testing.T) {
	target := model.Target{Org: "acme", Project: "alpha"}
	gt.Equal(t, target.Key(), types.TargetKey("acme/alpha"))
	gt.Equal(t, target.String(), "acme/alpha")
}

func TestDedupTargets(t *testing.T) {
	targets := []model.Target{
		{Org: "acme", Project: "alpha"},
		{Org: "acme", Project: "beta"},
		{Org: "acme", Project: "alpha"},
		{Org: "wayne", Project: "alpha"},
	}

	deduped := model.DedupTargets(targets)
	gt.Equal(t, deduped, []model.Target{
		{Org: "acme", Project: "alpha"},
		{Org: "acme", Project: "beta"},
		{Org: "wayne", Project: "alpha"},
	})
}

func TestDedupTargetsEmpty(t *testing.T) {
	gt.Equal(t, len(model.DedupTargets(nil)), 0)
}
