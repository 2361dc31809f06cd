package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixSetDefinitionCloneIsDeep(t *testing.T) {
	original := MatrixSetDefinition{
		TrainMatrix: TemporalWindow{
			FirstAsOfTime: "2024-01-01",
			AsOfTimes:     []string{"2024-01-01", "2024-02-01"},
			Extra:         map[string]any{"chopper_version": "v3"},
		},
		TestMatrices: []TemporalWindow{
			{FirstAsOfTime: "2024-03-01", AsOfTimes: []string{"2024-03-01"}},
		},
		Extra: map[string]any{"source": "backfill"},
	}

	clone := original.Clone()
	clone.TrainMatrix.AsOfTimes[0] = "mutated"
	clone.TrainMatrix.Extra["chopper_version"] = "mutated"
	clone.TestMatrices[0].FirstAsOfTime = "mutated"
	clone.Extra["source"] = "mutated"
	clone.TrainUUID = "assigned"

	assert.Equal(t, "2024-01-01", original.TrainMatrix.AsOfTimes[0])
	assert.Equal(t, "v3", original.TrainMatrix.Extra["chopper_version"])
	assert.Equal(t, "2024-03-01", original.TestMatrices[0].FirstAsOfTime)
	assert.Equal(t, "backfill", original.Extra["source"])
	assert.Empty(t, original.TrainUUID)
}

func TestFeatureDictionaryOrderedViews(t *testing.T) {
	dict := FeatureDictionary{Tables: []FeatureTable{
		{Name: "orders", Columns: []string{"order_count", "gmv"}},
		{Name: "clicks", Columns: []string{"click_count"}},
		{Name: "empty_table"},
	}}

	assert.Equal(t, []string{"orders", "clicks", "empty_table"}, dict.Names())
	assert.Equal(t, []string{"order_count", "gmv", "click_count"}, dict.FeatureNames())
}

func TestFeatureDictionaryCloneIsDeep(t *testing.T) {
	dict := FeatureDictionary{Tables: []FeatureTable{
		{Name: "orders", Columns: []string{"order_count"}},
	}}

	clone := dict.Clone()
	clone.Tables[0].Columns[0] = "mutated"
	clone.Tables[0].Name = "mutated"

	assert.Equal(t, "order_count", dict.Tables[0].Columns[0])
	assert.Equal(t, "orders", dict.Tables[0].Name)
}

func TestPlannerProfileNormalizedDefaults(t *testing.T) {
	profile := PlannerProfile{
		LabelNames: []string{"churn"},
		LabelTypes: []string{"binary"},
	}

	normalized := profile.Normalized()
	assert.Equal(t, []string{"active"}, normalized.States)
	assert.Equal(t, "default", normalized.CohortName)
}

func TestPlannerProfileNormalizedTrimsStates(t *testing.T) {
	profile := PlannerProfile{
		States:     []string{" active ", "", "dormant"},
		CohortName: "reactivation",
	}

	normalized := profile.Normalized()
	assert.Equal(t, []string{"active", "dormant"}, normalized.States)
	assert.Equal(t, "reactivation", normalized.CohortName)
}

func TestPlannerProfileNormalizedCopiesUserMetadata(t *testing.T) {
	profile := PlannerProfile{
		UserMetadata: map[string]any{
			"nested": map[string]any{"k": "v"},
		},
	}

	normalized := profile.Normalized()
	require.NotNil(t, normalized.UserMetadata)
	normalized.UserMetadata["nested"].(map[string]any)["k"] = "mutated"

	assert.Equal(t, "v", profile.UserMetadata["nested"].(map[string]any)["k"])
}
