package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/types"
)

func TestMakeMetadataComputedFields(t *testing.T) {
	p := New(sampleProfile(), nil)
	dict := sampleDictionaries()[1]
	window := sampleDefinition().TrainMatrix

	meta := p.makeMetadata(window, dict, "churn", "binary", "active", types.MatrixTypeTrain)

	assert.Equal(t, "2023-01-01", meta.FeatureStartTime)
	assert.Equal(t, window.MatrixInfoEndTime, meta.EndTime)
	assert.Equal(t, []string{"entity_id", "as_of_date"}, meta.Indices)
	assert.Equal(t, []string{"order_count", "gmv", "click_count"}, meta.FeatureNames)
	assert.Equal(t, []string{"orders", "clicks"}, meta.FeatureGroups)
	assert.Equal(t, "churn", meta.LabelName)
	assert.Equal(t, "binary", meta.LabelType)
	assert.Equal(t, types.DefaultCohortName, meta.CohortName)
	assert.Equal(t, "active", meta.State)
	assert.Equal(t, "churn_binary_2024-01-01_2024-04-01", meta.MatrixID)
	assert.Equal(t, types.MatrixTypeTrain, meta.MatrixType)

	// window fields carried verbatim
	assert.Equal(t, window.FirstAsOfTime, meta.FirstAsOfTime)
	assert.Equal(t, window.LastAsOfTime, meta.LastAsOfTime)
	assert.Equal(t, window.AsOfTimes, meta.AsOfTimes)
	assert.Equal(t, window.TrainingLabelTimespan, meta.TrainingLabelTimespan)
}

func TestLabelTimespanPrefersTestFieldForBothRoles(t *testing.T) {
	window := models.TemporalWindow{
		TrainingLabelTimespan: "30 days",
		TestLabelTimespan:     "7 days",
	}
	assert.Equal(t, "7 days", labelTimespan(window), "test timespan wins even for train records")

	window.TestLabelTimespan = ""
	assert.Equal(t, "30 days", labelTimespan(window))

	window.TrainingLabelTimespan = ""
	assert.Equal(t, "0 days", labelTimespan(window))
}

func TestAsOfDateFrequencyPrefersMatchingRole(t *testing.T) {
	window := models.TemporalWindow{
		TrainingAsOfDateFrequency: "1 month",
		TestAsOfDateFrequency:     "1 week",
	}
	assert.Equal(t, "1 month", asOfDateFrequency(window, types.MatrixTypeTrain))
	assert.Equal(t, "1 week", asOfDateFrequency(window, types.MatrixTypeTest))

	window.TrainingAsOfDateFrequency = ""
	assert.Equal(t, "1 week", asOfDateFrequency(window, types.MatrixTypeTrain))

	window.TestAsOfDateFrequency = ""
	assert.Empty(t, asOfDateFrequency(window, types.MatrixTypeTrain))
}

func TestUserMetadataOverridesAllowListedField(t *testing.T) {
	profile := sampleProfile()
	profile.UserMetadata = map[string]any{
		"cohort_name":    "reactivation",
		"label_timespan": "14 days",
	}
	p := New(profile, nil)
	window := sampleDefinition().TrainMatrix

	meta := p.makeMetadata(window, sampleDictionaries()[0], "churn", "binary", "active", types.MatrixTypeTrain)

	assert.Equal(t, "reactivation", meta.CohortName)
	assert.Equal(t, "14 days", meta.LabelTimespan, "user metadata wins over the window-derived timespan")
}

func TestUserMetadataCannotOverrideProtectedField(t *testing.T) {
	profile := sampleProfile()
	profile.UserMetadata = map[string]any{
		"label_name":  "smuggled",
		"matrix_type": "train",
	}
	obs := &recordingObserver{}
	p := New(profile, obs)

	meta := p.makeMetadata(sampleDefinition().TrainMatrix, sampleDictionaries()[0], "churn", "binary", "active", types.MatrixTypeTrain)

	assert.Equal(t, "churn", meta.LabelName)
	assert.Equal(t, types.MatrixTypeTrain, meta.MatrixType)
	assert.ElementsMatch(t, []string{"label_name", "matrix_type"}, obs.rejected)
}

func TestUserMetadataWrongTypeIsRejected(t *testing.T) {
	profile := sampleProfile()
	profile.UserMetadata = map[string]any{
		"cohort_name": 42,
		"as_of_times": []any{"2024-01-01", 7},
	}
	obs := &recordingObserver{}
	p := New(profile, obs)
	window := sampleDefinition().TrainMatrix

	meta := p.makeMetadata(window, sampleDictionaries()[0], "churn", "binary", "active", types.MatrixTypeTrain)

	assert.Equal(t, types.DefaultCohortName, meta.CohortName)
	assert.Equal(t, window.AsOfTimes, meta.AsOfTimes)
	assert.ElementsMatch(t, []string{"cohort_name", "as_of_times"}, obs.rejected)
}

func TestUserMetadataUnknownKeysLandInExtra(t *testing.T) {
	profile := sampleProfile()
	profile.UserMetadata = map[string]any{
		"owner_team": "growth",
		"priority":   "p1",
	}
	p := New(profile, nil)

	meta := p.makeMetadata(sampleDefinition().TrainMatrix, sampleDictionaries()[0], "churn", "binary", "active", types.MatrixTypeTrain)

	require.NotNil(t, meta.Extra)
	assert.Equal(t, "growth", meta.Extra["owner_team"])
	assert.Equal(t, "p1", meta.Extra["priority"])
}

func TestUserMetadataAsOfTimesOverride(t *testing.T) {
	profile := sampleProfile()
	profile.UserMetadata = map[string]any{
		"as_of_times": []any{"2024-07-01", "2024-08-01"},
	}
	p := New(profile, nil)

	meta := p.makeMetadata(sampleDefinition().TrainMatrix, sampleDictionaries()[0], "churn", "binary", "active", types.MatrixTypeTrain)

	assert.Equal(t, []string{"2024-07-01", "2024-08-01"}, meta.AsOfTimes)
}

func TestWindowExtrasMergeIntoMetadata(t *testing.T) {
	window := sampleDefinition().TrainMatrix
	window.Extra = map[string]any{"chopper_version": "v3"}
	p := New(sampleProfile(), nil)

	meta := p.makeMetadata(window, sampleDictionaries()[0], "churn", "binary", "active", types.MatrixTypeTrain)

	require.NotNil(t, meta.Extra)
	assert.Equal(t, "v3", meta.Extra["chopper_version"])
}
