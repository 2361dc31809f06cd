package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/adapters/redisq"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/config"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
)

func testManager() config.MockManager {
	return config.MockManager{Fixed: models.PlannerProfile{
		FeatureStartTime: "2023-01-01",
		LabelNames:       []string{"churn"},
		LabelTypes:       []string{"binary"},
		MatrixDirectory:  "/data/matrices",
	}}
}

func testRequest() PlanRequest {
	return PlanRequest{
		MatrixSetDefinitions: []models.MatrixSetDefinition{
			{
				TrainMatrix: models.TemporalWindow{
					FirstAsOfTime:     "2024-01-01",
					MatrixInfoEndTime: "2024-04-01",
					AsOfTimes:         []string{"2024-01-01"},
				},
				TestMatrices: []models.TemporalWindow{
					{
						FirstAsOfTime:     "2024-04-01",
						MatrixInfoEndTime: "2024-05-01",
						AsOfTimes:         []string{"2024-04-01"},
					},
				},
			},
		},
		FeatureDictionaries: []models.FeatureDictionary{
			{Tables: []models.FeatureTable{{Name: "orders", Columns: []string{"gmv"}}}},
		},
	}
}

func TestGeneratePlansWithoutDispatch(t *testing.T) {
	publisher := redisq.NewInMemoryPublisher()
	svc := NewPlanService(testManager(), publisher)

	out, err := svc.GeneratePlans(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Len(t, out.Definitions, 1)
	assert.Len(t, out.BuildTasks, 2)
	assert.Zero(t, publisher.PublishedCount(), "no dispatch requested")
}

func TestGeneratePlansDispatchesEveryTask(t *testing.T) {
	publisher := redisq.NewInMemoryPublisher()
	svc := NewPlanService(testManager(), publisher)

	req := testRequest()
	req.Dispatch = true
	out, err := svc.GeneratePlans(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(len(out.BuildTasks)), publisher.PublishedCount())
}

func TestGeneratePlansProfileOverride(t *testing.T) {
	svc := NewPlanService(testManager(), redisq.NewInMemoryPublisher())

	req := testRequest()
	req.Profile = &models.PlannerProfile{
		LabelNames:      []string{"repeat_purchase", "churn"},
		LabelTypes:      []string{"binary"},
		MatrixDirectory: "/data/backfill",
	}
	out, err := svc.GeneratePlans(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, out.Definitions, 2, "override label names replace the deployed ones")
	for _, task := range out.BuildTasks {
		assert.Equal(t, "/data/backfill", task.MatrixDirectory)
	}
}
