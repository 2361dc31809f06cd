package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/adapters/etcd"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
)

func TestNewManagerLoadsEagerly(t *testing.T) {
	store := etcd.NewMemoryProfileStore(models.PlannerProfile{
		LabelNames: []string{"churn"},
		LabelTypes: []string{"binary"},
	})

	m, err := NewManager(store)
	require.NoError(t, err)

	profile := m.Profile()
	assert.Equal(t, []string{"churn"}, profile.LabelNames)
	assert.Equal(t, []string{"active"}, profile.States, "profile is normalized on load")
	assert.Equal(t, "default", profile.CohortName)
}

func TestRefreshPicksUpStoreChanges(t *testing.T) {
	store := etcd.NewMemoryProfileStore(models.PlannerProfile{
		LabelNames: []string{"churn"},
	})
	m, err := NewManager(store)
	require.NoError(t, err)

	store.Set(models.PlannerProfile{
		LabelNames: []string{"churn", "repeat_purchase"},
		States:     []string{"dormant"},
	})
	require.NoError(t, m.Refresh())

	profile := m.Profile()
	assert.Equal(t, []string{"churn", "repeat_purchase"}, profile.LabelNames)
	assert.Equal(t, []string{"dormant"}, profile.States)
}
