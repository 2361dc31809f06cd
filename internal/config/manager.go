package config

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/ports"
)

// Manager serves the current planner profile. Refresh is registered as the
// etcd watch callback so a profile rollout takes effect without a restart.
type Manager interface {
	Profile() models.PlannerProfile
	Refresh() error
}

const loadTimeout = 5 * time.Second

type profileManager struct {
	store ports.ProfileStore

	mu      sync.RWMutex
	profile models.PlannerProfile
}

// NewManager loads the profile once, eagerly, so a broken deployment fails at
// startup rather than on the first plan request.
func NewManager(store ports.ProfileStore) (Manager, error) {
	m := &profileManager{store: store}
	if err := m.Refresh(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *profileManager) Profile() models.PlannerProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile
}

func (m *profileManager) Refresh() error {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	profile, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	normalized := profile.Normalized()

	m.mu.Lock()
	m.profile = normalized
	m.mu.Unlock()
	log.Info().
		Int("label_names", len(normalized.LabelNames)).
		Int("label_types", len(normalized.LabelTypes)).
		Int("states", len(normalized.States)).
		Str("cohort_name", normalized.CohortName).
		Msg("planner profile refreshed")
	return nil
}
