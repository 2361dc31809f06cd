package etcd

import (
	"context"
	"sync"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
)

// MemoryProfileStore backs mock-adapter runs and tests.
type MemoryProfileStore struct {
	mu      sync.RWMutex
	profile models.PlannerProfile
}

func NewMemoryProfileStore(seed models.PlannerProfile) *MemoryProfileStore {
	return &MemoryProfileStore{profile: seed}
}

func (s *MemoryProfileStore) Load(_ context.Context) (models.PlannerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, nil
}

func (s *MemoryProfileStore) Set(profile models.PlannerProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
}
