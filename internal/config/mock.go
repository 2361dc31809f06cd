package config

import (
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
)

// MockManager serves a fixed profile; for tests.
type MockManager struct {
	Fixed models.PlannerProfile
}

func (m MockManager) Profile() models.PlannerProfile {
	return m.Fixed.Normalized()
}

func (m MockManager) Refresh() error {
	return nil
}
