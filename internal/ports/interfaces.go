package ports

import (
	"context"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
)

// QueuePublisher hands registered build tasks to the external
// materialization component. Publishing dispatches the plan; it never
// executes builds.
type QueuePublisher interface {
	PublishBuildTask(ctx context.Context, task models.BuildTask) (models.PublishResult, error)
}

// ProfileStore loads the deployed planner profile.
type ProfileStore interface {
	Load(ctx context.Context) (models.PlannerProfile, error)
}
