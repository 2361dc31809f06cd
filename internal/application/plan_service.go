package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/config"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
	mperrors "github.com/Meesho/BharatMLStack/matrix-planner/internal/errors"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/planner"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/ports"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/types"
	"github.com/Meesho/BharatMLStack/matrix-planner/pkg/metric"
)

// PlanRequest is one planning call: the temporal definitions and feature
// dictionaries to expand, an optional profile override (backfills replan
// historical collections without a config rollout) and the dispatch flag
// that hands registered tasks to the queue publisher.
type PlanRequest struct {
	MatrixSetDefinitions []models.MatrixSetDefinition
	FeatureDictionaries  []models.FeatureDictionary
	Profile              *models.PlannerProfile
	Dispatch             bool
}

type PlanService struct {
	config    config.Manager
	publisher ports.QueuePublisher
}

func NewPlanService(cfg config.Manager, publisher ports.QueuePublisher) *PlanService {
	return &PlanService{config: cfg, publisher: publisher}
}

// GeneratePlans runs the planner against the effective profile and, when
// requested, dispatches every registered build task. A profile override
// replaces the deployed profile wholesale so identifier provenance stays
// obvious.
func (s *PlanService) GeneratePlans(ctx context.Context, req PlanRequest) (models.PlanOutput, error) {
	profile := s.config.Profile()
	if req.Profile != nil {
		profile = *req.Profile
	}

	start := time.Now()
	p := planner.New(profile, serviceObserver{})
	out := p.GeneratePlans(req.MatrixSetDefinitions, req.FeatureDictionaries)
	metric.ObservePlanGeneration(len(req.MatrixSetDefinitions), len(out.Definitions), len(out.BuildTasks), time.Since(start))

	if req.Dispatch {
		if err := s.dispatch(ctx, out.BuildTasks); err != nil {
			return models.PlanOutput{}, err
		}
	}
	return out, nil
}

// serviceObserver layers statsd counters on top of the logging observer.
type serviceObserver struct {
	planner.LogObserver
}

func (o serviceObserver) TaskAdded(matrixUUID string, matrixType types.MatrixType) {
	o.LogObserver.TaskAdded(matrixUUID, matrixType)
	metric.ObserveTaskRegistered(string(matrixType), false)
}

func (o serviceObserver) TaskReused(matrixUUID string, matrixType types.MatrixType) {
	o.LogObserver.TaskReused(matrixUUID, matrixType)
	metric.ObserveTaskRegistered(string(matrixType), true)
}

func (o serviceObserver) OverrideRejected(key string) {
	o.LogObserver.OverrideRejected(key)
	metric.ObserveOverrideRejected(key)
}

// dispatch publishes tasks in identifier order so retries and logs are
// deterministic.
func (s *PlanService) dispatch(ctx context.Context, tasks map[string]models.BuildTask) error {
	uuids := make([]string, 0, len(tasks))
	for matrixUUID := range tasks {
		uuids = append(uuids, matrixUUID)
	}
	sort.Strings(uuids)

	for _, matrixUUID := range uuids {
		result, err := s.publisher.PublishBuildTask(ctx, tasks[matrixUUID])
		if err != nil {
			return fmt.Errorf("%w: task %s: %v", mperrors.ErrPublishFailed, matrixUUID, err)
		}
		log.Debug().
			Str("matrix_uuid", matrixUUID).
			Str("message_id", result.MessageID).
			Msg("build task dispatched")
	}
	log.Info().Int("task_count", len(uuids)).Msg("build tasks handed to materialization queue")
	return nil
}
