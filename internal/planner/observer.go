package planner

import (
	"github.com/rs/zerolog/log"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/types"
)

// Observer receives progress callbacks from the expansion loop. Injecting it
// keeps the planner a pure function of its inputs; the default is a no-op.
type Observer interface {
	TaskAdded(matrixUUID string, matrixType types.MatrixType)
	TaskReused(matrixUUID string, matrixType types.MatrixType)
	OverrideRejected(key string)
	PlanDone(definitionCount, taskCount int)
}

type NopObserver struct{}

func (NopObserver) TaskAdded(string, types.MatrixType)  {}
func (NopObserver) TaskReused(string, types.MatrixType) {}
func (NopObserver) OverrideRejected(string)             {}
func (NopObserver) PlanDone(int, int)                   {}

// LogObserver reports plan progress through the global zerolog logger.
type LogObserver struct{}

func (LogObserver) TaskAdded(matrixUUID string, matrixType types.MatrixType) {
	log.Debug().Str("matrix_uuid", matrixUUID).Str("matrix_type", string(matrixType)).Msg("build task registered")
}

func (LogObserver) TaskReused(matrixUUID string, matrixType types.MatrixType) {
	log.Debug().Str("matrix_uuid", matrixUUID).Str("matrix_type", string(matrixType)).Msg("build task already registered, reusing")
}

func (LogObserver) OverrideRejected(key string) {
	log.Warn().Str("key", key).Msg("user metadata tried to override a protected metadata field, ignored")
}

func (LogObserver) PlanDone(definitionCount, taskCount int) {
	log.Info().
		Int("definition_count", definitionCount).
		Int("unique_build_tasks", taskCount).
		Msg("matrix plan generation finished")
}
