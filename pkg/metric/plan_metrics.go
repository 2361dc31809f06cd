package metric

import (
	"strconv"
	"time"
)

const (
	PlanGenerationCount       = "plan_generation_count"
	PlanGenerationLatency     = "plan_generation_latency"
	PlanDefinitionGauge       = "plan_definitions"
	PlanBuildTaskGauge        = "plan_build_tasks"
	PlanTaskCreatedCount      = "plan_task_created_count"
	PlanTaskReusedCount       = "plan_task_reused_count"
	PlanOverrideRejectedCount = "plan_override_rejected_count"
)

func ObservePlanGeneration(matrixSets, definitions, buildTasks int, latency time.Duration) {
	tags := BuildTag(
		NewTag("matrix_sets", strconv.Itoa(matrixSets)),
	)

	Incr(PlanGenerationCount, tags)
	Timing(PlanGenerationLatency, latency, tags)
	Gauge(PlanDefinitionGauge, float64(definitions), tags)
	Gauge(PlanBuildTaskGauge, float64(buildTasks), tags)
}

func ObserveTaskRegistered(matrixType string, reused bool) {
	tags := BuildTag(
		NewTag("matrix_type", matrixType),
	)
	if reused {
		Incr(PlanTaskReusedCount, tags)
		return
	}
	Incr(PlanTaskCreatedCount, tags)
}

func ObserveOverrideRejected(key string) {
	Incr(PlanOverrideRejectedCount, BuildTag(NewTag("key", key)))
}
