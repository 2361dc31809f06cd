package types

import "strings"

type MatrixType string

const (
	MatrixTypeTrain MatrixType = "train"
	MatrixTypeTest  MatrixType = "test"
)

// DefaultActiveState is the entity-state expression applied when a planner
// profile declares no state filters: every entity is eligible.
const DefaultActiveState = "active"

const DefaultCohortName = "default"

func NormalizeMatrixType(raw string) MatrixType {
	return MatrixType(strings.ToLower(strings.TrimSpace(raw)))
}

func IsSupportedMatrixType(raw string) bool {
	n := NormalizeMatrixType(raw)
	return n == MatrixTypeTrain || n == MatrixTypeTest
}

// NormalizeStates guarantees a non-empty state list so the planner's cross
// product never silently collapses to zero combinations on the state axis.
func NormalizeStates(states []string) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{DefaultActiveState}
	}
	return out
}
