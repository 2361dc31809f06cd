// Package planner expands matrix-set definitions across every configured
// (label name x label type x state x feature dictionary) combination,
// annotates deep copies of the definitions with content-derived matrix
// identifiers and registers exactly one build task per unique identifier.
package planner

import (
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/matrixid"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/types"
)

type Planner struct {
	profile  models.PlannerProfile
	observer Observer
}

// New builds a planner for one profile. The profile is normalized at
// construction: an empty state list becomes the built-in active state, so
// the state axis of the cross product is never empty.
func New(profile models.PlannerProfile, observer Observer) *Planner {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Planner{
		profile:  profile.Normalized(),
		observer: observer,
	}
}

// GeneratePlans expands every matrix-set definition against every feature
// dictionary. Output carries one annotated clone per (matrix set x label
// name x label type x state x feature dictionary) combination, iterated with
// label name outermost and feature dictionary innermost, plus the
// accumulated build-task registry. The inputs are never mutated, and a
// registry entry is written once: the first combination to produce an
// identifier owns its task.
func (p *Planner) GeneratePlans(
	matrixSetDefinitions []models.MatrixSetDefinition,
	featureDictionaries []models.FeatureDictionary,
) models.PlanOutput {
	updated := make([]models.MatrixSetDefinition, 0, len(matrixSetDefinitions))
	buildTasks := make(map[string]models.BuildTask)

	for _, matrixSet := range matrixSetDefinitions {
		for _, labelName := range p.profile.LabelNames {
			for _, labelType := range p.profile.LabelTypes {
				for _, state := range p.profile.States {
					for _, dictionary := range featureDictionaries {
						clone := matrixSet.Clone()

						trainMeta := p.makeMetadata(matrixSet.TrainMatrix, dictionary, labelName, labelType, state, types.MatrixTypeTrain)
						clone.TrainUUID = p.register(buildTasks, trainMeta, matrixSet.TrainMatrix, dictionary)

						clone.TestUUIDs = make([]string, 0, len(clone.TestMatrices))
						for _, testWindow := range clone.TestMatrices {
							testMeta := p.makeMetadata(testWindow, dictionary, labelName, labelType, state, types.MatrixTypeTest)
							clone.TestUUIDs = append(clone.TestUUIDs, p.register(buildTasks, testMeta, testWindow, dictionary))
						}

						updated = append(updated, clone)
					}
				}
			}
		}
	}

	p.observer.PlanDone(len(updated), len(buildTasks))
	return models.PlanOutput{Definitions: updated, BuildTasks: buildTasks}
}

// register computes the identifier for a metadata record and inserts the
// corresponding build task if the identifier is new. An existing task is
// reused untouched, first writer wins.
func (p *Planner) register(
	buildTasks map[string]models.BuildTask,
	meta models.MatrixMetadata,
	window models.TemporalWindow,
	dictionary models.FeatureDictionary,
) string {
	matrixUUID := matrixid.ForMetadata(meta)
	if _, ok := buildTasks[matrixUUID]; ok {
		p.observer.TaskReused(matrixUUID, meta.MatrixType)
		return matrixUUID
	}

	buildTasks[matrixUUID] = models.BuildTask{
		AsOfTimes:         append([]string(nil), window.AsOfTimes...),
		LabelName:         meta.LabelName,
		LabelType:         meta.LabelType,
		FeatureDictionary: dictionary.Clone(),
		MatrixDirectory:   p.profile.MatrixDirectory,
		MatrixUUID:        matrixUUID,
		Metadata:          meta,
		MatrixType:        meta.MatrixType,
	}
	p.observer.TaskAdded(matrixUUID, meta.MatrixType)
	return matrixUUID
}
