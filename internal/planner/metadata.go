package planner

import (
	"sort"
	"strings"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/types"
)

const defaultLabelTimespan = "0 days"

// matrixIDSeparator joins the human-readable composite matrix id. The id is
// for readability only, never for uniqueness.
const matrixIDSeparator = "_"

// indexColumns are fixed for every matrix: one row per (entity, as-of date).
var indexColumns = []string{"entity_id", "as_of_date"}

// overridableFields is the allow-list of schema fields user metadata may
// overwrite. Structural identity fields (indices, feature names/groups,
// label name/type, state, matrix id/type) are deliberately absent.
var overridableFields = map[string]struct{}{
	"feature_start_time":            {},
	"end_time":                      {},
	"as_of_date_frequency":          {},
	"label_timespan":                {},
	"cohort_name":                   {},
	"first_as_of_time":              {},
	"last_as_of_time":               {},
	"matrix_info_end_time":          {},
	"as_of_times":                   {},
	"training_as_of_date_frequency": {},
	"test_as_of_date_frequency":     {},
	"training_label_timespan":       {},
	"test_label_timespan":           {},
	"max_training_history":          {},
	"test_duration":                 {},
}

// protectedFields are schema fields a user-metadata key may collide with but
// never overwrite; collisions are reported through the observer.
var protectedFields = map[string]struct{}{
	"indices":        {},
	"feature_names":  {},
	"feature_groups": {},
	"label_name":     {},
	"label_type":     {},
	"state":          {},
	"matrix_id":      {},
	"matrix_type":    {},
}

// makeMetadata synthesizes the complete metadata record for one matrix. Three
// ordered overlay steps: computed fields, then the window's own fields, then
// user metadata. The order is what makes identical matrices collapse to one
// identifier no matter which matrix set carried which incidental field.
func (p *Planner) makeMetadata(
	window models.TemporalWindow,
	dictionary models.FeatureDictionary,
	labelName string,
	labelType string,
	state string,
	matrixType types.MatrixType,
) models.MatrixMetadata {
	meta := models.MatrixMetadata{
		FeatureStartTime:  p.profile.FeatureStartTime,
		EndTime:           window.MatrixInfoEndTime,
		AsOfDateFrequency: asOfDateFrequency(window, matrixType),
		Indices:           append([]string(nil), indexColumns...),
		FeatureNames:      dictionary.FeatureNames(),
		FeatureGroups:     dictionary.Names(),
		LabelName:         labelName,
		LabelType:         labelType,
		LabelTimespan:     labelTimespan(window),
		CohortName:        p.profile.CohortName,
		State:             state,
		MatrixID:          strings.Join([]string{labelName, labelType, window.FirstAsOfTime, window.MatrixInfoEndTime}, matrixIDSeparator),
		MatrixType:        matrixType,
	}

	overlayWindow(&meta, window)
	p.overlayUserMetadata(&meta)
	return meta
}

// asOfDateFrequency prefers the window field matching the record's role and
// falls back to the other one; absent if the window carries neither.
func asOfDateFrequency(window models.TemporalWindow, matrixType types.MatrixType) string {
	if matrixType == types.MatrixTypeTrain {
		if window.TrainingAsOfDateFrequency != "" {
			return window.TrainingAsOfDateFrequency
		}
		return window.TestAsOfDateFrequency
	}
	if window.TestAsOfDateFrequency != "" {
		return window.TestAsOfDateFrequency
	}
	return window.TrainingAsOfDateFrequency
}

// labelTimespan checks the test field before the training field regardless of
// the record's role. Upstream has always resolved it this way, and changing
// it would re-identify every existing train matrix.
func labelTimespan(window models.TemporalWindow) string {
	if window.TestLabelTimespan != "" {
		return window.TestLabelTimespan
	}
	if window.TrainingLabelTimespan != "" {
		return window.TrainingLabelTimespan
	}
	return defaultLabelTimespan
}

// overlayWindow carries every window field into the record verbatim. Window
// extras land in the record's extra map.
func overlayWindow(meta *models.MatrixMetadata, window models.TemporalWindow) {
	w := window.Clone()
	meta.FirstAsOfTime = w.FirstAsOfTime
	meta.LastAsOfTime = w.LastAsOfTime
	meta.MatrixInfoEndTime = w.MatrixInfoEndTime
	meta.AsOfTimes = w.AsOfTimes
	meta.TrainingAsOfDateFrequency = w.TrainingAsOfDateFrequency
	meta.TestAsOfDateFrequency = w.TestAsOfDateFrequency
	meta.TrainingLabelTimespan = w.TrainingLabelTimespan
	meta.TestLabelTimespan = w.TestLabelTimespan
	meta.MaxTrainingHistory = w.MaxTrainingHistory
	meta.TestDuration = w.TestDuration
	if len(w.Extra) > 0 {
		if meta.Extra == nil {
			meta.Extra = make(map[string]any, len(w.Extra))
		}
		for k, v := range w.Extra {
			meta.Extra[k] = v
		}
	}
}

// overlayUserMetadata applies user metadata last, so it wins over computed
// and window fields. Schema overrides are restricted to the allow-list;
// anything else merges into the extra map. Keys are applied in sorted order
// so observer callbacks fire deterministically.
func (p *Planner) overlayUserMetadata(meta *models.MatrixMetadata) {
	if len(p.profile.UserMetadata) == 0 {
		return
	}
	keys := make([]string, 0, len(p.profile.UserMetadata))
	for k := range p.profile.UserMetadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := p.profile.UserMetadata[key]
		if _, protected := protectedFields[key]; protected {
			p.observer.OverrideRejected(key)
			continue
		}
		if _, overridable := overridableFields[key]; overridable {
			if !applyFieldOverride(meta, key, value) {
				p.observer.OverrideRejected(key)
			}
			continue
		}
		if meta.Extra == nil {
			meta.Extra = make(map[string]any)
		}
		meta.Extra[key] = value
	}
}

// applyFieldOverride sets an allow-listed schema field. A value of the wrong
// type cannot be represented in the record and is reported as rejected.
func applyFieldOverride(meta *models.MatrixMetadata, key string, value any) bool {
	if key == "as_of_times" {
		times, ok := toStringSlice(value)
		if !ok {
			return false
		}
		meta.AsOfTimes = times
		return true
	}

	s, ok := value.(string)
	if !ok {
		return false
	}
	switch key {
	case "feature_start_time":
		meta.FeatureStartTime = s
	case "end_time":
		meta.EndTime = s
	case "as_of_date_frequency":
		meta.AsOfDateFrequency = s
	case "label_timespan":
		meta.LabelTimespan = s
	case "cohort_name":
		meta.CohortName = s
	case "first_as_of_time":
		meta.FirstAsOfTime = s
	case "last_as_of_time":
		meta.LastAsOfTime = s
	case "matrix_info_end_time":
		meta.MatrixInfoEndTime = s
	case "training_as_of_date_frequency":
		meta.TrainingAsOfDateFrequency = s
	case "test_as_of_date_frequency":
		meta.TestAsOfDateFrequency = s
	case "training_label_timespan":
		meta.TrainingLabelTimespan = s
	case "test_label_timespan":
		meta.TestLabelTimespan = s
	case "max_training_history":
		meta.MaxTrainingHistory = s
	case "test_duration":
		meta.TestDuration = s
	default:
		return false
	}
	return true
}

func toStringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
