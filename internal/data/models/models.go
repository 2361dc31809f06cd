package models

import (
	"github.com/Meesho/BharatMLStack/matrix-planner/internal/types"
)

// TemporalWindow is one train or test slice produced by the upstream
// time-chopper. All timestamps are opaque strings: the planner never parses
// them, it only carries them into metadata and identifiers.
type TemporalWindow struct {
	FirstAsOfTime             string         `json:"first_as_of_time,omitempty"`
	LastAsOfTime              string         `json:"last_as_of_time,omitempty"`
	MatrixInfoEndTime         string         `json:"matrix_info_end_time,omitempty"`
	AsOfTimes                 []string       `json:"as_of_times,omitempty"`
	TrainingAsOfDateFrequency string         `json:"training_as_of_date_frequency,omitempty"`
	TestAsOfDateFrequency     string         `json:"test_as_of_date_frequency,omitempty"`
	TrainingLabelTimespan     string         `json:"training_label_timespan,omitempty"`
	TestLabelTimespan         string         `json:"test_label_timespan,omitempty"`
	MaxTrainingHistory        string         `json:"max_training_history,omitempty"`
	TestDuration              string         `json:"test_duration,omitempty"`
	Extra                     map[string]any `json:"extra,omitempty"`
}

func (w TemporalWindow) Clone() TemporalWindow {
	out := w
	out.AsOfTimes = cloneStrings(w.AsOfTimes)
	out.Extra = cloneExtra(w.Extra)
	return out
}

// MatrixSetDefinition groups one train window with its test windows. The
// planner annotates deep copies with TrainUUID/TestUUIDs; inputs stay
// untouched.
type MatrixSetDefinition struct {
	FeatureStartTime string           `json:"feature_start_time,omitempty"`
	FeatureEndTime   string           `json:"feature_end_time,omitempty"`
	LabelStartTime   string           `json:"label_start_time,omitempty"`
	LabelEndTime     string           `json:"label_end_time,omitempty"`
	TrainMatrix      TemporalWindow   `json:"train_matrix"`
	TestMatrices     []TemporalWindow `json:"test_matrices"`
	Extra            map[string]any   `json:"extra,omitempty"`

	TrainUUID string   `json:"train_uuid,omitempty"`
	TestUUIDs []string `json:"test_uuids,omitempty"`
}

func (d MatrixSetDefinition) Clone() MatrixSetDefinition {
	out := d
	out.TrainMatrix = d.TrainMatrix.Clone()
	if d.TestMatrices != nil {
		out.TestMatrices = make([]TemporalWindow, len(d.TestMatrices))
		for i, w := range d.TestMatrices {
			out.TestMatrices[i] = w.Clone()
		}
	}
	out.Extra = cloneExtra(d.Extra)
	out.TestUUIDs = cloneStrings(d.TestUUIDs)
	return out
}

// FeatureTable names one source table and the feature columns taken from it.
// Column order is meaningful and preserved end to end.
type FeatureTable struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// FeatureDictionary is an ordered grouping of feature tables. A slice rather
// than a map so iteration order is defined, which the identifier depends on.
type FeatureDictionary struct {
	Tables []FeatureTable `json:"tables"`
}

// Names returns the table-name view in dictionary order.
func (d FeatureDictionary) Names() []string {
	out := make([]string, 0, len(d.Tables))
	for _, t := range d.Tables {
		out = append(out, t.Name)
	}
	return out
}

// FeatureNames flattens every column across every table, table order and
// column order preserved.
func (d FeatureDictionary) FeatureNames() []string {
	total := 0
	for _, t := range d.Tables {
		total += len(t.Columns)
	}
	out := make([]string, 0, total)
	for _, t := range d.Tables {
		out = append(out, t.Columns...)
	}
	return out
}

func (d FeatureDictionary) Clone() FeatureDictionary {
	if d.Tables == nil {
		return FeatureDictionary{}
	}
	tables := make([]FeatureTable, len(d.Tables))
	for i, t := range d.Tables {
		tables[i] = FeatureTable{Name: t.Name, Columns: cloneStrings(t.Columns)}
	}
	return FeatureDictionary{Tables: tables}
}

// MatrixMetadata is the complete self-describing record for one matrix. Two
// records with identical field content describe the same matrix and must map
// to the same build-task identifier.
type MatrixMetadata struct {
	FeatureStartTime  string           `json:"feature_start_time,omitempty"`
	EndTime           string           `json:"end_time,omitempty"`
	AsOfDateFrequency string           `json:"as_of_date_frequency,omitempty"`
	Indices           []string         `json:"indices"`
	FeatureNames      []string         `json:"feature_names"`
	FeatureGroups     []string         `json:"feature_groups"`
	LabelName         string           `json:"label_name"`
	LabelType         string           `json:"label_type"`
	LabelTimespan     string           `json:"label_timespan"`
	CohortName        string           `json:"cohort_name"`
	State             string           `json:"state"`
	MatrixID          string           `json:"matrix_id"`
	MatrixType        types.MatrixType `json:"matrix_type"`

	// Window fields carried through verbatim by the overlay.
	FirstAsOfTime             string         `json:"first_as_of_time,omitempty"`
	LastAsOfTime              string         `json:"last_as_of_time,omitempty"`
	MatrixInfoEndTime         string         `json:"matrix_info_end_time,omitempty"`
	AsOfTimes                 []string       `json:"as_of_times,omitempty"`
	TrainingAsOfDateFrequency string         `json:"training_as_of_date_frequency,omitempty"`
	TestAsOfDateFrequency     string         `json:"test_as_of_date_frequency,omitempty"`
	TrainingLabelTimespan     string         `json:"training_label_timespan,omitempty"`
	TestLabelTimespan         string         `json:"test_label_timespan,omitempty"`
	MaxTrainingHistory        string         `json:"max_training_history,omitempty"`
	TestDuration              string         `json:"test_duration,omitempty"`
	Extra                     map[string]any `json:"extra,omitempty"`
}

// BuildTask is the materialization order for one unique matrix. Created at
// most once per identifier and never mutated afterwards.
type BuildTask struct {
	AsOfTimes         []string          `json:"as_of_times"`
	LabelName         string            `json:"label_name"`
	LabelType         string            `json:"label_type"`
	FeatureDictionary FeatureDictionary `json:"feature_dictionary"`
	MatrixDirectory   string            `json:"matrix_directory"`
	MatrixUUID        string            `json:"matrix_uuid"`
	Metadata          MatrixMetadata    `json:"matrix_metadata"`
	MatrixType        types.MatrixType  `json:"matrix_type"`
}

// PlanOutput pairs the annotated definitions (one per matrix set and
// combination) with the deduplicated registry keyed by matrix identifier.
type PlanOutput struct {
	Definitions []MatrixSetDefinition `json:"definitions"`
	BuildTasks  map[string]BuildTask  `json:"build_tasks"`
}

type PublishResult struct {
	MessageID string
}

// PlannerProfile is the collection-level planner configuration, fixed for
// the lifetime of one planner instance.
type PlannerProfile struct {
	FeatureStartTime string         `json:"feature_start_time"`
	LabelNames       []string       `json:"label_names"`
	LabelTypes       []string       `json:"label_types"`
	States           []string       `json:"states"`
	MatrixDirectory  string         `json:"matrix_directory"`
	CohortName       string         `json:"cohort_name"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

// Normalized applies construction-time defaults: an absent state list becomes
// the single built-in active state, an absent cohort name becomes "default".
func (p PlannerProfile) Normalized() PlannerProfile {
	out := p
	out.States = types.NormalizeStates(p.States)
	if out.CohortName == "" {
		out.CohortName = types.DefaultCohortName
	}
	out.LabelNames = cloneStrings(p.LabelNames)
	out.LabelTypes = cloneStrings(p.LabelTypes)
	out.UserMetadata = cloneExtra(p.UserMetadata)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneExtra(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneExtra(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return cloneStrings(t)
	default:
		return v
	}
}
