// Package matrixid derives the stable content identifier for a matrix from
// its metadata record. The identifier is a name-based UUID over a canonical
// key-sorted JSON encoding, so any two structurally equal records yield the
// same identifier regardless of the host's map iteration order.
package matrixid

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Meesho/BharatMLStack/matrix-planner/internal/data/models"
)

var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("bharatml.meesho.com/matrix-planner"))

// ForMetadata computes the matrix UUID for a metadata record.
func ForMetadata(meta models.MatrixMetadata) string {
	raw, err := json.Marshal(canonicalMap(meta))
	if err != nil {
		// Metadata holds only strings, string slices and JSON-decoded extras,
		// all of which marshal.
		panic(err)
	}
	return uuid.NewSHA1(namespace, raw).String()
}

// canonicalMap flattens the record into a single map, absent optional fields
// omitted. encoding/json sorts map keys at every nesting level, which is the
// canonicalization the identifier contract requires.
func canonicalMap(meta models.MatrixMetadata) map[string]any {
	m := map[string]any{
		"indices":        meta.Indices,
		"feature_names":  meta.FeatureNames,
		"feature_groups": meta.FeatureGroups,
		"label_name":     meta.LabelName,
		"label_type":     meta.LabelType,
		"label_timespan": meta.LabelTimespan,
		"cohort_name":    meta.CohortName,
		"state":          meta.State,
		"matrix_id":      meta.MatrixID,
		"matrix_type":    string(meta.MatrixType),
	}
	putNonEmpty(m, "feature_start_time", meta.FeatureStartTime)
	putNonEmpty(m, "end_time", meta.EndTime)
	putNonEmpty(m, "as_of_date_frequency", meta.AsOfDateFrequency)
	putNonEmpty(m, "first_as_of_time", meta.FirstAsOfTime)
	putNonEmpty(m, "last_as_of_time", meta.LastAsOfTime)
	putNonEmpty(m, "matrix_info_end_time", meta.MatrixInfoEndTime)
	putNonEmpty(m, "training_as_of_date_frequency", meta.TrainingAsOfDateFrequency)
	putNonEmpty(m, "test_as_of_date_frequency", meta.TestAsOfDateFrequency)
	putNonEmpty(m, "training_label_timespan", meta.TrainingLabelTimespan)
	putNonEmpty(m, "test_label_timespan", meta.TestLabelTimespan)
	putNonEmpty(m, "max_training_history", meta.MaxTrainingHistory)
	putNonEmpty(m, "test_duration", meta.TestDuration)
	if len(meta.AsOfTimes) > 0 {
		m["as_of_times"] = meta.AsOfTimes
	}
	// Extras never carry schema keys: the metadata overlay routes schema
	// collisions through fields or rejects them.
	for k, v := range meta.Extra {
		m[k] = v
	}
	return m
}

func putNonEmpty(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
