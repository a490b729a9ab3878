package curate

import "math"

// Stage names recorded on drops and in reports
const (
	StageValidate = "validate"
	StageResolve  = "resolve"
	StageFilter   = "filter"
	StagePack     = "pack"
)

// Drop reasons
const (
	ReasonInvalidTimeRange     = "invalid_time_range"
	ReasonConfidenceOutOfRange = "confidence_out_of_range"
	ReasonMissingID            = "missing_id"
	ReasonDuplicateID          = "duplicate_id"
	ReasonInvalidSubSegment    = "invalid_sub_segment"
	ReasonNotAction            = "not_action"
	ReasonLowConfidence        = "low_confidence"
	ReasonTooShort             = "too_short"
	ReasonTooLong              = "too_long"
	ReasonOverBudget           = "over_budget"
)

// Drop records why a scene left the pipeline
type Drop struct {
	SceneID string `json:"scene_id"`
	Stage   string `json:"stage"`
	Reason  string `json:"reason"`
}

// ValidateScenes drops malformed scenes one at a time and keeps the rest in order
// A corrupt record never voids the batch
func ValidateScenes(scenes []Scene) ([]Scene, []Drop) {
	out := make([]Scene, 0, len(scenes))
	var drops []Drop
	seen := make(map[string]struct{}, len(scenes))

	for _, s := range scenes {
		if reason := checkScene(s); reason != "" {
			drops = append(drops, Drop{SceneID: s.ID, Stage: StageValidate, Reason: reason})
			continue
		}
		if _, dup := seen[s.ID]; dup {
			drops = append(drops, Drop{SceneID: s.ID, Stage: StageValidate, Reason: ReasonDuplicateID})
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out, drops
}

func checkScene(s Scene) string {
	switch {
	case s.ID == "":
		return ReasonMissingID
	case !validRange(s.Start, s.End):
		return ReasonInvalidTimeRange
	case !validConfidence(s.Confidence):
		return ReasonConfidenceOutOfRange
	}
	return ""
}

func validRange(start, end float64) bool {
	if !finite(start) || !finite(end) {
		return false
	}
	return start >= 0 && end > start
}

// NaN fails both comparisons
func validConfidence(c float64) bool { return c >= 0 && c <= 1 }

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
