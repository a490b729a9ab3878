// Package curate turns independently scored scene candidates into an ordered,
// duration bounded selection for a highlight reel.
//
// Stage order: validate -> resolve -> filter -> rank -> balance -> pack -> project.
// Every stage is a pure function over its input slice and returns a new slice;
// callers may run Prepare per source video concurrently but must merge before Select
package curate

import "encoding/json"

// UnknownLabel is the label used when the classifier did not supply one
const UnknownLabel = "unknown"

// Scene is a contiguous time range of a source video with a classification
// Times are seconds from the start of the source
type Scene struct {
	ID          string       `json:"id"`
	SourceRef   string       `json:"source_ref"`
	Start       float64      `json:"start"`
	End         float64      `json:"end"`
	Label       string       `json:"label"`
	Confidence  float64      `json:"confidence"`
	IsAction    bool         `json:"is_action"`
	SubSegments []SubSegment `json:"sub_segments,omitempty"`
}

// SubSegment is an independently scored sub range of a long scene
// only the resolver reads these
type SubSegment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	IsAction   bool    `json:"is_action"`
}

// Segment is the projection handed to the external compiler
type Segment struct {
	SceneID    string  `json:"scene_id"`
	SourceRef  string  `json:"source_ref"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Duration is always derived from the time range, never stored
func (s Scene) Duration() float64 { return s.End - s.Start }

// UnmarshalJSON accepts classifier output that also carries a duration and discards it,
// so Duration can only ever come from the time range
func (s *Scene) UnmarshalJSON(b []byte) error {
	type plain Scene
	var in struct {
		plain
		Duration json.RawMessage `json:"duration"`
	}
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*s = Scene(in.plain)
	return nil
}

// Duration of the sub range
func (s SubSegment) Duration() float64 { return s.End - s.Start }

// Duration of the projected segment
func (s Segment) Duration() float64 { return s.End - s.Start }

// clone copies s without its sub segments
func (s Scene) clone() Scene {
	s.SubSegments = nil
	return s
}

// Project maps accepted scenes to output segments, preserving order
func Project(scenes []Scene) []Segment {
	out := make([]Segment, 0, len(scenes))
	for _, s := range scenes {
		out = append(out, Segment{
			SceneID:    s.ID,
			SourceRef:  s.SourceRef,
			Start:      s.Start,
			End:        s.End,
			Label:      s.Label,
			Confidence: s.Confidence,
		})
	}
	return out
}
