package curate

import "math"

// Window is one fixed length analysis range of a long scene
type Window struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration of the window
func (w Window) Duration() float64 { return w.End - w.Start }

// Windows partitions [start,end) into length sized windows, the last one truncated to end.
// A trailing window shorter than minWindow is merged into its predecessor so no window is
// degenerate. A range shorter than length yields a single window covering it.
func Windows(start, end, length, minWindow float64) []Window {
	if !validRange(start, end) {
		return nil
	}
	if length <= 0 || !finite(length) {
		return []Window{{Start: start, End: end}}
	}

	n := int(math.Ceil((end - start) / length))
	out := make([]Window, 0, n)
	for i := 0; i < n; i++ {
		// index based to keep float error from accumulating
		ws := start + float64(i)*length
		if ws >= end {
			break
		}
		out = append(out, Window{Start: ws, End: math.Min(ws+length, end)})
	}

	if k := len(out); k > 1 && out[k-1].Duration() < minWindow {
		out[k-2].End = out[k-1].End
		out = out[:k-1]
	}
	return out
}

// PlanWindows returns the windows the classifier should score for s, or nil when the
// scene is short enough to be scored as a whole
func PlanWindows(s Scene, p Params) []Window {
	if s.Duration() <= p.SplitThreshold {
		return nil
	}
	return Windows(s.Start, s.End, p.WindowLength, p.MinWindow)
}
