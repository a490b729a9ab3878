package curate

// Filter keeps action scenes that meet the confidence floor and duration bounds.
// Order is preserved; an empty result is a valid outcome. counts tallies drops per reason.
func Filter(scenes []Scene, minConfidence, minDuration, maxDuration float64) (kept []Scene, counts map[string]int) {
	kept = make([]Scene, 0, len(scenes))
	counts = make(map[string]int)
	for _, s := range scenes {
		if reason := rejectReason(s, minConfidence, minDuration, maxDuration); reason != "" {
			counts[reason]++
			continue
		}
		kept = append(kept, s)
	}
	return kept, counts
}

func rejectReason(s Scene, minConfidence, minDuration, maxDuration float64) string {
	d := s.Duration()
	switch {
	case !s.IsAction:
		return ReasonNotAction
	case s.Confidence < minConfidence:
		return ReasonLowConfidence
	case d < minDuration:
		return ReasonTooShort
	case d > maxDuration:
		return ReasonTooLong
	}
	return ""
}
