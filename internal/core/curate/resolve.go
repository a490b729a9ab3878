package curate

// Resolve collapses every long scene with scored sub segments to its best sub segment.
// The result has the same cardinality and order as the input and carries no sub segments.
// It also counts scenes whose score came from a sub segment and records one drop per
// malformed sub segment of a scene that was examined.
func Resolve(scenes []Scene, p Params) ([]Scene, int, []Drop) {
	out := make([]Scene, 0, len(scenes))
	resolved := 0
	var drops []Drop
	for _, s := range scenes {
		r, ok, bad := resolveOne(s, p)
		if ok {
			resolved++
		}
		for range bad {
			drops = append(drops, Drop{SceneID: s.ID, Stage: StageResolve, Reason: ReasonInvalidSubSegment})
		}
		out = append(out, r)
	}
	return out, resolved, drops
}

func resolveOne(s Scene, p Params) (Scene, bool, int) {
	r := s.clone()
	if s.Duration() <= p.SplitThreshold {
		return r, false, 0
	}

	best, bad := -1, 0
	for i, sub := range s.SubSegments {
		if !validRange(sub.Start, sub.End) || !validConfidence(sub.Confidence) {
			bad++
			continue
		}
		// strict compare keeps the first of equal maxima
		if best < 0 || sub.Confidence > s.SubSegments[best].Confidence {
			best = i
		}
	}
	if best < 0 {
		// nothing usable, the scene's own score stands
		return r, false, bad
	}

	w := s.SubSegments[best]
	r.Label = w.Label
	r.Confidence = w.Confidence
	r.IsAction = w.IsAction

	if p.TrimToWindow {
		start, end := max(s.Start, w.Start), min(s.End, w.End)
		if end > start {
			r.Start, r.End = start, end
		}
	}
	return r, true, bad
}
