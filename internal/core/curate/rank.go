package curate

import "slices"

// Rank orders scenes by confidence, highest first. Equal confidences keep their input order.
func Rank(scenes []Scene) []Scene {
	out := slices.Clone(scenes)
	if out == nil {
		out = []Scene{}
	}
	slices.SortStableFunc(out, byConfidenceDesc)
	return out
}

func byConfidenceDesc(a, b Scene) int {
	switch {
	case a.Confidence > b.Confidence:
		return -1
	case a.Confidence < b.Confidence:
		return 1
	}
	return 0
}
