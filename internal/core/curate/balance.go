package curate

import (
	"math"
	"slices"
)

// DeriveMaxPerCategory is the ceiling used when the caller leaves it unset:
// max(floor(avg*1.5), minPer+1) with avg the mean group size. No categories means no ceiling.
func DeriveMaxPerCategory(total, categories, minPer int) int {
	if categories == 0 {
		return total
	}
	avg := float64(total) / float64(categories)
	return max(int(math.Floor(avg*1.5)), minPer+1)
}

// Balance spreads ranked scenes across labels.
//
// Phase A takes the top minPer scenes of every label in order of first appearance.
// Phase B takes up to maxPer-minPer more from what each label has left, merges them and
// orders the surplus by confidence, ties going to the earlier ranked scene. The output is
// Phase A followed by Phase B. maxPer <= 0 derives the ceiling.
func Balance(ranked []Scene, minPer, maxPer int) []Scene {
	if len(ranked) == 0 {
		return []Scene{}
	}

	var order []string
	groups := make(map[string][]int)
	for i, s := range ranked {
		if _, ok := groups[s.Label]; !ok {
			order = append(order, s.Label)
		}
		groups[s.Label] = append(groups[s.Label], i)
	}
	if maxPer <= 0 {
		maxPer = DeriveMaxPerCategory(len(ranked), len(order), minPer)
	}

	out := make([]Scene, 0, len(ranked))
	var surplus []int
	extra := maxPer - minPer
	for _, label := range order {
		idx := groups[label]
		floor := min(minPer, len(idx))
		for _, i := range idx[:floor] {
			out = append(out, ranked[i])
		}
		if extra > 0 {
			rest := idx[floor:]
			surplus = append(surplus, rest[:min(extra, len(rest))]...)
		}
	}

	slices.SortStableFunc(surplus, func(a, b int) int {
		if c := byConfidenceDesc(ranked[a], ranked[b]); c != 0 {
			return c
		}
		return a - b
	})
	for _, i := range surplus {
		out = append(out, ranked[i])
	}
	return out
}
