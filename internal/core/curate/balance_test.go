package curate

import "testing"

func TestDeriveMaxPerCategory(t *testing.T) {
	cases := []struct {
		total, cats, minPer, want int
	}{
		{0, 0, 1, 0},
		{5, 2, 1, 3}, // avg 2.5 -> 3.75 -> 3
		{2, 2, 1, 2}, // avg 1 -> 1, floor by minPer+1
		{10, 1, 1, 15},
		{3, 3, 2, 3},
	}
	for _, c := range cases {
		if got := DeriveMaxPerCategory(c.total, c.cats, c.minPer); got != c.want {
			t.Fatalf("DeriveMaxPerCategory(%d,%d,%d) = %d, want %d", c.total, c.cats, c.minPer, got, c.want)
		}
	}
}

func TestBalance_FloorThenCeiling(t *testing.T) {
	ranked := Rank([]Scene{
		sc("a1", "a", 0.9, 0, 5),
		sc("a2", "a", 0.8, 0, 5),
		sc("a3", "a", 0.7, 0, 5),
		sc("a4", "a", 0.6, 0, 5),
		sc("b1", "b", 0.5, 0, 5),
	})
	// derived max is 3, so a gets its floor slot plus two surplus slots
	out := Balance(ranked, 1, 0)
	sameIDs(t, out, "a1", "b1", "a2", "a3")
}

func TestBalance_ExplicitCeiling(t *testing.T) {
	ranked := Rank([]Scene{
		sc("a1", "a", 0.9, 0, 5),
		sc("a2", "a", 0.8, 0, 5),
		sc("b1", "b", 0.7, 0, 5),
		sc("b2", "b", 0.65, 0, 5),
		sc("c1", "c", 0.1, 0, 5),
	})
	out := Balance(ranked, 1, 1)
	sameIDs(t, out, "a1", "b1", "c1")

	out = Balance(ranked, 0, 1)
	sameIDs(t, out, "a1", "b1", "c1")

	out = Balance(ranked, 2, 2)
	sameIDs(t, out, "a1", "a2", "b1", "b2", "c1")
}

func TestBalance_SurplusTiesFollowRankedOrder(t *testing.T) {
	ranked := []Scene{
		sc("b1", "b", 0.9, 0, 5),
		sc("a1", "a", 0.8, 0, 5),
		sc("a2", "a", 0.7, 0, 5),
		sc("b2", "b", 0.7, 0, 5),
	}
	out := Balance(ranked, 1, 2)
	sameIDs(t, out, "b1", "a1", "a2", "b2")
}

func TestBalance_FloorBeatsHigherConfidence(t *testing.T) {
	ranked := Rank([]Scene{
		sc("a1", "a", 0.99, 0, 5),
		sc("a2", "a", 0.98, 0, 5),
		sc("a3", "a", 0.97, 0, 5),
		sc("rare", "b", 0.31, 0, 5),
	})
	out := Balance(ranked, 1, 0)
	if out[1].ID != "rare" {
		t.Fatalf("minority label must take a floor slot ahead of surplus, got %v", ids(out))
	}
}

func TestBalance_Empty(t *testing.T) {
	if out := Balance(nil, 1, 0); out == nil || len(out) != 0 {
		t.Fatalf("balance(nil) = %v", out)
	}
}

func TestBalance_DoesNotDuplicateOrInvent(t *testing.T) {
	ranked := Rank([]Scene{
		sc("a1", "a", 0.9, 0, 5),
		sc("b1", "b", 0.9, 0, 5),
		sc("a2", "a", 0.4, 0, 5),
		sc("c1", "c", 0.6, 0, 5),
		sc("b2", "b", 0.5, 0, 5),
	})
	out := Balance(ranked, 1, 0)
	seen := map[string]bool{}
	for _, s := range out {
		if seen[s.ID] {
			t.Fatalf("duplicate %s in %v", s.ID, ids(out))
		}
		seen[s.ID] = true
	}
	if len(out) > len(ranked) {
		t.Fatalf("balance grew the list")
	}
}
