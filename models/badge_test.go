package models

import "testing"

func TestValidateBadgeCatalog(t *testing.T) {
	if err := ValidateBadgeCatalog(); err != nil {
		t.Fatalf("shipped catalog is invalid: %v", err)
	}
}

func TestBadgeCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool, len(BadgeCatalog))
	for _, def := range BadgeCatalog {
		if seen[def.ID] {
			t.Errorf("duplicate badge id %q", def.ID)
		}
		seen[def.ID] = true
	}
}

func TestBadgeCatalog_EveryDimensionRepresented(t *testing.T) {
	byDim := make(map[BadgeDimension]int)
	for _, def := range BadgeCatalog {
		byDim[def.Dimension]++
	}
	for dim := range knownDimensions {
		if byDim[dim] == 0 {
			t.Errorf("dimension %s has no badges in the catalog", dim)
		}
	}
}

func TestBadgeByID(t *testing.T) {
	def, ok := BadgeByID("first_workout")
	if !ok || def.Dimension != DimensionWorkout || def.Threshold != 1 {
		t.Errorf("BadgeByID(first_workout) = %+v, %t", def, ok)
	}
	if _, ok := BadgeByID("nope"); ok {
		t.Error("BadgeByID should report unknown ids")
	}
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int64
		want int
	}{
		{-50, 1},
		{0, 1},
		{99, 1},
		{100, 2},
		{105, 2},
		{199, 2},
		{200, 3},
		{1000, 11},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}
