package gamification

import "testing"

// TestLevelForXP проверяет кривую уровней на граничных значениях.
func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{5000, 10},
		{99999, 10},
	}

	for _, tc := range cases {
		if got := LevelForXP(tc.xp); got != tc.want {
			t.Fatalf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

// TestLevelCurveMonotonic проверяет монотонность порогов.
func TestLevelCurveMonotonic(t *testing.T) {
	for level := 2; level <= MaxLevel; level++ {
		if XPForLevel(level) <= XPForLevel(level-1) {
			t.Fatalf("threshold for level %d is not above level %d", level, level-1)
		}
	}
}

// TestMaxLevel проверяет согласованность MaxLevel с порогами кривой.
func TestMaxLevel(t *testing.T) {
	if MaxLevel != len(levelThresholds) {
		t.Fatalf("MaxLevel = %d, want %d", MaxLevel, len(levelThresholds))
	}

	if got := LevelForXP(levelThresholds[MaxLevel-1]); got != MaxLevel {
		t.Fatalf("expected max level at last threshold, got %d", got)
	}
}

// TestXPToNextLevel проверяет расчет остатка до следующего уровня.
func TestXPToNextLevel(t *testing.T) {
	if got := XPToNextLevel(0); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}

	if got := XPToNextLevel(120); got != 130 {
		t.Fatalf("expected 130, got %d", got)
	}

	if got := XPToNextLevel(5000); got != 0 {
		t.Fatalf("expected 0 at max level, got %d", got)
	}
}
