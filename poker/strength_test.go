package poker

import (
	"math"
	"testing"
)

func TestStrength(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		eval Evaluation
		want float64
	}{
		{"deuce high", Evaluation{Category: HighCard, HighCard: 2}, 0},
		{"ace high", Evaluation{Category: HighCard, HighCard: 14}, 15},
		{"eight high", Evaluation{Category: HighCard, HighCard: 8}, 7.5},
		{"pair", Evaluation{Category: Pair, HighCard: 14}, 12.5},
		{"flush", Evaluation{Category: Flush, HighCard: 14}, 62.5},
		{"full house", Evaluation{Category: FullHouse, HighCard: 9}, 75},
		{"straight flush", Evaluation{Category: StraightFlush, HighCard: 6}, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Strength(tc.eval)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Expected %.2f, got %.2f", tc.want, got)
			}
		})
	}
}

func TestStrengthOfEmptyHand(t *testing.T) {
	t.Parallel()
	if s := StrengthOf(nil, MustParseCards("AsKsQs")); s != 0 {
		t.Errorf("Expected 0 for empty hand, got %f", s)
	}
}

func TestStrengthLabel(t *testing.T) {
	t.Parallel()
	cases := map[float64]string{
		100:  "Very Strong",
		70.1: "Very Strong",
		70:   "Strong",
		50.5: "Strong",
		50:   "Medium",
		31:   "Medium",
		30:   "Weak",
		0:    "Weak",
	}
	for in, want := range cases {
		if got := StrengthLabel(in); got != want {
			t.Errorf("StrengthLabel(%v) = %q, want %q", in, got, want)
		}
	}
}
