package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/mcts"
)

func TestSpotView(t *testing.T) {
	t.Parallel()
	v, err := Spot{
		HoleCards:  "AsKs",
		Board:      "Qs Js 2d 3c",
		Pot:        200,
		CurrentBet: 60,
		Bet:        20,
		Chips:      30,
		Opponents:  2,
	}.View()
	require.NoError(t, err)

	assert.Equal(t, game.Turn, v.Street)
	assert.Equal(t, 40, v.ToCall)
	assert.Equal(t, 1, v.BigBlind)
	assert.Len(t, v.Seats, 3)
	assert.Len(t, v.Opponents(), 2)
	assert.Equal(t, []game.Action{game.Fold, game.Call, game.AllIn}, v.LegalActions,
		"a short stack may call all in")
	assert.Equal(t, game.ShortStackAllIn, v.ShortStack)
}

func TestSpotMaxOpponents(t *testing.T) {
	t.Parallel()
	v, err := Spot{HoleCards: "AsKs", Chips: 100, Opponents: MaxOpponents}.View()
	require.NoError(t, err)
	assert.Len(t, v.Opponents(), MaxOpponents)
}

func TestAnalyzeDecisionMatchesChildren(t *testing.T) {
	t.Parallel()
	v, err := Spot{HoleCards: "Tc9c", Board: "8c7d2s", Pot: 120, CurrentBet: 40, Chips: 960, Opponents: 2}.View()
	require.NoError(t, err)

	for seed := int64(0); seed < 10; seed++ {
		a, err := Analyze(v, KindMCTS, mcts.Config{Iterations: 60}, &seed, quietLogger())
		require.NoError(t, err)
		require.NotEmpty(t, a.Children)

		most, chosen := 0, -1
		for _, c := range a.Children {
			most = max(most, c.Visits)
			if c.Action == a.Decision.Action {
				chosen = c.Visits
			}
		}
		assert.Equal(t, most, chosen, "seed %d: decision %v is the most visited child", seed, a.Decision.Action)
	}
}

func TestSpotStreetOverride(t *testing.T) {
	t.Parallel()
	v, err := Spot{HoleCards: "2c2d", Street: "river", Chips: 100}.View()
	require.NoError(t, err)
	assert.Equal(t, game.River, v.Street)
}

func TestSpotErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		spot Spot
		want string
	}{
		{"one hole card", Spot{HoleCards: "As"}, "exactly 2 hole cards"},
		{"bad card", Spot{HoleCards: "AsXx"}, "hole cards"},
		{"duplicate", Spot{HoleCards: "AsKs", Board: "As2d3c"}, "duplicate card"},
		{"long board", Spot{HoleCards: "AsKs", Board: "2c3c4c5c6c7c"}, "board has 6 cards"},
		{"bet above current", Spot{HoleCards: "AsKs", Bet: 40, CurrentBet: 20}, "chip amounts"},
		{"street", Spot{HoleCards: "AsKs", Street: "fifth"}, "unknown street"},
		{"too many opponents", Spot{HoleCards: "AsKs", Opponents: MaxOpponents + 1}, "opponents must be between"},
		{"negative opponents", Spot{HoleCards: "AsKs", Opponents: -2}, "opponents must be between"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.spot.View()
			require.ErrorIs(t, err, ErrInvalidSpot)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()
	v, err := Spot{HoleCards: "AsAh", Board: "AdAcKs", Pot: 100, Chips: 900}.View()
	require.NoError(t, err)
	seed := int64(5)

	a, err := Analyze(v, KindMCTS, mcts.Config{Iterations: 80, Exploration: 1.4}, &seed, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, seed, a.Seed)
	assert.Contains(t, v.LegalActions, a.Decision.Action)
	total := 0
	for _, c := range a.Children {
		total += c.Visits
	}
	assert.Equal(t, 79, total)

	a, err = Analyze(v, KindRuleBased, mcts.DefaultConfig(), &seed, quietLogger())
	require.NoError(t, err)
	assert.Empty(t, a.Children)
	assert.Equal(t, game.Raise, a.Coaching.Recommendation.Action)

	_, err = Analyze(v, KindCall, mcts.DefaultConfig(), &seed, quietLogger())
	require.Error(t, err)
}
