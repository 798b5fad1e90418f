package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/poker"
)

func snapshot(hole, board string, toCall int) Snapshot {
	return Snapshot{
		HoleCards:  poker.MustParseCards(hole),
		Board:      poker.MustParseCards(board),
		Opponents:  1,
		Pot:        100,
		CurrentBet: toCall,
		Chips:      1000,
		Street:     game.Flop,
	}
}

func TestSearchVisitInvariant(t *testing.T) {
	t.Parallel()
	for _, iterations := range []int{2, 10, 250} {
		s := New(Config{Iterations: iterations}, randutil.New(42), nil)
		tree := s.Search(snapshot("AhKd", "2c7s9h", 20))

		assert.Equal(t, iterations, tree.RootVisits())
		total := 0
		for _, c := range tree.Children() {
			total += c.Visits
		}
		assert.Equal(t, iterations-1, total, "first iteration only visits the root")
	}
}

func TestSearchExpandsLegalActions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		toCall int
		want   []game.Action
	}{
		{"facing a bet", 20, []game.Action{game.Fold, game.Call, game.Raise}},
		{"nothing to call", 0, []game.Action{game.Check, game.Raise}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New(Config{Iterations: 50}, randutil.New(7), nil)
			snap := snapshot("QcQd", "", tt.toCall)
			tree := s.Search(snap)

			var got []game.Action
			for _, c := range tree.Children() {
				got = append(got, c.Action)
			}
			assert.Equal(t, tt.want, got)

			d := s.Choose(snap)
			assert.Contains(t, tt.want, d.Action)
		})
	}
}

func TestChooseDefaultsToCheck(t *testing.T) {
	t.Parallel()

	s := New(Config{Iterations: 0}, randutil.New(1), nil)
	assert.Equal(t, game.Check, s.Choose(snapshot("AhKd", "", 20)).Action)

	s = New(Config{Iterations: 100}, randutil.New(1), nil)
	folded := snapshot("AhKd", "", 20)
	folded.Folded = true
	tree := s.Search(folded)
	assert.Empty(t, tree.Children())
	assert.Equal(t, 100, tree.RootVisits())
	assert.Equal(t, game.Check, s.Choose(folded).Action)

	assert.Equal(t, game.Check, s.Choose(Snapshot{}).Action)

	s = New(Config{Iterations: 100}, nil, nil)
	assert.Equal(t, game.Check, s.Choose(snapshot("AhKd", "", 0)).Action)
}

func TestRolloutAgainstKnownCards(t *testing.T) {
	t.Parallel()
	s := New(Config{Iterations: 100}, randutil.New(3), nil)

	winning := snapshot("AsKs", "QsJsTs2c3d", 0)
	winning.Known = [][]poker.Card{poker.MustParseCards("7h8h")}
	for _, c := range s.Search(winning).Children() {
		assert.InDelta(t, RewardWin, c.Mean, 1e-9, "royal flush never loses")
	}

	losing := snapshot("2h7c", "QsJsTs2c3d", 0)
	losing.Known = [][]poker.Card{poker.MustParseCards("AsKs")}
	for _, c := range s.Search(losing).Children() {
		assert.InDelta(t, RewardLoss, c.Mean, 1e-9)
	}

	split := snapshot("2h3h", "AsKsQsJsTs", 0)
	split.Known = [][]poker.Card{poker.MustParseCards("4c5c")}
	for _, c := range s.Search(split).Children() {
		assert.InDelta(t, RewardTie, c.Mean, 1e-9, "board plays for both")
	}
}

func TestSearchIsDeterministicForSeed(t *testing.T) {
	t.Parallel()
	snap := snapshot("9h9d", "Tc4s", 40)
	a := New(Config{Iterations: 300}, randutil.New(99), nil).Search(snap)
	b := New(Config{Iterations: 300}, randutil.New(99), nil).Search(snap)
	assert.Equal(t, a.Children(), b.Children())
}

func TestChooseRaiseSizing(t *testing.T) {
	t.Parallel()
	snap := snapshot("AsKs", "QsJsTs2c3d", 0)
	snap.Known = [][]poker.Card{poker.MustParseCards("7h8h")}
	for seed := int64(0); seed < 20; seed++ {
		d := New(Config{Iterations: 60}, randutil.New(seed), nil).Choose(snap)
		require.Contains(t, []game.Action{game.Check, game.Raise}, d.Action)
		if d.Action == game.Raise {
			assert.Equal(t, 50, d.Amount, "current bet plus half the pot")
		}
		assert.NotEmpty(t, d.Reasoning)
	}
}

func TestSnapshotFromView(t *testing.T) {
	t.Parallel()
	players := []*game.Player{
		game.NewPlayer(0, "You", 1000, true),
		game.NewPlayer(1, "CPU", 1000, false),
	}
	h, err := game.NewHand(randutil.New(5), players)
	require.NoError(t, err)

	snap := SnapshotFromView(h.View(0))
	assert.Equal(t, players[0].HoleCards, snap.HoleCards)
	assert.Equal(t, 10, snap.ToCall())
	assert.Equal(t, 1, snap.Opponents)
	assert.Equal(t, 30, snap.Pot)
	assert.Equal(t, []game.Action{game.Fold, game.Call, game.Raise}, snap.LegalActions())
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	assert.Equal(t, 500, cfg.Iterations)
	assert.InDelta(t, 1.41421356, cfg.Exploration, 1e-6)
	assert.InDelta(t, 1.41421356, New(Config{}, nil, nil).Config().Exploration, 1e-6)
}
