package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/mcts"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/poker"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func view(hole, board string, toCall, pot int) game.View {
	v := game.View{
		HoleCards:  poker.MustParseCards(hole),
		Board:      poker.MustParseCards(board),
		Pot:        pot,
		CurrentBet: toCall,
		ToCall:     toCall,
		Chips:      1000,
		BigBlind:   20,
		Street:     game.Flop,
	}
	if toCall > 0 {
		v.LegalActions = []game.Action{game.Fold, game.Call, game.Raise, game.AllIn}
	} else {
		v.LegalActions = []game.Action{game.Fold, game.Check, game.Raise, game.AllIn}
	}
	return v
}

func TestRecommend(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		strength float64
		toCall   int
		pot      int
		want     game.Action
	}{
		{"above raise threshold", 70.01, 20, 100, game.Raise},
		{"exactly 70 continues", 70, 20, 100, game.Call},
		{"exactly 70 free", 70, 0, 100, game.Check},
		{"decent hand free card", 50, 0, 100, game.Check},
		{"good pot odds", 30, 20, 100, game.Call},
		{"good pot odds nothing to call", 30, 0, 100, game.Call},
		{"bad pot odds", 30, 100, 100, game.Fold},
		{"exactly 40 uses pot odds", 40, 100, 100, game.Fold},
		{"weak hand free card", 10, 0, 100, game.Check},
		{"weak hand facing bet", 10, 20, 100, game.Fold},
		{"exactly 20 is weak", 20, 5, 100, game.Fold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := Recommend(tt.strength, tt.toCall, tt.pot)
			assert.Equal(t, tt.want, rec.Action)
			assert.NotEmpty(t, rec.Reason)
		})
	}
}

func TestPotOdds(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 0.2, PotOdds(25, 100), 1e-9)
	assert.Zero(t, PotOdds(0, 0))
}

func TestRuleBasedFollowsRaise(t *testing.T) {
	t.Parallel()
	// Kings full: strength 75
	v := view("KhKd", "KsQcQd", 20, 100)

	r := NewRuleBased(&randutil.Sequence{Floats: []float64{0.31}}, quietLogger())
	d := r.Decide(v)
	assert.Equal(t, game.Raise, d.Action)
	assert.Equal(t, 70, d.Amount, "current bet plus half the pot")

	r = NewRuleBased(&randutil.Sequence{Floats: []float64{0.3}}, quietLogger())
	d = r.Decide(v)
	assert.Equal(t, game.Call, d.Action, "draw of 0.3 does not follow the raise")
	assert.Zero(t, d.Amount)

	r = NewRuleBased(&randutil.Sequence{Floats: []float64{0.1}}, quietLogger())
	assert.Equal(t, game.Check, r.Decide(view("KhKd", "KsQcQd", 0, 100)).Action)
}

func TestRuleBasedFollowsFold(t *testing.T) {
	t.Parallel()
	v := view("7h2c", "KsQd9c", 50, 100)

	r := NewRuleBased(&randutil.Sequence{Floats: []float64{0.21}}, quietLogger())
	assert.Equal(t, game.Fold, r.Decide(v).Action)

	r = NewRuleBased(&randutil.Sequence{Floats: []float64{0.2}}, quietLogger())
	assert.Equal(t, game.Call, r.Decide(v).Action, "draw of 0.2 does not follow the fold")
}

func TestRuleBasedFollowRates(t *testing.T) {
	t.Parallel()
	r := NewRuleBased(randutil.New(42), quietLogger())
	strong := view("KhKd", "KsQcQd", 20, 100)
	weak := view("7h2c", "KsQd9c", 50, 100)

	raises, folds := 0, 0
	const n = 5000
	for i := 0; i < n; i++ {
		if r.Decide(strong).Action == game.Raise {
			raises++
		}
		if r.Decide(weak).Action == game.Fold {
			folds++
		}
	}
	assert.InDelta(t, 0.7, float64(raises)/n, 0.03)
	assert.InDelta(t, 0.8, float64(folds)/n, 0.03)
}

func TestLegalize(t *testing.T) {
	t.Parallel()

	free := view("AhKh", "", 0, 40)
	assert.Equal(t, game.Check, legalize(free, game.Decision{Action: game.Call}).Action)

	facing := view("AhKh", "", 20, 40)
	assert.Equal(t, game.Call, legalize(facing, game.Decision{Action: game.Check}).Action)

	short := facing
	short.Chips = 10
	short.LegalActions = []game.Action{game.Fold, game.AllIn}
	assert.Equal(t, game.Fold, legalize(short, game.Decision{Action: game.Call}).Action)
	assert.Equal(t, game.Fold, legalize(short, game.Decision{Action: game.Raise, Amount: 100}).Action)
	assert.Equal(t, game.AllIn, legalize(short, game.Decision{Action: game.AllIn}).Action)

	short.ShortStack = game.ShortStackAllIn
	assert.Equal(t, game.AllIn, legalize(short, game.Decision{Action: game.Call}).Action)

	d := legalize(facing, game.Decision{Action: game.Raise, Amount: 5000})
	assert.Equal(t, game.AllIn, d.Action)
	assert.Zero(t, d.Amount)

	d = legalize(facing, game.Decision{Action: game.Raise, Amount: 60})
	assert.Equal(t, game.Raise, d.Action)
	assert.Equal(t, 60, d.Amount)
}

func TestRuleBasedShortStack(t *testing.T) {
	t.Parallel()
	tests := []struct {
		policy game.ShortStackPolicy
		want   game.Action
	}{
		{game.ShortStackReject, game.Fold},
		{game.ShortStackAllIn, game.Call},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			t.Parallel()
			players := []*game.Player{
				game.NewPlayer(0, "You", 1000, true),
				game.NewPlayer(1, "Opponent 1", 15, false),
				game.NewPlayer(2, "Opponent 2", 1000, false),
			}
			h, err := game.NewHand(randutil.New(1), players, game.WithShortStackPolicy(tt.policy))
			require.NoError(t, err)
			require.NoError(t, h.ApplyAction(0, game.Raise, 200))
			require.Equal(t, 1, h.ActivePlayer)

			v := h.View(1)
			assert.Equal(t, tt.policy, v.ShortStack)

			// A low draw never follows a fold or raise, so the seat wants to call
			r := NewRuleBased(&randutil.Sequence{Floats: []float64{0.1}}, quietLogger())
			d := r.Decide(v)
			assert.Equal(t, tt.want, d.Action)
			require.NoError(t, h.ApplyAction(1, d.Action, d.Amount))
			if tt.want == game.Call {
				assert.True(t, players[1].AllInFlag)
			} else {
				assert.True(t, players[1].Folded)
			}
		})
	}
}

func TestAgentsPlayLegalActions(t *testing.T) {
	t.Parallel()
	rng := randutil.New(7)
	agents := map[string]game.Agent{}
	for _, kind := range Kinds() {
		a, err := New(kind, rng, mcts.Config{Iterations: 50}, quietLogger())
		require.NoError(t, err)
		agents[kind] = a
	}

	for kind, agent := range agents {
		for seed := int64(0); seed < 20; seed++ {
			players := []*game.Player{
				game.NewPlayer(0, "A", 1000, false),
				game.NewPlayer(1, "B", 1000, false),
				game.NewPlayer(2, "C", 1000, false),
			}
			h, err := game.NewHand(randutil.New(seed), players, game.WithShortStackPolicy(game.ShortStackAllIn))
			require.NoError(t, err)

			for i := 0; !h.IsComplete(); i++ {
				require.Less(t, i, 500, kind)
				if h.ActivePlayer == -1 {
					require.NoError(t, h.AdvanceStreet())
					continue
				}
				v := h.View(h.ActivePlayer)
				d := agent.Decide(v)
				require.Contains(t, v.LegalActions, d.Action, "%s seed %d", kind, seed)
				require.NoError(t, h.ApplyAction(h.ActivePlayer, d.Action, d.Amount), "%s seed %d", kind, seed)
			}
		}
	}
}

func TestNewUnknownKind(t *testing.T) {
	t.Parallel()
	_, err := New("gto", randutil.New(1), mcts.DefaultConfig(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gto")
}

func TestCallBot(t *testing.T) {
	t.Parallel()
	b := NewCallBot(quietLogger())
	assert.Equal(t, game.Check, b.Decide(view("2c3d", "", 0, 30)).Action)
	assert.Equal(t, game.Call, b.Decide(view("2c3d", "", 20, 30)).Action)
	assert.Equal(t, game.Fold, b.Decide(game.View{}).Action)
}

func TestRandBotRaiseWithinStack(t *testing.T) {
	t.Parallel()
	b := NewRandBot(&randutil.Sequence{Ints: []int{2, 7}}, quietLogger())
	v := view("2c3d", "", 20, 30)
	d := b.Decide(v)
	require.Equal(t, game.Raise, d.Action)
	assert.Greater(t, d.Amount, v.CurrentBet)
	assert.LessOrEqual(t, d.Amount, v.Bet+v.Chips)
}
