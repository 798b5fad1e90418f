package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/poker"
)

func TestCoachStrongHandOnFlop(t *testing.T) {
	t.Parallel()
	v := view("KhKd", "KsQcQd", 20, 100)
	c := Coach(v)

	assert.InDelta(t, 75.0, c.Strength, 1e-9)
	assert.Equal(t, "Very Strong", c.Label)
	assert.Equal(t, "Full House", c.Hand)
	assert.Equal(t, game.Raise, c.Recommendation.Action)
	assert.Equal(t, []string{
		"Later position gives you information advantage",
		"Premium hand - consider raising to build the pot",
		"The flop defines your hand - reassess your strength",
	}, c.Tips)
}

func TestTipsFirstToActPreflop(t *testing.T) {
	t.Parallel()
	v := view("7h2c", "", 20, 30)
	v.Street = game.Preflop
	v.FirstToAct = true

	tips := Tips(v, poker.StrengthOf(v.HoleCards, v.Board))
	assert.Equal(t, []string{
		"You're first to act - being early is a disadvantage",
		"Marginal hand - be cautious with large bets",
		"Starting hand selection is crucial in poker",
	}, tips)

	v.HoleCards = poker.MustParseCards("AsAd")
	tips = Tips(v, poker.StrengthOf(v.HoleCards, v.Board))
	assert.Contains(t, tips, "Starting hand selection is crucial in poker - this one is worth playing")
}

func TestTipsTurnHasNoStreetHint(t *testing.T) {
	t.Parallel()
	v := view("9h9c", "2s5dJh3c", 0, 80)
	v.Street = game.Turn
	// A pair scores 12.5, below the marginal threshold
	assert.Len(t, Tips(v, 45), 1)
	assert.Len(t, Tips(v, 12.5), 2)
}
