package bot

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/poker"
)

// Follow thresholds: a raise recommendation is followed when the draw is
// above RaiseFollow (70%), a fold when it is above FoldFollow (80%).
const (
	RaiseFollow = 0.3
	FoldFollow  = 0.2
)

// RuleBased plays the Recommend policy with some randomness
type RuleBased struct {
	rng    randutil.Source
	logger *log.Logger
}

// NewRuleBased creates a rule-based player drawing from rng
func NewRuleBased(rng randutil.Source, logger *log.Logger) *RuleBased {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &RuleBased{rng: rng, logger: logger.WithPrefix("bot")}
}

// Decide implements game.Agent
func (r *RuleBased) Decide(v game.View) game.Decision {
	strength := poker.StrengthOf(v.HoleCards, v.Board)
	rec := Recommend(strength, v.ToCall, v.Pot)
	d := r.follow(rec, v)

	r.logger.Debug("Rule-based decision",
		"seat", v.Seat,
		"street", v.Street,
		"strength", fmt.Sprintf("%.1f", strength),
		"recommended", rec.Action,
		"action", d.Action,
		"amount", d.Amount)
	return legalize(v, d)
}

func (r *RuleBased) follow(rec Recommendation, v game.View) game.Decision {
	passive := game.Decision{Action: checkOrCall(v.ToCall), Reasoning: "ignored " + rec.Action.String() + ": " + rec.Reason}

	switch rec.Action {
	case game.Fold:
		if r.rng.Float64() > FoldFollow {
			return game.Decision{Action: game.Fold, Reasoning: rec.Reason}
		}
		return passive
	case game.Raise:
		if r.rng.Float64() > RaiseFollow {
			return game.Decision{
				Action:    game.Raise,
				Amount:    game.HalfPotRaise(v.CurrentBet, v.Pot, v.Bet+v.Chips),
				Reasoning: rec.Reason,
			}
		}
		return passive
	default:
		return game.Decision{Action: rec.Action, Reasoning: rec.Reason}
	}
}
