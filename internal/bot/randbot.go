package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/randutil"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng    randutil.Source
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng randutil.Source, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

// Decide implements game.Agent
func (r *RandBot) Decide(v game.View) game.Decision {
	if len(v.LegalActions) == 0 {
		return game.Decision{Action: game.Fold, Reasoning: "rand-bot no valid actions"}
	}

	action := v.LegalActions[r.rng.IntN(len(v.LegalActions))]
	d := game.Decision{Action: action, Reasoning: "rand-bot random action"}

	// For raises, pick a random total between a min-raise and the whole stack
	if action == game.Raise {
		lo := v.CurrentBet + max(v.BigBlind, 1)
		hi := v.Bet + v.Chips
		if lo > hi {
			return game.Decision{Action: game.AllIn, Reasoning: d.Reasoning}
		}
		d.Amount = lo + r.rng.IntN(hi-lo+1)
	}
	return d
}
