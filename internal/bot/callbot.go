package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/internal/game"
)

// CallBot is a calling station: it checks or calls every street
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

// Decide implements game.Agent
func (c *CallBot) Decide(v game.View) game.Decision {
	if c.hasAction(game.Check, v.LegalActions) {
		return game.Decision{Action: game.Check, Reasoning: "call-bot checking"}
	}
	if c.hasAction(game.Call, v.LegalActions) {
		return game.Decision{Action: game.Call, Reasoning: "call-bot calling"}
	}
	if c.hasAction(game.AllIn, v.LegalActions) {
		return game.Decision{Action: game.AllIn, Reasoning: "call-bot calling off its stack"}
	}
	return game.Decision{Action: game.Fold, Reasoning: "call-bot forced fold"}
}

func (c *CallBot) hasAction(action game.Action, legal []game.Action) bool {
	for _, a := range legal {
		if a == action {
			return true
		}
	}
	return false
}
