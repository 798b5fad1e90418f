package bot

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/mcts"
)

// MCTSBot picks actions with a tree search per decision
type MCTSBot struct {
	searcher *mcts.Searcher
	logger   *log.Logger
}

// NewMCTSBot wraps a searcher as an agent
func NewMCTSBot(searcher *mcts.Searcher, logger *log.Logger) *MCTSBot {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &MCTSBot{searcher: searcher, logger: logger.WithPrefix("bot")}
}

// Decide implements game.Agent
func (m *MCTSBot) Decide(v game.View) game.Decision {
	d := m.searcher.Choose(mcts.SnapshotFromView(v))
	legal := legalize(v, d)
	if legal.Action != d.Action {
		m.logger.Debug("Adjusted search action", "seat", v.Seat, "searched", d.Action, "played", legal.Action)
	}
	return legal
}
