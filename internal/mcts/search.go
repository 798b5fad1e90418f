// Package mcts chooses an action for a seat with a shallow Monte Carlo Tree
// Search. Each rollout deals out the board and scores the seat's hand against
// random opponent holdings with the poker evaluator.
package mcts

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/poker"
)

// Rewards for a rollout from the searching seat's point of view
const (
	RewardWin  = 1.0
	RewardTie  = 0.5
	RewardLoss = 0.0
)

// Config controls a search
type Config struct {
	Iterations  int
	Exploration float64
}

// DefaultConfig returns 500 iterations with an exploration constant of √2
func DefaultConfig() Config {
	return Config{
		Iterations:  500,
		Exploration: math.Sqrt2,
	}
}

// Searcher runs searches. It is not safe for concurrent use because it
// shares one RNG between searches.
type Searcher struct {
	cfg    Config
	rng    poker.RNG
	logger *log.Logger
}

// New creates a Searcher. A zero Exploration falls back to √2.
func New(cfg Config, rng poker.RNG, logger *log.Logger) *Searcher {
	if cfg.Exploration == 0 {
		cfg.Exploration = math.Sqrt2
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Searcher{
		cfg:    cfg,
		rng:    rng,
		logger: logger.WithPrefix("mcts"),
	}
}

// Config returns the search configuration
func (s *Searcher) Config() Config {
	return s.cfg
}

// Search builds the tree for one decision
func (s *Searcher) Search(root Snapshot) *Tree {
	t := newTree(root)
	if s.rng == nil {
		return t
	}

	for i := 0; i < s.cfg.Iterations; i++ {
		idx := rootIndex
		for len(t.nodes[idx].children) > 0 {
			idx = t.selectChild(idx, s.cfg.Exploration)
		}

		if t.nodes[idx].visits > 0 && t.expand(idx) {
			children := t.nodes[idx].children
			idx = children[s.rng.IntN(len(children))]
		}

		t.backpropagate(idx, s.rollout(t.snapshotOf(idx)))
	}
	return t
}

// Choose searches and returns the most visited root action
func (s *Searcher) Choose(root Snapshot) game.Decision {
	return s.Decide(s.Search(root), root)
}

// Decide reads the decision off a finished tree for root. Raises are sized at
// the current bet plus half the pot, capped by the seat's stack. With no
// iterations or no legal actions the decision is a check.
func (s *Searcher) Decide(t *Tree, root Snapshot) game.Decision {
	action, ok := t.Best()
	if !ok {
		s.logger.Debug("No actions explored, defaulting to check", "iterations", s.cfg.Iterations)
		return game.Decision{Action: game.Check, Reasoning: "no actions explored"}
	}

	d := game.Decision{Action: action}
	if action == game.Raise {
		d.Amount = game.HalfPotRaise(root.CurrentBet, root.Pot, root.Bet+root.Chips)
		if d.Amount <= root.CurrentBet {
			d.Action, d.Amount = game.AllIn, 0
		}
	}

	for _, c := range t.Children() {
		if c.Action == action {
			d.Reasoning = reasoning(c, t.RootVisits())
		}
	}

	s.logger.Debug("Search complete",
		"action", d.Action,
		"amount", d.Amount,
		"iterations", s.cfg.Iterations,
		"nodes", t.Size(),
		"street", root.Street)
	return d
}

func reasoning(c ChildStat, total int) string {
	return fmt.Sprintf("%s scored %.0f%% over %d/%d visits", c.Action, c.Mean*100, c.Visits, total)
}

// rollout deals the unknown cards and scores the seat against every opponent
func (s *Searcher) rollout(state Snapshot) float64 {
	deck := poker.NewDeckWithout(s.rng, state.knownCards()...)

	board := make([]poker.Card, len(state.Board), max(5, len(state.Board)))
	copy(board, state.Board)
	if missing := 5 - len(board); missing > 0 {
		cards := deck.Deal(missing)
		if cards == nil {
			return RewardTie
		}
		board = append(board, cards...)
	}

	mine := poker.Evaluate(state.HoleCards, board)
	reward := RewardWin
	for i := 0; i < state.opponents(); i++ {
		var hole []poker.Card
		if i < len(state.Known) {
			hole = state.Known[i]
		} else if hole = deck.Deal(2); hole == nil {
			return RewardTie
		}
		switch cmp := poker.Compare(mine, poker.Evaluate(hole, board)); {
		case cmp < 0:
			return RewardLoss
		case cmp == 0:
			reward = RewardTie
		}
	}
	return reward
}
