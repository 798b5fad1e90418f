package mcts

import (
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/poker"
)

// Snapshot is the immutable hand state a search node points at. Children
// share the parent's card slices and never modify them.
type Snapshot struct {
	HoleCards  []poker.Card   `json:"holeCards"`
	Board      []poker.Card   `json:"board"`
	Known      [][]poker.Card `json:"known,omitempty"` // Opponent hole cards, when they are visible
	Opponents  int            `json:"opponents"`
	Pot        int            `json:"pot"`
	CurrentBet int            `json:"currentBet"`
	Bet        int            `json:"bet"`
	Chips      int            `json:"chips"`
	Street     game.Street    `json:"street"`
	Folded     bool           `json:"folded"`
}

// SnapshotFromView captures what the acting seat sees
func SnapshotFromView(v game.View) Snapshot {
	return Snapshot{
		HoleCards:  v.HoleCards,
		Board:      v.Board,
		Opponents:  max(1, len(v.Opponents())),
		Pot:        v.Pot,
		CurrentBet: v.CurrentBet,
		Bet:        v.Bet,
		Chips:      v.Chips,
		Street:     v.Street,
	}
}

// ToCall returns the chips owed to stay in the hand
func (s Snapshot) ToCall() int {
	return max(0, s.CurrentBet-s.Bet)
}

// LegalActions returns the hypothetical actions explored from this state
func (s Snapshot) LegalActions() []game.Action {
	if s.Folded || len(s.HoleCards) == 0 {
		return nil
	}
	if s.ToCall() > 0 {
		return []game.Action{game.Fold, game.Call, game.Raise}
	}
	return []game.Action{game.Check, game.Raise}
}

// after returns the snapshot tagged with a hypothetical action
func (s Snapshot) after(a game.Action) Snapshot {
	next := s
	if a == game.Fold {
		next.Folded = true
	}
	return next
}

func (s Snapshot) knownCards() []poker.Card {
	cards := make([]poker.Card, 0, len(s.HoleCards)+len(s.Board)+2*len(s.Known))
	cards = append(cards, s.HoleCards...)
	cards = append(cards, s.Board...)
	for _, hole := range s.Known {
		cards = append(cards, hole...)
	}
	return cards
}

func (s Snapshot) opponents() int {
	return max(1, s.Opponents, len(s.Known))
}
