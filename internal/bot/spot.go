package bot

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/mcts"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/poker"
)

// ErrInvalidSpot is wrapped by every Spot validation error
var ErrInvalidSpot = errors.New("invalid spot")

// MaxOpponents is the most villains a full board and deck can deal in
const MaxOpponents = (52 - 7) / 2

// Spot describes a decision outside a running hand: the hero's cards, the
// board and the betting so far. Opponents are anonymous.
type Spot struct {
	HoleCards  string
	Board      string
	Street     string // Empty derives the street from the board
	Pot        int
	CurrentBet int
	Bet        int
	Chips      int
	BigBlind   int
	Opponents  int // Zero means one
}

func invalidSpot(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSpot, fmt.Sprintf(format, args...))
}

// ParseHand parses hole cards and a board, rejecting duplicates
func ParseHand(holeText, boardText string) ([]poker.Card, []poker.Card, error) {
	hole, err := poker.ParseCards(holeText)
	if err != nil {
		return nil, nil, invalidSpot("hole cards: %v", err)
	}
	board, err := poker.ParseCards(boardText)
	if err != nil {
		return nil, nil, invalidSpot("board: %v", err)
	}
	if len(board) > 5 {
		return nil, nil, invalidSpot("board has %d cards", len(board))
	}
	seen := make(map[poker.Card]bool)
	for _, c := range append(append([]poker.Card(nil), hole...), board...) {
		if seen[c] {
			return nil, nil, invalidSpot("duplicate card %s", c)
		}
		seen[c] = true
	}
	return hole, board, nil
}

// View builds the view the hero would see in this spot. The hero sits in
// seat 0 and may go all in for less than a call.
func (s Spot) View() (game.View, error) {
	hole, board, err := ParseHand(s.HoleCards, s.Board)
	if err != nil {
		return game.View{}, err
	}
	if len(hole) != 2 {
		return game.View{}, invalidSpot("need exactly 2 hole cards, got %d", len(hole))
	}
	if s.Opponents < 0 || s.Opponents > MaxOpponents {
		return game.View{}, invalidSpot("opponents must be between 1 and %d, got %d", MaxOpponents, s.Opponents)
	}
	if s.Pot < 0 || s.CurrentBet < 0 || s.Bet < 0 || s.Chips < 0 || s.Bet > s.CurrentBet {
		return game.View{}, invalidSpot("invalid chip amounts")
	}

	street := streetForBoard(len(board))
	if s.Street != "" {
		if street, err = parseStreet(s.Street); err != nil {
			return game.View{}, err
		}
	}

	toCall := s.CurrentBet - s.Bet
	v := game.View{
		Street:       street,
		HoleCards:    hole,
		Board:        board,
		Pot:          s.Pot,
		CurrentBet:   s.CurrentBet,
		ToCall:       toCall,
		Chips:        s.Chips,
		Bet:          s.Bet,
		BigBlind:     max(1, s.BigBlind),
		LegalActions: game.LegalActionsFor(toCall, s.Chips, game.ShortStackAllIn),
		ShortStack:   game.ShortStackAllIn,
	}
	v.Seats = append(v.Seats, game.SeatView{Seat: 0, Name: "hero", Chips: s.Chips, Bet: s.Bet})
	for i := 1; i <= max(1, s.Opponents); i++ {
		v.Seats = append(v.Seats, game.SeatView{Seat: i, Name: fmt.Sprintf("villain %d", i)})
	}
	return v, nil
}

func streetForBoard(n int) game.Street {
	switch {
	case n >= 5:
		return game.River
	case n == 4:
		return game.Turn
	case n >= 3:
		return game.Flop
	}
	return game.Preflop
}

func parseStreet(s string) (game.Street, error) {
	for st := game.Preflop; st <= game.Showdown; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return game.Preflop, invalidSpot("unknown street %q", s)
}

// Analysis is a policy's answer for a spot
type Analysis struct {
	Decision game.Decision    `json:"decision"`
	Seed     int64            `json:"seed"`
	Coaching Coaching         `json:"coaching"`
	Children []mcts.ChildStat `json:"children,omitempty"`
}

// Analyze asks the named policy for a decision in v. Only the search and
// rule-based policies are accepted. A nil seed is taken from the clock.
func Analyze(v game.View, policy string, search mcts.Config, seed *int64, logger *log.Logger) (Analysis, error) {
	rng, used := randutil.NewFromSeedOrTime(seed)
	a := Analysis{Seed: used, Coaching: Coach(v)}

	switch policy {
	case KindMCTS, "":
		searcher := mcts.New(search, rng, logger)
		snap := mcts.SnapshotFromView(v)
		tree := searcher.Search(snap)
		a.Decision = searcher.Decide(tree, snap)
		a.Children = tree.Children()
	case KindRuleBased:
		a.Decision = NewRuleBased(rng, logger).Decide(v)
	default:
		return Analysis{}, fmt.Errorf("unknown policy %q (want %s or %s)", policy, KindMCTS, KindRuleBased)
	}
	return a, nil
}
