package game

import (
	"github.com/lox/pokersim/poker"
)

// Player represents a seat at the table. Chips persist across hands; the
// remaining fields are reset at the start of every hand.
type Player struct {
	Seat      int
	Name      string
	Human     bool
	Chips     int
	HoleCards []poker.Card
	Folded    bool
	AllInFlag bool
	Bet       int // Current bet in this round
	TotalBet  int // Total bet in the hand
}

// NewPlayer creates a seat with a starting stack
func NewPlayer(seat int, name string, chips int, human bool) *Player {
	return &Player{Seat: seat, Name: name, Chips: chips, Human: human}
}

// IsActive returns true if the player can still act
func (p *Player) IsActive() bool {
	return !p.Folded && !p.AllInFlag && p.Chips > 0
}

// InHand returns true if the player has not folded
func (p *Player) InHand() bool {
	return !p.Folded
}

func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.Folded = false
	p.AllInFlag = false
	p.Bet = 0
	p.TotalBet = 0
}

// commit moves chips from the stack into the current bet
func (p *Player) commit(amount int) {
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllInFlag = true
	}
}
