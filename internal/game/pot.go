package game

import "slices"

// Pot is the main pot or one side pot. Eligible seats are listed in the
// order they were passed to SidePots.
type Pot struct {
	Amount   int   `json:"amount"`
	Eligible []int `json:"eligible"`
	Cap      int   `json:"cap"` // Highest total contribution this pot covers
}

// SidePots splits the chips committed this hand into layers, one for each
// distinct stake of a seat still in the hand. A layer with a single eligible
// seat is an uncalled bet.
func SidePots(players []*Player) []Pot {
	var levels []int
	for _, p := range players {
		if !p.Folded && p.TotalBet > 0 {
			levels = append(levels, p.TotalBet)
		}
	}
	slices.Sort(levels)
	levels = slices.Compact(levels)

	var pots []Pot
	prev := 0
	for _, level := range levels {
		pot := Pot{Cap: level}
		for _, p := range players {
			pot.Amount += min(p.TotalBet, level) - min(p.TotalBet, prev)
			if !p.Folded && p.TotalBet >= level {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		pots = append(pots, pot)
		prev = level
	}

	// Folded chips above every live stake stay in the top pot
	if len(pots) > 0 {
		for _, p := range players {
			if p.TotalBet > prev {
				pots[len(pots)-1].Amount += p.TotalBet - prev
			}
		}
	}
	return pots
}
