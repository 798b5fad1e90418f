package game

import "github.com/lox/pokersim/poker"

// Agent decides an action for the seat described by a View
type Agent interface {
	Decide(v View) Decision
}

// AgentFunc adapts a function into an Agent
type AgentFunc func(v View) Decision

// Decide calls f(v)
func (f AgentFunc) Decide(v View) Decision {
	return f(v)
}

// SeatView is the public part of a seat
type SeatView struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Human  bool   `json:"human"`
	Chips  int    `json:"chips"`
	Bet    int    `json:"bet"`
	Folded bool   `json:"folded"`
	AllIn  bool   `json:"allIn"`
}

// View is what a seat can see when it is asked to act. Slices are copies.
type View struct {
	Seat         int          `json:"seat"`
	Street       Street       `json:"street"`
	HoleCards    []poker.Card `json:"holeCards"`
	Board        []poker.Card `json:"board"`
	Pot          int          `json:"pot"`
	CurrentBet   int          `json:"currentBet"`
	ToCall       int          `json:"toCall"`
	Chips        int          `json:"chips"`
	Bet          int          `json:"bet"`
	BigBlind     int          `json:"bigBlind"`
	Button       int          `json:"button"`
	FirstToAct   bool         `json:"firstToAct"`
	LegalActions []Action     `json:"legalActions,omitempty"`
	Seats        []SeatView   `json:"seats"`

	// ShortStack is the table's rule for calls the seat cannot cover
	ShortStack ShortStackPolicy `json:"shortStack"`
}

// Opponents returns the seats still in the hand other than the viewer
func (v View) Opponents() []SeatView {
	var out []SeatView
	for _, s := range v.Seats {
		if s.Seat != v.Seat && !s.Folded {
			out = append(out, s)
		}
	}
	return out
}

// View builds the snapshot for the given seat
func (h *HandState) View(seat int) View {
	v := View{
		Seat:       seat,
		Street:     h.Street,
		Board:      append([]poker.Card(nil), h.Board...),
		Pot:        h.Pot,
		CurrentBet: h.CurrentBet,
		ToCall:     h.ToCall(seat),
		BigBlind:   h.bigBlind,
		Button:     h.Button,
		FirstToAct: seat == h.leader,
		ShortStack: h.shortStack,
	}
	if seat >= 0 && seat < len(h.Players) {
		p := h.Players[seat]
		v.HoleCards = append([]poker.Card(nil), p.HoleCards...)
		v.Chips = p.Chips
		v.Bet = p.Bet
		v.LegalActions = h.LegalActions(seat)
	}
	for _, p := range h.Players {
		v.Seats = append(v.Seats, SeatView{
			Seat:   p.Seat,
			Name:   p.Name,
			Human:  p.Human,
			Chips:  p.Chips,
			Bet:    p.Bet,
			Folded: p.Folded,
			AllIn:  p.AllInFlag,
		})
	}
	return v
}
