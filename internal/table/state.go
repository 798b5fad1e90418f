package table

import (
	"context"

	"github.com/lox/pokersim/internal/bot"
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/scheduler"
	"github.com/lox/pokersim/poker"
)

// SeatState is a seat as rendered for one viewer
type SeatState struct {
	game.SeatView
	Bot       string       `json:"bot,omitempty"`
	HoleCards []poker.Card `json:"holeCards,omitempty"` // Only the viewer's, or everyone's at showdown
	Dealer    bool         `json:"dealer"`
	ToAct     bool         `json:"toAct"`
}

// State is a render-ready copy of the table
type State struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Hand         int                 `json:"hand"`
	Street       game.Street         `json:"street"`
	Board        []poker.Card        `json:"board"`
	Pot          int                 `json:"pot"`
	CurrentBet   int                 `json:"currentBet"`
	ActivePlayer int                 `json:"activePlayer"`
	Viewer       int                 `json:"viewer"`
	Seats        []SeatState         `json:"seats"`
	History      []game.HistoryEntry `json:"history"`
	LegalActions []game.Action       `json:"legalActions,omitempty"`
	ToCall       int                 `json:"toCall"`
	Coaching     *bot.Coaching       `json:"coaching,omitempty"`
	Result       *game.Result        `json:"result,omitempty"`
	Status       string              `json:"status"`
	HandOver     bool                `json:"handOver"`
	GameOver     bool                `json:"gameOver"`
}

// State returns the table as seen from the viewer seat. A viewer of -1
// sees no hole cards until showdown.
func (s *Session) State(ctx context.Context, viewer int) (State, error) {
	return scheduler.Query(ctx, s.turns, func() (State, error) {
		return s.buildState(viewer), nil
	})
}

func (s *Session) buildState(viewer int) State {
	st := State{
		ID:           s.ID,
		Name:         s.cfg.Name,
		Hand:         s.handNum,
		ActivePlayer: -1,
		Viewer:       viewer,
		Status:       s.status,
		GameOver:     s.gameOver,
	}

	h := s.hand
	if h == nil {
		for i, p := range s.players {
			st.Seats = append(st.Seats, SeatState{
				SeatView: game.SeatView{Seat: i, Name: p.Name, Human: p.Human, Chips: p.Chips},
				Bot:      s.cfg.Seats[i].Bot,
			})
		}
		return st
	}

	st.Street = h.Street
	st.Board = append([]poker.Card(nil), h.Board...)
	st.Pot = h.Pot
	st.CurrentBet = h.CurrentBet
	st.ActivePlayer = h.ActivePlayer
	st.History = h.History.Last(s.cfg.HistorySize)
	st.Result = h.Result
	st.HandOver = h.IsComplete()

	showdown := h.Result != nil && !h.Result.Uncontested
	v := h.View(viewer)
	for i, sv := range v.Seats {
		seat := SeatState{
			SeatView: sv,
			Bot:      s.cfg.Seats[i].Bot,
			Dealer:   i == h.Button,
			ToAct:    i == h.ActivePlayer,
		}
		p := s.players[i]
		if i == viewer || (showdown && !p.Folded) {
			seat.HoleCards = append([]poker.Card(nil), p.HoleCards...)
		}
		st.Seats = append(st.Seats, seat)
	}

	if viewer >= 0 && viewer < len(s.players) && !h.IsComplete() {
		st.ToCall = v.ToCall
		st.LegalActions = v.LegalActions
		if !s.players[viewer].Folded {
			c := bot.Coach(v)
			st.Coaching = &c
		}
	}
	return st
}
