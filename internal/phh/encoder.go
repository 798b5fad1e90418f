package phh

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/poker"
)

// ErrHandNotComplete is returned by FromHand while the pot is unawarded
var ErrHandNotComplete = errors.New("phh: hand is not complete")

// Encode writes the hand history in PHH TOML format
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// EncodeAll writes hands as a PHHS file: one numbered table per hand
func EncodeAll(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hand); err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
	}
	return nil
}

// FromHand converts a finished hand. Seats that sat the hand out are left
// out of the history.
func FromHand(h *game.HandState, meta Meta) (*HandHistory, error) {
	if !h.IsComplete() || h.Result == nil {
		return nil, ErrHandNotComplete
	}

	// PHH order: left of the button first, button last
	var order []int
	index := make(map[int]int)
	n := len(h.Players)
	for i := 1; i <= n; i++ {
		seat := (h.Button + i) % n
		if len(h.Players[seat].HoleCards) == 0 {
			continue
		}
		index[seat] = len(order)
		order = append(order, seat)
	}

	hh := &HandHistory{
		Variant:           "NT",
		Table:             meta.Table,
		SeatCount:         n,
		Antes:             make([]int, len(order)),
		BlindsOrStraddles: make([]int, len(order)),
		MinBet:            meta.BigBlind,
		HandID:            meta.ID,
	}
	for i, seat := range order {
		p := h.Players[seat]
		payout := h.Result.Payouts[seat]
		start := p.Chips - payout + p.TotalBet

		hh.Seats = append(hh.Seats, seat+1)
		hh.Players = append(hh.Players, p.Name)
		hh.StartingStacks = append(hh.StartingStacks, start)
		hh.FinishingStacks = append(hh.FinishingStacks, p.Chips)
		hh.Winnings = append(hh.Winnings, payout)
		switch seat {
		case h.SmallBlindSeat:
			hh.BlindsOrStraddles[i] = min(meta.SmallBlind, start)
		case h.BigBlindSeat:
			hh.BlindsOrStraddles[i] = min(meta.BigBlind, start)
		}
	}

	for i, seat := range order {
		hh.Actions = append(hh.Actions, fmt.Sprintf("d dh p%d %s", i+1, shortCards(h.Players[seat].HoleCards)))
	}

	streetBet := 0
	for _, b := range hh.BlindsOrStraddles {
		streetBet = max(streetBet, b)
	}
	dealt := 0
	for _, e := range h.History.Entries {
		if e.Player == game.PhaseMarker {
			streetBet = 0
			actions, next, err := phaseActions(h, e.Street, dealt, order)
			if err != nil {
				return nil, err
			}
			dealt = next
			hh.Actions = append(hh.Actions, actions...)
			continue
		}
		pi, ok := index[e.Seat]
		if !ok {
			return nil, fmt.Errorf("phh: action by seat %d that was not dealt in", e.Seat)
		}
		hh.Actions = append(hh.Actions, formatAction(pi, e, &streetBet))
	}

	if !meta.Time.IsZero() {
		hh.Timestamp = meta.Time
		hh.Time = meta.Time.Format("15:04:05")
		hh.TimeZone = meta.Time.Location().String()
		hh.Day = meta.Time.Day()
		hh.Month = int(meta.Time.Month())
		hh.Year = meta.Time.Year()
	}
	return hh, nil
}

func phaseActions(h *game.HandState, street game.Street, dealt int, order []int) ([]string, int, error) {
	var count int
	switch street {
	case game.Flop:
		count = 3
	case game.Turn, game.River:
		count = 1
	case game.Showdown:
		var shows []string
		for i, seat := range order {
			p := h.Players[seat]
			if !p.Folded {
				shows = append(shows, fmt.Sprintf("p%d sm %s", i+1, shortCards(p.HoleCards)))
			}
		}
		return shows, dealt, nil
	default:
		return nil, dealt, nil
	}
	if dealt+count > len(h.Board) {
		return nil, dealt, fmt.Errorf("phh: board has %d cards, %v needs %d", len(h.Board), street, dealt+count)
	}
	return []string{"d db " + shortCards(h.Board[dealt:dealt+count])}, dealt + count, nil
}

// formatAction maps one decision to PHH. An all in that does not raise the
// street bet is a call.
func formatAction(pi int, e game.HistoryEntry, streetBet *int) string {
	player := fmt.Sprintf("p%d", pi+1)
	switch e.Action {
	case game.Fold.String():
		return player + " f"
	case game.Check.String(), game.Call.String():
		return player + " cc"
	case game.Raise.String(), game.AllIn.String():
		if e.Amount > *streetBet {
			*streetBet = e.Amount
			return fmt.Sprintf("%s cbr %d", player, e.Amount)
		}
		return player + " cc"
	}
	return fmt.Sprintf("# %s %s %d", player, e.Action, e.Amount)
}

func shortCards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Short())
	}
	return b.String()
}
