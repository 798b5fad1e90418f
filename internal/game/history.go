package game

import "fmt"

// HistoryEntry records one decision or phase change during a hand
type HistoryEntry struct {
	Seat   int    `json:"seat"` // -1 for phase changes
	Player string `json:"player"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
	Street Street `json:"street"`
}

// PhaseMarker is the player name used for phase change entries
const PhaseMarker = "game"

func (e HistoryEntry) String() string {
	if e.Player == PhaseMarker {
		return fmt.Sprintf("--- %s ---", e.Action)
	}
	if e.Amount > 0 {
		return fmt.Sprintf("%s: %s %d", e.Player, e.Action, e.Amount)
	}
	return fmt.Sprintf("%s: %s", e.Player, e.Action)
}

// History is the ordered log of a hand
type History struct {
	Entries []HistoryEntry `json:"entries"`
}

// Add records a player decision. Amount is the seat's street bet after acting.
func (h *History) Add(seat int, player string, action Action, amount int, street Street) {
	h.Entries = append(h.Entries, HistoryEntry{
		Seat:   seat,
		Player: player,
		Action: action.String(),
		Amount: amount,
		Street: street,
	})
}

// AddPhase records a street change
func (h *History) AddPhase(street Street) {
	h.Entries = append(h.Entries, HistoryEntry{
		Seat:   -1,
		Player: PhaseMarker,
		Action: street.String(),
		Street: street,
	})
}

// Last returns up to n of the most recent entries
func (h *History) Last(n int) []HistoryEntry {
	if n <= 0 || len(h.Entries) == 0 {
		return nil
	}
	if n > len(h.Entries) {
		n = len(h.Entries)
	}
	out := make([]HistoryEntry, n)
	copy(out, h.Entries[len(h.Entries)-n:])
	return out
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.Entries)
}
