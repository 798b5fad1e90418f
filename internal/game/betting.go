package game

import "fmt"

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return fmt.Sprintf("street(%d)", int(s))
	}
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// MarshalText encodes the street name
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	if a < Fold || a > AllIn {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return [...]string{"fold", "check", "call", "raise", "allin"}[a]
}

// PastTense returns the verb used in status lines ("folded", "raised")
func (a Action) PastTense() string {
	if a < Fold || a > AllIn {
		return a.String()
	}
	return [...]string{"folded", "checked", "called", "raised", "went all-in"}[a]
}

// MarshalText encodes the action name
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name
func (a *Action) UnmarshalText(b []byte) error {
	parsed, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAction converts an action name into an Action
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold", "f":
		return Fold, nil
	case "check", "k":
		return Check, nil
	case "call", "c":
		return Call, nil
	case "raise", "r", "bet":
		return Raise, nil
	case "allin", "all-in", "a":
		return AllIn, nil
	}
	return Fold, fmt.Errorf("%w: unknown action %q", ErrInvalidAction, s)
}

// Decision represents a player's decision with reasoning
type Decision struct {
	Action    Action `json:"action"`
	Amount    int    `json:"amount,omitempty"` // For raises, the total bet for the street
	Reasoning string `json:"reasoning,omitempty"`
}

// ShortStackPolicy decides what a call does when the seat cannot cover the
// full amount owed.
type ShortStackPolicy int

const (
	// ShortStackReject rejects the call with ErrInsufficientChips
	ShortStackReject ShortStackPolicy = iota
	// ShortStackAllIn converts the call into an all-in for the remaining stack
	ShortStackAllIn
)

func (p ShortStackPolicy) String() string {
	if p == ShortStackAllIn {
		return "all-in"
	}
	return "reject"
}

// HalfPotRaise is the raise-to total both AI policies use: the current bet
// plus half the pot, capped at ceiling (the seat's stack plus its street bet).
func HalfPotRaise(currentBet, pot, ceiling int) int {
	return min(currentBet+pot/2, ceiling)
}
