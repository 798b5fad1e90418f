package game

import "errors"

// Action validation errors. Every rejected action leaves the hand unchanged.
var (
	ErrInvalidAction     = errors.New("invalid action")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrRaiseTooSmall     = errors.New("raise must be higher than current bet")
	ErrInsufficientChips = errors.New("not enough chips")
	ErrHandComplete      = errors.New("hand is complete")
	ErrBettingOpen       = errors.New("betting round is still open")
)
