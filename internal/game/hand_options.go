package game

import (
	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/poker"
)

// HandOption configures a HandState during creation.
type HandOption func(*handConfig)

// handConfig holds all configuration for creating a hand.
type handConfig struct {
	button     int
	smallBlind int
	bigBlind   int
	shortStack ShortStackPolicy
	deck       *poker.Deck // If provided, uses this deck instead of shuffling a new one
	logger     *log.Logger
}

func defaultHandConfig() *handConfig {
	return &handConfig{
		smallBlind: 10,
		bigBlind:   20,
		shortStack: ShortStackReject,
	}
}

// WithButton sets the dealer button seat
func WithButton(seat int) HandOption {
	return func(c *handConfig) {
		c.button = seat
	}
}

// WithBlinds sets the small and big blind amounts. Default is 10/20.
func WithBlinds(small, big int) HandOption {
	return func(c *handConfig) {
		c.smallBlind = small
		c.bigBlind = big
	}
}

// WithShortStackPolicy selects how calls for more than the remaining stack
// are handled. Default is ShortStackReject.
func WithShortStackPolicy(p ShortStackPolicy) HandOption {
	return func(c *handConfig) {
		c.shortStack = p
	}
}

// WithDeck sets a specific pre-shuffled deck.
// This overrides the RNG for deck creation.
func WithDeck(deck *poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = deck
	}
}

// WithLogger attaches a logger for hand progress
func WithLogger(logger *log.Logger) HandOption {
	return func(c *handConfig) {
		c.logger = logger
	}
}
