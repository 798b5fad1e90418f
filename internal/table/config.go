package table

import (
	"errors"
	"fmt"
	"time"

	"github.com/lox/pokersim/internal/bot"
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/mcts"
)

// SeatConfig describes one seat. Bot is ignored for human seats.
type SeatConfig struct {
	Name  string `json:"name"`
	Human bool   `json:"human"`
	Bot   string `json:"bot,omitempty"`
}

// Config describes a table
type Config struct {
	Name          string
	Seats         []SeatConfig
	StartingChips int
	SmallBlind    int
	BigBlind      int
	ShortStack    game.ShortStackPolicy
	ThinkTime     time.Duration
	Search        mcts.Config
	HistorySize   int
	Seed          *int64 // nil picks a seed from the clock
}

// Multiway is the three-handed rule-based table
func Multiway() Config {
	return Config{
		Name: "multiway",
		Seats: []SeatConfig{
			{Name: "You", Human: true},
			{Name: "Opponent 1", Bot: bot.KindRuleBased},
			{Name: "Opponent 2", Bot: bot.KindRuleBased},
		},
		StartingChips: 1000,
		SmallBlind:    10,
		BigBlind:      20,
		ShortStack:    game.ShortStackReject,
		ThinkTime:     time.Second,
		Search:        mcts.DefaultConfig(),
		HistorySize:   8,
	}
}

// HeadsUp is the two-handed table against the search player
func HeadsUp() Config {
	return Config{
		Name: "headsup",
		Seats: []SeatConfig{
			{Name: "You", Human: true},
			{Name: "CPU", Bot: bot.KindMCTS},
		},
		StartingChips: 1000,
		SmallBlind:    10,
		BigBlind:      20,
		ShortStack:    game.ShortStackAllIn,
		ThinkTime:     time.Second,
		Search:        mcts.DefaultConfig(),
		HistorySize:   8,
	}
}

// Preset returns a built-in table by name
func Preset(name string) (Config, error) {
	switch name {
	case "multiway", "":
		return Multiway(), nil
	case "headsup", "heads-up":
		return HeadsUp(), nil
	}
	return Config{}, fmt.Errorf("unknown table preset %q", name)
}

// Validate checks the table can be played
func (c Config) Validate() error {
	var errs []error
	if len(c.Seats) < 2 {
		errs = append(errs, errors.New("at least 2 seats required"))
	}
	if c.StartingChips <= 0 {
		errs = append(errs, errors.New("starting chips must be positive"))
	}
	if c.SmallBlind < 0 || c.BigBlind <= 0 || c.SmallBlind > c.BigBlind {
		errs = append(errs, fmt.Errorf("invalid blinds %d/%d", c.SmallBlind, c.BigBlind))
	}
	if c.ThinkTime < 0 {
		errs = append(errs, errors.New("think time must not be negative"))
	}
	if c.Search.Iterations < 0 {
		errs = append(errs, errors.New("search iterations must not be negative"))
	}

	kinds := make(map[string]bool)
	for _, k := range bot.Kinds() {
		kinds[k] = true
	}
	names := make(map[string]bool)
	for i, s := range c.Seats {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("seat %d has no name", i))
		} else if names[s.Name] {
			errs = append(errs, fmt.Errorf("duplicate seat name %q", s.Name))
		}
		names[s.Name] = true
		if !s.Human && !kinds[s.Bot] {
			errs = append(errs, fmt.Errorf("seat %q has unknown bot %q", s.Name, s.Bot))
		}
	}
	return errors.Join(errs...)
}
