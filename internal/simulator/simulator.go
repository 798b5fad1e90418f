// Package simulator plays batches of independent hands between a hero
// policy and villain policies, in parallel, and summarises the hero's
// results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokersim/internal/bot"
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/mcts"
	"github.com/lox/pokersim/internal/phh"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/internal/statistics"
)

// maxSteps bounds the actions and street changes in one hand
const maxSteps = 500

// Config holds configuration for a batch
type Config struct {
	Hands         int
	Workers       int
	Seed          int64
	Hero          string // Bot kind for the hero seat
	Villain       string // Bot kind for every other seat
	Opponents     int
	StartingChips int
	SmallBlind    int
	BigBlind      int
	Search        mcts.Config
	Histories     bool // Keep a PHH history of every hand
	Logger        *log.Logger
}

// DefaultConfig pits the search player against one rule-based player
func DefaultConfig() Config {
	return Config{
		Hands:         1000,
		Workers:       4,
		Seed:          1,
		Hero:          bot.KindMCTS,
		Villain:       bot.KindRuleBased,
		Opponents:     1,
		StartingChips: 1000,
		SmallBlind:    10,
		BigBlind:      20,
		Search:        mcts.DefaultConfig(),
	}
}

// Validate checks the batch can run
func (c Config) Validate() error {
	var errs []error
	if c.Hands < 1 {
		errs = append(errs, errors.New("hands must be positive"))
	}
	if c.Workers < 1 {
		errs = append(errs, errors.New("workers must be positive"))
	}
	if c.Opponents < 1 || c.Opponents > 9 {
		errs = append(errs, fmt.Errorf("opponents must be between 1 and 9, got %d", c.Opponents))
	}
	if c.StartingChips <= c.BigBlind {
		errs = append(errs, errors.New("starting chips must exceed the big blind"))
	}
	if c.SmallBlind < 0 || c.BigBlind <= 0 || c.SmallBlind > c.BigBlind {
		errs = append(errs, fmt.Errorf("invalid blinds %d/%d", c.SmallBlind, c.BigBlind))
	}
	for _, kind := range []string{c.Hero, c.Villain} {
		if !slices.Contains(bot.Kinds(), kind) {
			errs = append(errs, fmt.Errorf("unknown bot kind %q (want one of %v)", kind, bot.Kinds()))
		}
	}
	return errors.Join(errs...)
}

// Summary is the outcome of a batch
type Summary struct {
	Config   Config
	Stats    *statistics.Statistics
	Records   []HandRecord
	Histories []*phh.HandHistory // Only when Config.Histories is set
	Duration  time.Duration
}

// Simulator runs batches
type Simulator struct {
	cfg    Config
	logger *log.Logger
}

// New creates a simulator
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{cfg: cfg, logger: logger.WithPrefix("simulator")}, nil
}

// Run plays every hand. Hands are independent: each one is dealt from its
// own seed with fresh stacks, and the hero rotates through the seats.
func (s *Simulator) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	records := make([]HandRecord, s.cfg.Hands)
	var histories []*phh.HandHistory
	if s.cfg.Histories {
		histories = make([]*phh.HandHistory, s.cfg.Hands)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i := range s.cfg.Hands {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, h, err := s.playHand(i)
			if err != nil {
				return fmt.Errorf("hand %d (seed %d): %w", i+1, rec.Seed, err)
			}
			records[i] = rec
			if histories == nil {
				return nil
			}
			histories[i], err = phh.FromHand(h, phh.Meta{
				ID:         fmt.Sprintf("sim-%d", rec.Hand),
				Table:      fmt.Sprintf("%s-vs-%s", s.cfg.Hero, s.cfg.Villain),
				SmallBlind: s.cfg.SmallBlind,
				BigBlind:   s.cfg.BigBlind,
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, rec := range records {
		stats.Add(rec.Result())
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	summary := &Summary{
		Config:    s.cfg,
		Stats:     stats,
		Records:   records,
		Histories: histories,
		Duration:  time.Since(start),
	}
	s.logger.Info("Simulation complete",
		"hands", stats.Hands,
		"mean_bb", fmt.Sprintf("%.3f", stats.Mean()),
		"duration", summary.Duration)
	return summary, nil
}

func (s *Simulator) playHand(i int) (HandRecord, *game.HandState, error) {
	seats := s.cfg.Opponents + 1
	seed := s.cfg.Seed + int64(i)
	rec := HandRecord{
		Hand:     int64(i + 1),
		Seed:     seed,
		Hero:     s.cfg.Hero,
		Villain:  s.cfg.Villain,
		BigBlind: int64(s.cfg.BigBlind),
	}

	rng := randutil.New(seed)
	heroSeat := i % seats
	players := make([]*game.Player, seats)
	agents := make([]game.Agent, seats)
	for seat := range seats {
		kind, name := s.cfg.Villain, fmt.Sprintf("Villain %d", seat)
		if seat == heroSeat {
			kind, name = s.cfg.Hero, "Hero"
		}
		agent, err := bot.New(kind, rng, s.cfg.Search, s.logger)
		if err != nil {
			return rec, nil, err
		}
		agents[seat] = agent
		players[seat] = game.NewPlayer(seat, name, s.cfg.StartingChips, false)
	}

	h, err := game.NewHand(rng, players,
		game.WithBlinds(s.cfg.SmallBlind, s.cfg.BigBlind),
		game.WithShortStackPolicy(game.ShortStackAllIn),
		game.WithLogger(s.logger))
	if err != nil {
		return rec, nil, err
	}

	for step := 0; !h.IsComplete(); step++ {
		if step >= maxSteps {
			return rec, nil, fmt.Errorf("hand did not finish after %d steps", maxSteps)
		}
		if h.ActivePlayer == -1 {
			if err := h.AdvanceStreet(); err != nil {
				return rec, nil, err
			}
			continue
		}

		seat := h.ActivePlayer
		d := agents[seat].Decide(h.View(seat))
		if err := h.ApplyAction(seat, d.Action, d.Amount); err != nil {
			s.logger.Debug("Action rejected, folding", "seat", seat, "action", d.Action, "error", err)
			fallback := game.Check
			if h.ToCall(seat) > 0 {
				fallback = game.Fold
			}
			if err := h.ApplyAction(seat, fallback, 0); err != nil {
				return rec, nil, err
			}
		}
		rec.Actions++
	}

	hero := players[heroSeat]
	rec.HeroSeat = int32(heroSeat)
	rec.Seats = int32(seats)
	rec.NetChips = int64(hero.Chips - s.cfg.StartingChips)
	rec.NetBB = float64(rec.NetChips) / float64(s.cfg.BigBlind)
	rec.Pot = int64(h.Result.Pot)
	rec.Street = h.Street.String()
	rec.Showdown = !h.Result.Uncontested
	rec.HandName = h.Result.HandName
	if ev, ok := h.Result.Evaluations[heroSeat]; ok {
		rec.HeroHand = ev.Name
	}
	for _, w := range h.Result.Winners {
		if w == heroSeat {
			rec.HeroWon = true
		}
	}
	return rec, h, nil
}
