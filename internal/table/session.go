// Package table drives hands at a table: it applies human input, paces
// computer turns through the scheduler, advances streets and publishes
// events for the terminal and HTTP front ends.
package table

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokersim/internal/bot"
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/phh"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/internal/scheduler"
)

var (
	// ErrGameOver is returned when fewer than two seats have chips
	ErrGameOver = errors.New("game over: not enough players with chips")
	// ErrHandInProgress is returned by NextHand before the hand has finished
	ErrHandInProgress = errors.New("hand in progress")
	// ErrNotHuman is returned when Act is called for a computer seat
	ErrNotHuman = errors.New("seat is not a human seat")
	// ErrNoHand is returned by Act before the first hand is dealt
	ErrNoHand = errors.New("no hand dealt")
)

// Session is one table. Every mutation runs on the scheduler's worker, so a
// Session is safe for concurrent use.
type Session struct {
	ID string

	cfg    Config
	clock  quartz.Clock
	rng    *rand.Rand
	seed   int64
	turns  *scheduler.Turns
	logger *log.Logger

	// Owned by the scheduler worker
	players  []*game.Player
	agents   []game.Agent
	hand     *game.HandState
	handNum  int
	button   int
	reported bool
	gameOver bool
	status   string
	finished []*phh.HandHistory

	subMu      sync.Mutex
	subs       map[*subscriber]struct{}
	subsClosed bool
}

// New creates a session. No hand is dealt until Start.
func New(id string, cfg Config, clock quartz.Clock, logger *log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table config: %w", err)
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 8
	}
	logger = logger.With("table", id)

	rng, seed := randutil.NewFromSeedOrTime(cfg.Seed)
	s := &Session{
		ID:     id,
		cfg:    cfg,
		clock:  clock,
		rng:    rng,
		seed:   seed,
		logger: logger,
		subs:   make(map[*subscriber]struct{}),
	}

	for i, sc := range cfg.Seats {
		s.players = append(s.players, game.NewPlayer(i, sc.Name, cfg.StartingChips, sc.Human))
		if sc.Human {
			s.agents = append(s.agents, nil)
			continue
		}
		agent, err := bot.New(sc.Bot, rng, cfg.Search, logger)
		if err != nil {
			return nil, err
		}
		s.agents = append(s.agents, agent)
	}

	s.turns = scheduler.New(clock, cfg.ThinkTime, logger)
	logger.Info("Table created", "seats", len(s.players), "seed", seed)
	return s, nil
}

// Seed returns the seed the session's RNG was created with
func (s *Session) Seed() int64 {
	return s.seed
}

// Config returns the table configuration
func (s *Session) Config() Config {
	return s.cfg
}

// HumanSeat returns the first human seat, or -1
func (s *Session) HumanSeat() int {
	for i, sc := range s.cfg.Seats {
		if sc.Human {
			return i
		}
	}
	return -1
}

// Start deals the first hand
func (s *Session) Start(ctx context.Context) error {
	return s.NextHand(ctx)
}

// NextHand deals a new hand once the previous one has finished
func (s *Session) NextHand(ctx context.Context) error {
	return s.turns.Run(ctx, func() error {
		if s.gameOver {
			return ErrGameOver
		}
		if s.hand != nil && !s.hand.IsComplete() {
			return ErrHandInProgress
		}
		if s.funded() < 2 {
			s.declareGameOver()
			return ErrGameOver
		}
		return s.deal()
	})
}

// Act applies an action for a human seat
func (s *Session) Act(ctx context.Context, seat int, action game.Action, amount int) error {
	return s.turns.Run(ctx, func() error {
		if s.hand == nil {
			return ErrNoHand
		}
		if seat < 0 || seat >= len(s.players) {
			return fmt.Errorf("%w: seat %d", game.ErrNotYourTurn, seat)
		}
		if s.agents[seat] != nil {
			return fmt.Errorf("%w: %s", ErrNotHuman, s.players[seat].Name)
		}
		if err := s.hand.ApplyAction(seat, action, amount); err != nil {
			return err
		}
		s.announce(seat, game.Decision{Action: action, Amount: amount})
		s.progress()
		return nil
	})
}

// Close stops the scheduler and closes subscriber channels
func (s *Session) Close() {
	s.turns.Close()
	s.closeSubscribers()
}

func (s *Session) funded() int {
	n := 0
	for _, p := range s.players {
		if p.Chips > 0 {
			n++
		}
	}
	return n
}

func (s *Session) deal() error {
	if s.handNum > 0 {
		s.button = s.nextFunded(s.button + 1)
	} else if s.players[s.button].Chips == 0 {
		s.button = s.nextFunded(s.button)
	}

	h, err := game.NewHand(s.rng, s.players,
		game.WithButton(s.button),
		game.WithBlinds(s.cfg.SmallBlind, s.cfg.BigBlind),
		game.WithShortStackPolicy(s.cfg.ShortStack),
		game.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("dealing hand: %w", err)
	}

	s.hand = h
	s.handNum++
	s.reported = false
	s.logger.Info("Hand started", "hand", s.handNum, "button", s.players[s.button].Name)
	s.emit(Event{Type: EventHandStart, Seat: s.button, Message: "New hand started! Make your move."})
	s.progress()
	return nil
}

func (s *Session) nextFunded(from int) int {
	n := len(s.players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if s.players[seat].Chips > 0 {
			return seat
		}
	}
	return from % n
}

// progress advances closed streets and schedules the next computer turn.
// It returns once a human must act, an AI turn is pending or the hand ends.
func (s *Session) progress() {
	for s.hand != nil && !s.hand.IsComplete() {
		if s.hand.ActivePlayer == -1 {
			if err := s.hand.AdvanceStreet(); err != nil {
				s.logger.Error("Failed to advance street", "error", err)
				return
			}
			if !s.hand.IsComplete() {
				s.emit(Event{Type: EventStreetChange, Message: streetMessage(s.hand.Street)})
			}
			continue
		}

		seat := s.hand.ActivePlayer
		if s.agents[seat] == nil {
			s.emit(Event{Type: EventAwaiting, Seat: seat})
			return
		}

		handNum := s.handNum
		err := s.turns.ScheduleAI(func() { s.aiTurn(seat, handNum) })
		if err != nil && !errors.Is(err, scheduler.ErrTurnPending) {
			s.logger.Debug("AI turn not scheduled", "error", err)
		}
		return
	}

	if s.hand != nil && !s.reported {
		s.reported = true
		s.finishHand()
	}
}

func (s *Session) aiTurn(seat, handNum int) {
	if s.hand == nil || s.handNum != handNum || s.hand.IsComplete() || s.hand.ActivePlayer != seat {
		return
	}

	d := s.agents[seat].Decide(s.hand.View(seat))
	if err := s.hand.ApplyAction(seat, d.Action, d.Amount); err != nil {
		s.logger.Warn("AI action rejected, falling back",
			"player", s.players[seat].Name,
			"action", d.Action,
			"amount", d.Amount,
			"error", err)
		d = game.Decision{Action: game.Check, Reasoning: "fallback"}
		if s.hand.ToCall(seat) > 0 {
			d.Action = game.Fold
		}
		if err := s.hand.ApplyAction(seat, d.Action, 0); err != nil {
			s.logger.Error("AI fallback rejected", "player", s.players[seat].Name, "error", err)
			return
		}
	}

	s.announce(seat, d)
	s.progress()
}

func (s *Session) announce(seat int, d game.Decision) {
	p := s.players[seat]
	msg := fmt.Sprintf("%s %s", p.Name, d.Action.PastTense())
	if d.Action == game.Raise {
		msg = fmt.Sprintf("%s raised to $%d", p.Name, d.Amount)
	}
	s.emit(Event{Type: EventPlayerAction, Seat: seat, Decision: &d, Message: msg})
}

func (s *Session) finishHand() {
	r := s.hand.Result
	names := make([]string, len(r.Winners))
	for i, w := range r.Winners {
		names[i] = s.players[w].Name
	}

	var msg string
	switch {
	case r.Uncontested:
		msg = fmt.Sprintf("%s wins $%d", names[0], r.Pot)
	case len(names) > 1:
		msg = fmt.Sprintf("Split pot! %s share $%d with %s", strings.Join(names, " and "), r.Pot, r.HandName)
	default:
		msg = fmt.Sprintf("%s wins $%d with %s", names[0], r.Pot, r.HandName)
	}

	s.logger.Info("Hand complete", "hand", s.handNum, "winners", names, "pot", r.Pot)
	s.recordHistory()
	s.emit(Event{Type: EventHandEnd, Result: r, Message: msg})

	if s.funded() < 2 {
		s.declareGameOver()
	}
}

// maxFinished bounds the hand histories a session keeps
const maxFinished = 100

func (s *Session) recordHistory() {
	hh, err := phh.FromHand(s.hand, phh.Meta{
		ID:         fmt.Sprintf("%s-%d", s.ID, s.handNum),
		Table:      s.cfg.Name,
		SmallBlind: s.cfg.SmallBlind,
		BigBlind:   s.cfg.BigBlind,
		Time:       s.clock.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("Hand history not recorded", "hand", s.handNum, "error", err)
		return
	}
	s.finished = append(s.finished, hh)
	if len(s.finished) > maxFinished {
		s.finished = s.finished[len(s.finished)-maxFinished:]
	}
}

// HandHistories returns the finished hands, oldest first, in PHH form
func (s *Session) HandHistories(ctx context.Context) ([]*phh.HandHistory, error) {
	return scheduler.Query(ctx, s.turns, func() ([]*phh.HandHistory, error) {
		return slices.Clone(s.finished), nil
	})
}

func (s *Session) declareGameOver() {
	if s.gameOver {
		return
	}
	s.gameOver = true
	s.emit(Event{Type: EventGameOver, Message: "Game Over! Not enough players with chips."})
}

func streetMessage(street game.Street) string {
	switch street {
	case game.Flop:
		return "The flop is dealt"
	case game.Turn:
		return "The turn is dealt"
	case game.River:
		return "The river is dealt"
	}
	return street.String()
}
