package table

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokersim/internal/bot"
	"github.com/lox/pokersim/internal/game"
)

func callingTable(chips int) Config {
	seed := int64(42)
	cfg := Multiway()
	cfg.Seats[1].Bot = bot.KindCall
	cfg.Seats[2].Bot = bot.KindCall
	cfg.StartingChips = chips
	cfg.Seed = &seed
	return cfg
}

func newSession(t *testing.T, cfg Config) (*Session, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	s, err := New("tbl_test", cfg, clock, nil)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, clock
}

// think lets one pending AI turn fire and waits for the worker to process it
func think(t *testing.T, ctx context.Context, clock *quartz.Mock, s *Session) State {
	t.Helper()
	clock.Advance(s.Config().ThinkTime).MustWait(ctx)
	st, err := s.State(ctx, 0)
	require.NoError(t, err)
	return st
}

func TestSessionMultiwayFlow(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, clock := newSession(t, callingTable(1000))
	events, stop := s.Subscribe(64)
	defer stop()

	require.NoError(t, s.Start(ctx))
	st, err := s.State(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Hand)
	assert.Equal(t, game.Preflop, st.Street)
	assert.Equal(t, 0, st.ActivePlayer, "seat after the big blind acts first")
	assert.Equal(t, 30, st.Pot)
	assert.Equal(t, 20, st.ToCall)
	assert.Len(t, st.Seats[0].HoleCards, 2)
	assert.Empty(t, st.Seats[1].HoleCards, "opponent cards stay hidden")
	assert.True(t, st.Seats[0].Dealer)
	require.NotNil(t, st.Coaching)
	assert.Len(t, st.Coaching.Tips, 3)

	assert.Equal(t, EventHandStart, (<-events).Type)
	assert.Equal(t, EventAwaiting, (<-events).Type)

	require.NoError(t, s.Act(ctx, 0, game.Call, 0))
	st, err = s.State(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, st.ActivePlayer)
	assert.Equal(t, "You called", st.Status)

	st = think(t, ctx, clock, s) // Opponent 1 completes the small blind
	assert.Equal(t, 2, st.ActivePlayer)
	st = think(t, ctx, clock, s) // Opponent 2 checks the option
	assert.Equal(t, game.Flop, st.Street)
	assert.Len(t, st.Board, 3)
	assert.Equal(t, 60, st.Pot)
	st = think(t, ctx, clock, s)
	st = think(t, ctx, clock, s)

	assert.Equal(t, 0, st.ActivePlayer)
	assert.Contains(t, st.LegalActions, game.Check)
	assert.NotEmpty(t, st.History)
	assert.LessOrEqual(t, len(st.History), 8)
}

func TestSessionRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newSession(t, callingTable(1000))

	require.ErrorIs(t, s.Act(ctx, 0, game.Call, 0), ErrNoHand)
	require.NoError(t, s.Start(ctx))

	require.ErrorIs(t, s.Act(ctx, 1, game.Call, 0), ErrNotHuman)
	require.ErrorIs(t, s.Act(ctx, 7, game.Call, 0), game.ErrNotYourTurn)
	require.ErrorIs(t, s.Act(ctx, 0, game.Check, 0), game.ErrInvalidAction)
	require.ErrorIs(t, s.Act(ctx, 0, game.Raise, 20), game.ErrRaiseTooSmall)
	require.ErrorIs(t, s.NextHand(ctx), ErrHandInProgress)

	st, err := s.State(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, st.ActivePlayer)
	assert.Equal(t, 30, st.Pot)
}

func TestSessionPlaysToShowdownAndRotatesButton(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, clock := newSession(t, callingTable(1000))
	events, stop := s.Subscribe(256)
	defer stop()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Act(ctx, 0, game.Fold, 0))

	st, err := s.State(ctx, 0)
	require.NoError(t, err)
	for i := 0; !st.HandOver; i++ {
		require.Less(t, i, 20, "hand did not finish")
		st = think(t, ctx, clock, s)
	}

	require.NotNil(t, st.Result)
	assert.Equal(t, 40, st.Result.Pot, "both blinds see it through")
	assert.Equal(t, 1000, st.Seats[0].Chips)
	assert.Equal(t, 3000, st.Seats[0].Chips+st.Seats[1].Chips+st.Seats[2].Chips)
	if !st.Result.Uncontested {
		for _, seat := range st.Seats[1:] {
			assert.Len(t, seat.HoleCards, 2, "showdown reveals hands")
		}
	}

	var last Event
	for len(events) > 0 {
		last = <-events
	}
	assert.Equal(t, EventHandEnd, last.Type)
	assert.Contains(t, last.Message, "$40")

	histories, err := s.HandHistories(ctx)
	require.NoError(t, err)
	require.Len(t, histories, 1)
	hh := histories[0]
	assert.Equal(t, "tbl_test-1", hh.HandID)
	assert.Equal(t, "multiway", hh.Table)
	assert.Equal(t, []string{"Opponent 1", "Opponent 2", "You"}, hh.Players)
	assert.Equal(t, []int{10, 20, 0}, hh.BlindsOrStraddles)
	assert.Contains(t, hh.Actions, "p3 f")

	require.NoError(t, s.NextHand(ctx))
	st, err = s.State(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Hand)
	assert.True(t, st.Seats[1].Dealer)
	assert.Equal(t, 20, st.Seats[0].Bet, "seat 0 posts the big blind after the button moves")
	assert.Equal(t, 1, st.ActivePlayer, "the new button acts first after the blinds")
}

func TestSessionGameOver(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := callingTable(20)
	cfg.Seats = cfg.Seats[:2] // heads-up against a calling station
	s, clock := newSession(t, cfg)
	events, stop := s.Subscribe(4096)
	defer stop()

	require.NoError(t, s.Start(ctx))
	for hand := 0; ; hand++ {
		require.Less(t, hand, 200, "game never ended")

		st, err := s.State(ctx, 0)
		require.NoError(t, err)
		for i := 0; !st.HandOver; i++ {
			require.Less(t, i, 50)
			if st.ActivePlayer == 0 {
				require.NoError(t, s.Act(ctx, 0, game.Fold, 0))
				st, err = s.State(ctx, 0)
				require.NoError(t, err)
				continue
			}
			st = think(t, ctx, clock, s)
		}

		err = s.NextHand(ctx)
		if errors.Is(err, ErrGameOver) {
			break
		}
		require.NoError(t, err)
	}

	st, err := s.State(ctx, 0)
	require.NoError(t, err)
	assert.True(t, st.GameOver)
	assert.Equal(t, 40, st.Seats[0].Chips+st.Seats[1].Chips)

	sawGameOver := false
	for len(events) > 0 {
		if (<-events).Type == EventGameOver {
			sawGameOver = true
		}
	}
	assert.True(t, sawGameOver)
	require.ErrorIs(t, s.NextHand(ctx), ErrGameOver)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, Multiway().Validate())
	require.NoError(t, HeadsUp().Validate())

	bad := Multiway()
	bad.Seats[1].Bot = "shark"
	bad.Seats[2].Name = "You"
	bad.BigBlind = 0
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shark")
	assert.Contains(t, err.Error(), "duplicate")
	assert.Contains(t, err.Error(), "blinds")

	_, err = New("x", bad, nil, nil)
	require.Error(t, err)
}

func TestPreset(t *testing.T) {
	t.Parallel()
	cfg, err := Preset("headsup")
	require.NoError(t, err)
	assert.Equal(t, "CPU", cfg.Seats[1].Name)
	assert.Equal(t, game.ShortStackAllIn, cfg.ShortStack)

	_, err = Preset("nine-max")
	require.Error(t, err)
}
