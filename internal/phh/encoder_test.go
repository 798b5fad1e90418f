package phh_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/phh"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/poker"
)

func playPassive(t *testing.T, h *game.HandState) {
	t.Helper()
	for i := 0; !h.IsComplete(); i++ {
		require.Less(t, i, 100, "hand did not terminate")
		if h.ActivePlayer == -1 {
			require.NoError(t, h.AdvanceStreet())
			continue
		}
		action := game.Check
		if h.ToCall(h.ActivePlayer) > 0 {
			action = game.Call
		}
		require.NoError(t, h.ApplyAction(h.ActivePlayer, action, 0))
	}
}

func TestFromHandHeadsUpShowdown(t *testing.T) {
	t.Parallel()
	players := []*game.Player{
		game.NewPlayer(0, "Alice", 1000, true),
		game.NewPlayer(1, "Bob", 1000, false),
	}
	h, err := game.NewHand(nil, players,
		game.WithDeck(poker.NewStackedDeck(poker.MustParseCards("AhAd 2c7d AsKc9h 3s 4d"))))
	require.NoError(t, err)
	playPassive(t, h)

	hh, err := phh.FromHand(h, phh.Meta{ID: "hand-1", Table: "headsup", SmallBlind: 10, BigBlind: 20})
	require.NoError(t, err)

	assert.Equal(t, "NT", hh.Variant)
	assert.Equal(t, []string{"Bob", "Alice"}, hh.Players, "button acts last")
	assert.Equal(t, []int{2, 1}, hh.Seats)
	assert.Equal(t, []int{20, 10}, hh.BlindsOrStraddles)
	assert.Equal(t, []int{1000, 1000}, hh.StartingStacks)
	assert.Equal(t, []int{980, 1020}, hh.FinishingStacks)
	assert.Equal(t, []int{0, 40}, hh.Winnings)
	assert.Equal(t, []string{
		"d dh p1 2c7d",
		"d dh p2 AhAd",
		"p2 cc",
		"p1 cc",
		"d db AsKc9h",
		"p1 cc",
		"p2 cc",
		"d db 3s",
		"p1 cc",
		"p2 cc",
		"d db 4d",
		"p1 cc",
		"p2 cc",
		"p1 sm 2c7d",
		"p2 sm AhAd",
	}, hh.Actions)
	assert.Empty(t, hh.Time)
}

func TestFromHandRaiseFoldAndShortAllIn(t *testing.T) {
	t.Parallel()
	players := []*game.Player{
		game.NewPlayer(0, "Alice", 1000, true),
		game.NewPlayer(1, "Bob", 1000, false),
		game.NewPlayer(2, "Charlie", 100, false),
	}
	h, err := game.NewHand(randutil.New(3), players)
	require.NoError(t, err)

	require.NoError(t, h.ApplyAction(0, game.Raise, 200))
	require.NoError(t, h.ApplyAction(1, game.Fold, 0))
	require.NoError(t, h.ApplyAction(2, game.AllIn, 0))
	playPassive(t, h)

	at := time.Date(2026, time.March, 3, 21, 5, 0, 0, time.UTC)
	hh, err := phh.FromHand(h, phh.Meta{ID: "7", SmallBlind: 10, BigBlind: 20, Time: at})
	require.NoError(t, err)

	assert.Equal(t, []string{"Bob", "Charlie", "Alice"}, hh.Players)
	assert.Equal(t, []int{10, 20, 0}, hh.BlindsOrStraddles)
	assert.Equal(t, []int{1000, 100, 1000}, hh.StartingStacks)

	var bets []string
	var boards, shows int
	for _, a := range hh.Actions {
		switch {
		case strings.HasPrefix(a, "d db "):
			boards++
		case strings.Contains(a, " sm "):
			shows++
		case !strings.HasPrefix(a, "d "):
			bets = append(bets, a)
		}
	}
	assert.Equal(t, []string{"p3 cbr 200", "p1 f", "p2 cc"}, bets, "a short all in is a call")
	assert.Equal(t, 3, boards)
	assert.Equal(t, 2, shows)

	assert.Equal(t, "21:05:00", hh.Time)
	assert.Equal(t, "UTC", hh.TimeZone)
	assert.Equal(t, 2026, hh.Year)
}

func TestFromHandUncontested(t *testing.T) {
	t.Parallel()
	players := []*game.Player{
		game.NewPlayer(0, "Alice", 1000, true),
		game.NewPlayer(1, "Bob", 1000, false),
		game.NewPlayer(2, "Charlie", 0, false),
	}
	h, err := game.NewHand(randutil.New(8), players)
	require.NoError(t, err)
	require.NoError(t, h.ApplyAction(h.ActivePlayer, game.Fold, 0))
	require.True(t, h.IsComplete())

	hh, err := phh.FromHand(h, phh.Meta{ID: "x", SmallBlind: 10, BigBlind: 20})
	require.NoError(t, err)
	assert.Len(t, hh.Players, 2, "seat without chips sat out")
	assert.Equal(t, 3, hh.SeatCount)
	for _, a := range hh.Actions {
		assert.NotContains(t, a, " sm ")
		assert.NotContains(t, a, "d db")
	}
}

func TestFromHandIncomplete(t *testing.T) {
	t.Parallel()
	players := []*game.Player{
		game.NewPlayer(0, "Alice", 1000, true),
		game.NewPlayer(1, "Bob", 1000, false),
	}
	h, err := game.NewHand(randutil.New(1), players)
	require.NoError(t, err)
	_, err = phh.FromHand(h, phh.Meta{})
	require.ErrorIs(t, err, phh.ErrHandNotComplete)
}

func TestEncodeHandHistory(t *testing.T) {
	t.Parallel()
	hand := &phh.HandHistory{
		Variant:           "NT",
		Table:             "default",
		SeatCount:         3,
		Seats:             []int{1, 2, 3},
		Antes:             []int{0, 0, 0},
		BlindsOrStraddles: []int{1, 2, 0},
		MinBet:            2,
		StartingStacks:    []int{200, 200, 200},
		FinishingStacks:   []int{200, 200, 200},
		Winnings:          []int{0, 0, 0},
		Actions: []string{
			"d dh p1 AhKh",
			"d dh p2 7c2d",
			"d dh p3 QsJs",
			"p1 cbr 6",
			"p2 f",
			"p3 cc",
		},
		Players:  []string{"You", "Opponent 1", "Opponent 2"},
		HandID:   "hand-00042",
		Time:     "15:22:00",
		TimeZone: "UTC",
		Day:      14,
		Month:    11,
		Year:     2025,
	}

	var buf bytes.Buffer
	require.NoError(t, phh.Encode(&buf, hand))

	want := "" +
		"variant = \"NT\"\n" +
		"table = \"default\"\n" +
		"seat_count = 3\n" +
		"seats = [1, 2, 3]\n" +
		"antes = [0, 0, 0]\n" +
		"blinds_or_straddles = [1, 2, 0]\n" +
		"min_bet = 2\n" +
		"starting_stacks = [200, 200, 200]\n" +
		"finishing_stacks = [200, 200, 200]\n" +
		"winnings = [0, 0, 0]\n" +
		"actions = [\"d dh p1 AhKh\", \"d dh p2 7c2d\", \"d dh p3 QsJs\", \"p1 cbr 6\", \"p2 f\", \"p3 cc\"]\n" +
		"players = [\"You\", \"Opponent 1\", \"Opponent 2\"]\n" +
		"hand = \"hand-00042\"\n" +
		"time = \"15:22:00\"\n" +
		"time_zone = \"UTC\"\n" +
		"day = 14\n" +
		"month = 11\n" +
		"year = 2025\n"
	assert.Equal(t, want, buf.String())

	_, err := phh.EncodeToBytes(nil)
	require.Error(t, err)
}

func TestEncodeAll(t *testing.T) {
	t.Parallel()
	hands := []*phh.HandHistory{
		{Variant: "NT", HandID: "1", Antes: []int{0, 0}, BlindsOrStraddles: []int{20, 10}, StartingStacks: []int{1000, 1000}, Actions: []string{"p1 f"}},
		{Variant: "NT", HandID: "2", Antes: []int{0, 0}, BlindsOrStraddles: []int{20, 10}, StartingStacks: []int{990, 1010}, Actions: []string{"p2 f"}},
	}
	var buf bytes.Buffer
	require.NoError(t, phh.EncodeAll(&buf, hands))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[1]\nvariant = \"NT\"\n"))
	assert.Contains(t, out, "\n\n[2]\nvariant = \"NT\"\n")
	assert.Contains(t, out, "starting_stacks = [990, 1010]")
}
