package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	t.Parallel()
	tests := map[string]Action{
		"fold": Fold, "f": Fold,
		"check": Check, "k": Check,
		"call": Call, "c": Call,
		"raise": Raise, "bet": Raise,
		"allin": AllIn, "all-in": AllIn,
	}
	for in, want := range tests {
		got, err := ParseAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAction("shove")
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestActionText(t *testing.T) {
	t.Parallel()
	b, err := Raise.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "raise", string(b))

	var a Action
	require.NoError(t, a.UnmarshalText([]byte("call")))
	assert.Equal(t, Call, a)
	assert.Equal(t, "went all-in", AllIn.PastTense())
	assert.Equal(t, "river", River.String())
}

func TestHalfPotRaise(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 70, HalfPotRaise(20, 101, 1000))
	assert.Equal(t, 300, HalfPotRaise(200, 1000, 300), "capped by the stack")
}
