package main

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestParseCommands(t *testing.T) {
	t.Run("play is the default", func(t *testing.T) {
		cli, ctx := parse(t)
		assert.True(t, strings.HasPrefix(ctx.Command(), "play"), ctx.Command())
		assert.Equal(t, "multiway", cli.Play.Table)
		assert.Equal(t, "pokersim.hcl", cli.Config)
	})

	t.Run("play table", func(t *testing.T) {
		cli, ctx := parse(t, "play", "headsup", "--seed", "9")
		assert.True(t, strings.HasPrefix(ctx.Command(), "play"), ctx.Command())
		assert.Equal(t, "headsup", cli.Play.Table)
		require.NotNil(t, cli.Play.Seed)
		assert.Equal(t, int64(9), *cli.Play.Seed)
	})

	t.Run("simulate", func(t *testing.T) {
		cli, _ := parse(t, "--debug", "simulate", "--hands", "50", "--villain", "call", "--out", "hands.parquet")
		assert.True(t, cli.Debug)
		assert.Equal(t, 50, cli.Simulate.Hands)
		assert.Equal(t, "mcts", cli.Simulate.Hero)
		assert.Equal(t, "call", cli.Simulate.Villain)
		assert.Contains(t, cli.Simulate.Out, "hands.parquet")
	})

	t.Run("decide", func(t *testing.T) {
		cli, _ := parse(t, "decide", "AsKs", "QsJs2d", "--policy", "rule", "--json")
		assert.Equal(t, "AsKs", cli.Decide.Hole)
		assert.Equal(t, "QsJs2d", cli.Decide.Board)
		assert.Equal(t, "rule", cli.Decide.Policy)
		assert.Equal(t, 1000, cli.Decide.Chips)
		assert.True(t, cli.Decide.JSON)
	})
}

func TestParseRejectsUnknownPolicy(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"simulate", "--hero", "shark"})
	require.Error(t, err)
}

func TestFirstPositive(t *testing.T) {
	assert.Equal(t, 5, firstPositive(0, 5, 7))
	assert.Equal(t, 3, firstPositive(3, 5))
	assert.Equal(t, 0, firstPositive(0, -1))
}
