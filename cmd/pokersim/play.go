package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"

	"github.com/lox/pokersim/internal/table"
	"github.com/lox/pokersim/internal/tui"
)

// PlayCmd runs a table in the terminal
type PlayCmd struct {
	Table string `arg:"" optional:"" default:"multiway" help:"Table name from the config, or a preset (multiway, headsup)"`
	Seed  *int64 `help:"Deterministic seed for the table"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := g.newLogger(cfg, "pokersim.log")
	if err != nil {
		return err
	}
	defer closeLog()

	tc, err := cfg.Table(c.Table)
	if err != nil {
		return err
	}
	if c.Seed != nil {
		tc.Seed = c.Seed
	}

	session, err := table.New(c.Table, tc, quartz.NewReal(), logger)
	if err != nil {
		return err
	}
	defer session.Close()

	seat := session.HumanSeat()
	if seat < 0 {
		return fmt.Errorf("table %q has no human seat", c.Table)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Start(ctx); err != nil {
		return fmt.Errorf("start table: %w", err)
	}
	logger.Info("Starting interactive game", "table", c.Table, "seed", session.Seed())
	return tui.Run(ctx, session, seat, logger)
}
