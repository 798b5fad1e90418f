package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/pokersim/internal/bot"
	"github.com/lox/pokersim/internal/simulator"
)

// SimulateCmd plays a batch of hands between computer players
type SimulateCmd struct {
	Hands     int    `help:"Hands to play (defaults to the config)"`
	Workers   int    `help:"Parallel workers (defaults to the config)"`
	Seed      int64  `default:"1" help:"Seed of the first hand; hand i uses seed+i"`
	Hero      string `default:"mcts" enum:"mcts,rule,call,random" help:"Hero policy"`
	Villain   string `default:"rule" enum:"mcts,rule,call,random" help:"Policy for every other seat"`
	Opponents int    `default:"1" help:"Number of villains"`
	Out       string `type:"path" help:"Write per-hand records to this Parquet file"`
	PHH       string `name:"phh" type:"path" help:"Write hand histories to this PHHS file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := g.newLogger(cfg, "")
	if err != nil {
		return err
	}
	defer closeLog()

	sc := simulator.DefaultConfig()
	sc.Hands = firstPositive(c.Hands, cfg.Simulation.Hands, sc.Hands)
	sc.Workers = firstPositive(c.Workers, cfg.Simulation.Workers, sc.Workers)
	sc.Seed = c.Seed
	sc.Hero = c.Hero
	sc.Villain = c.Villain
	sc.Opponents = c.Opponents
	sc.Search = cfg.Search()
	sc.Histories = c.PHH != ""
	sc.Logger = logger

	out := c.Out
	if out == "" {
		out = cfg.Simulation.Output
	}

	sim, err := simulator.New(sc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation",
		"hands", sc.Hands,
		"workers", sc.Workers,
		"hero", sc.Hero,
		"villain", sc.Villain,
		"opponents", sc.Opponents,
		"iterations", sc.Search.Iterations)
	if sc.Hero == bot.KindMCTS || sc.Villain == bot.KindMCTS {
		logger.Debug("Search player in batch", "exploration", sc.Search.Exploration)
	}

	summary, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	simulator.PrintSummary(os.Stdout, summary)

	if out != "" {
		if err := simulator.WriteParquet(out, summary.Records); err != nil {
			return err
		}
		logger.Info("Wrote hand records", "path", out, "records", len(summary.Records))
	}
	if c.PHH != "" {
		if err := simulator.WriteHistories(c.PHH, summary.Histories); err != nil {
			return err
		}
		logger.Info("Wrote hand histories", "path", c.PHH, "hands", len(summary.Histories))
	}
	return nil
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
