package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"

	"github.com/lox/pokersim/internal/server"
)

// ServeCmd runs the HTTP and WebSocket server
type ServeCmd struct {
	Addr string `help:"Listen address (defaults to the config's address and port)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := g.newLogger(cfg, "")
	if err != nil {
		return err
	}
	defer closeLog()

	addr := c.Addr
	if addr == "" {
		addr = cfg.ServerAddress()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, quartz.NewReal(), logger)
	defer srv.Close()

	logger.Info("Starting pokersim server",
		"address", addr,
		"think_time", cfg.ThinkTime(),
		"max_tables", cfg.Server.MaxTables,
		"iterations", cfg.AI.Iterations)
	return srv.ListenAndServe(ctx, addr)
}
