package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"

	"github.com/lox/pokersim/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command
type Globals struct {
	Config  string `short:"c" default:"pokersim.hcl" env:"POKERSIM_CONFIG" help:"Config file (missing file uses defaults)"`
	Debug   bool   `env:"POKERSIM_DEBUG" help:"Enable debug logging"`
	LogFile string `env:"POKERSIM_LOG_FILE" help:"Write logs to this file instead of stderr"`
	Color   string `default:"auto" enum:"auto,always,never" env:"POKERSIM_COLOR" help:"Colour output (auto, always, never)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play at a table in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Serve tables over HTTP and WebSocket"`
	Simulate SimulateCmd      `cmd:"" help:"Play a batch of computer-only hands"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate a hand"`
	Deck     DeckCmd          `cmd:"" help:"Print a shuffled deck"`
	Decide   DecideCmd        `cmd:"" help:"Ask a policy what to do in a spot"`
}

func main() {
	// .env is optional; values feed the env tags below
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokersim"),
		kong.Description("Texas Hold'em against rule-based and MCTS opponents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	cli.Globals.applyColor()
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

func (g *Globals) applyColor() {
	switch g.Color {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	default:
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
	}
}

func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Debug {
		cfg.Server.LogLevel = "debug"
	}
	if g.LogFile != "" {
		cfg.Server.LogFile = g.LogFile
	}
	return cfg, nil
}

// newLogger builds the logger from the config. fallbackFile is used when no
// log file is configured and output must stay off the terminal.
func (g *Globals) newLogger(cfg *config.Config, fallbackFile string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	path := cfg.Server.LogFile
	if path == "" {
		path = fallbackFile
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	return logger, closeFn, nil
}
