// Package config loads pokersim.hcl: server settings, search settings, batch
// simulation settings and named table definitions.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokersim/internal/bot"
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/mcts"
	"github.com/lox/pokersim/internal/table"
)

// DefaultFilename is the config file looked up by the CLI
const DefaultFilename = "pokersim.hcl"

// Config represents the complete configuration
type Config struct {
	Server     ServerSettings     `hcl:"server,block"`
	AI         AISettings         `hcl:"ai,block"`
	Simulation SimulationSettings `hcl:"simulation,block"`
	Tables     []TableConfig      `hcl:"table,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	LogFile     string `hcl:"log_file,optional"`
	ThinkTimeMS int    `hcl:"think_time_ms,optional"`
	MaxTables   int    `hcl:"max_tables,optional"`
}

// AISettings controls the search player
type AISettings struct {
	Iterations  int     `hcl:"iterations,optional"`
	Exploration float64 `hcl:"exploration,optional"`
}

// SimulationSettings controls batch matches
type SimulationSettings struct {
	Hands   int    `hcl:"hands,optional"`
	Workers int    `hcl:"workers,optional"`
	Output  string `hcl:"output,optional"`
}

// TableConfig defines a named table. Unset values come from the preset.
type TableConfig struct {
	Name          string       `hcl:"name,label"`
	Preset        string       `hcl:"preset,optional"`
	StartingChips int          `hcl:"starting_chips,optional"`
	SmallBlind    int          `hcl:"small_blind,optional"`
	BigBlind      int          `hcl:"big_blind,optional"`
	ShortStack    string       `hcl:"short_stack,optional"`
	Seed          *int64       `hcl:"seed,optional"`
	Seats         []SeatConfig `hcl:"seat,block"`
}

// SeatConfig defines one seat of a table
type SeatConfig struct {
	Name  string `hcl:"name,label"`
	Human bool   `hcl:"human,optional"`
	Bot   string `hcl:"bot,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{
		Tables: []TableConfig{
			{Name: "multiway", Preset: "multiway"},
			{Name: "headsup", Preset: "headsup"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if len(cfg.Tables) == 0 {
		cfg.Tables = Default().Tables
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.ThinkTimeMS == 0 {
		c.Server.ThinkTimeMS = 1000
	}
	if c.Server.MaxTables == 0 {
		c.Server.MaxTables = 64
	}

	search := mcts.DefaultConfig()
	if c.AI.Iterations == 0 {
		c.AI.Iterations = search.Iterations
	}
	if c.AI.Exploration == 0 {
		c.AI.Exploration = search.Exploration
	}

	if c.Simulation.Hands == 0 {
		c.Simulation.Hands = 1000
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = 4
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Server.Port))
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Server.LogLevel))
	}
	if c.Server.ThinkTimeMS < 0 {
		errs = append(errs, errors.New("think_time_ms must not be negative"))
	}
	if c.AI.Iterations < 0 {
		errs = append(errs, errors.New("ai iterations must not be negative"))
	}
	if c.AI.Exploration < 0 {
		errs = append(errs, errors.New("ai exploration must not be negative"))
	}
	if c.Simulation.Hands < 1 {
		errs = append(errs, errors.New("simulation hands must be positive"))
	}
	if c.Simulation.Workers < 1 {
		errs = append(errs, errors.New("simulation workers must be positive"))
	}

	names := make(map[string]bool)
	for _, t := range c.Tables {
		if names[t.Name] {
			errs = append(errs, fmt.Errorf("duplicate table %q", t.Name))
		}
		names[t.Name] = true
		tc, err := c.table(t)
		if err != nil {
			errs = append(errs, fmt.Errorf("table %s: %w", t.Name, err))
			continue
		}
		if err := tc.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("table %s: %w", t.Name, err))
		}
	}
	return errors.Join(errs...)
}

// ServerAddress returns the listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// ThinkTime returns the AI thinking delay
func (c *Config) ThinkTime() time.Duration {
	return time.Duration(c.Server.ThinkTimeMS) * time.Millisecond
}

// Search returns the search settings
func (c *Config) Search() mcts.Config {
	return mcts.Config{Iterations: c.AI.Iterations, Exploration: c.AI.Exploration}
}

// TableNames returns the configured table names in file order
func (c *Config) TableNames() []string {
	names := make([]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		names = append(names, t.Name)
	}
	return names
}

// Table resolves a named table into a table configuration. Names that are
// not configured fall back to the built-in presets.
func (c *Config) Table(name string) (table.Config, error) {
	for _, t := range c.Tables {
		if t.Name == name {
			return c.table(t)
		}
	}
	tc, err := table.Preset(name)
	if err != nil {
		return table.Config{}, err
	}
	tc.ThinkTime = c.ThinkTime()
	tc.Search = c.Search()
	return tc, nil
}

func (c *Config) table(t TableConfig) (table.Config, error) {
	preset := t.Preset
	if preset == "" {
		preset = t.Name
		if _, err := table.Preset(preset); err != nil {
			preset = "multiway"
		}
	}
	tc, err := table.Preset(preset)
	if err != nil {
		return table.Config{}, err
	}

	tc.Name = t.Name
	tc.ThinkTime = c.ThinkTime()
	tc.Search = c.Search()
	tc.Seed = t.Seed
	if t.StartingChips != 0 {
		tc.StartingChips = t.StartingChips
	}
	if t.SmallBlind != 0 {
		tc.SmallBlind = t.SmallBlind
	}
	if t.BigBlind != 0 {
		tc.BigBlind = t.BigBlind
	}
	if t.ShortStack != "" {
		policy, err := ParseShortStack(t.ShortStack)
		if err != nil {
			return table.Config{}, err
		}
		tc.ShortStack = policy
	}
	if len(t.Seats) > 0 {
		tc.Seats = nil
		for _, s := range t.Seats {
			seat := table.SeatConfig{Name: s.Name, Human: s.Human, Bot: s.Bot}
			if !seat.Human && seat.Bot == "" {
				seat.Bot = bot.KindRuleBased
			}
			tc.Seats = append(tc.Seats, seat)
		}
	}
	return tc, nil
}

// ParseShortStack parses a short-stack policy name
func ParseShortStack(s string) (game.ShortStackPolicy, error) {
	switch s {
	case "reject":
		return game.ShortStackReject, nil
	case "all-in", "allin":
		return game.ShortStackAllIn, nil
	}
	return game.ShortStackReject, fmt.Errorf("invalid short_stack %q (want reject or all-in)", s)
}
