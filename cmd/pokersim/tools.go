package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokersim/internal/bot"
	"github.com/lox/pokersim/internal/fileutil"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/poker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func field(label string, value any) {
	fmt.Printf("%s %v\n", labelStyle.Render(label+":"), value)
}

// EvalCmd evaluates hole cards against a board
type EvalCmd struct {
	Hole  string `arg:"" help:"Hole cards, e.g. 'As Kd'"`
	Board string `arg:"" optional:"" help:"Board cards, e.g. 'Qs Js 2d'"`
}

func (c *EvalCmd) Run(g *Globals) error {
	hole, board, err := bot.ParseHand(c.Hole, c.Board)
	if err != nil {
		return err
	}
	if len(hole) != 2 {
		return fmt.Errorf("need exactly 2 hole cards, got %d", len(hole))
	}

	e := poker.Evaluate(hole, board)
	strength := poker.Strength(e)
	fmt.Println(titleStyle.Render(poker.FormatCards(hole) + " | " + poker.FormatCards(board)))
	field("Hand", e.Name)
	field("Strength", fmt.Sprintf("%.0f (%s)", strength, poker.StrengthLabel(strength)))
	field("Hole cards", poker.CategorizeHoleCards(hole))
	if desc, err := poker.Describe(append(append([]poker.Card(nil), hole...), board...)); err == nil {
		field("Exactly", desc)
	}
	return nil
}

// DeckCmd prints a shuffled deck
type DeckCmd struct {
	Seed *int64 `help:"Deterministic seed"`
	Out  string `type:"path" help:"Also write the deck to this file"`
}

func (c *DeckCmd) Run(g *Globals) error {
	rng, seed := randutil.NewFromSeedOrTime(c.Seed)
	cards := poker.ShuffledCards(rng)
	text := poker.FormatCards(cards)

	fmt.Println(text)
	fmt.Fprintf(os.Stderr, "seed %d\n", seed)
	if c.Out != "" {
		if err := fileutil.WriteFileAtomic(c.Out, []byte(text+"\n"), 0o644); err != nil {
			return fmt.Errorf("write deck: %w", err)
		}
	}
	return nil
}

// DecideCmd asks a policy what to do in a spot
type DecideCmd struct {
	Hole       string `arg:"" help:"Hole cards"`
	Board      string `arg:"" optional:"" help:"Board cards"`
	Policy     string `default:"mcts" enum:"mcts,rule" help:"Policy to ask"`
	Pot        int    `default:"30" help:"Pot before this decision"`
	CurrentBet int    `default:"20" help:"Highest bet this street"`
	Bet        int    `help:"Hero's bet this street"`
	Chips      int    `default:"1000" help:"Hero's remaining chips"`
	BigBlind   int    `default:"20" help:"Big blind"`
	Opponents  int    `default:"1" help:"Opponents still in the hand"`
	Street     string `help:"Street: preflop, flop, turn or river (defaults from the board)"`
	Iterations int    `help:"Search iterations (defaults to the config)"`
	Seed       *int64 `help:"Deterministic seed"`
	JSON       bool   `name:"json" help:"Print the analysis as JSON"`
}

func (c *DecideCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := g.newLogger(cfg, "")
	if err != nil {
		return err
	}
	defer closeLog()

	v, err := bot.Spot{
		HoleCards:  c.Hole,
		Board:      c.Board,
		Street:     c.Street,
		Pot:        c.Pot,
		CurrentBet: c.CurrentBet,
		Bet:        c.Bet,
		Chips:      c.Chips,
		BigBlind:   c.BigBlind,
		Opponents:  c.Opponents,
	}.View()
	if err != nil {
		return err
	}

	search := cfg.Search()
	if c.Iterations > 0 {
		search.Iterations = c.Iterations
	}
	a, err := bot.Analyze(v, c.Policy, search, c.Seed, logger)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}

	decision := a.Decision.Action.String()
	if a.Decision.Amount > 0 {
		decision = fmt.Sprintf("%s to %d", decision, a.Decision.Amount)
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("%s on the %s", poker.FormatCards(v.HoleCards), v.Street)))
	field("Decision", decision)
	if a.Decision.Reasoning != "" {
		field("Reasoning", a.Decision.Reasoning)
	}
	field("Coach", fmt.Sprintf("%s (%s)", a.Coaching.Recommendation.Action, a.Coaching.Recommendation.Reason))
	field("Strength", fmt.Sprintf("%.0f (%s)", a.Coaching.Strength, a.Coaching.Label))
	if len(a.Coaching.Tips) > 0 {
		field("Tips", strings.Join(a.Coaching.Tips, "; "))
	}
	for _, child := range a.Children {
		fmt.Printf("  %-6s visits=%-6d mean=%.3f\n", child.Action, child.Visits, child.Mean)
	}
	field("Seed", a.Seed)
	return nil
}
