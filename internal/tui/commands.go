package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/table"
)

// CommandKind is what a line of input asks for
type CommandKind int

const (
	CommandAct CommandKind = iota
	CommandNextHand
	CommandHint
	CommandHelp
	CommandQuit
)

// Command is a parsed line of input
type Command struct {
	Kind   CommandKind
	Action game.Action
	Amount int
}

var errEmpty = errors.New("enter an action")

// ParseCommand interprets input against the current table state. An empty
// line deals the next hand once the current one is over.
func ParseCommand(input string, st table.State) (Command, error) {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		if st.HandOver && !st.GameOver {
			return Command{Kind: CommandNextHand}, nil
		}
		return Command{}, errEmpty
	}

	switch parts[0] {
	case "q", "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	case "n", "next", "deal":
		return Command{Kind: CommandNextHand}, nil
	case "h", "hint", "coach":
		return Command{Kind: CommandHint}, nil
	case "?", "help":
		return Command{Kind: CommandHelp}, nil
	}

	action, err := game.ParseAction(parts[0])
	if err != nil {
		return Command{}, fmt.Errorf("unknown command %q", parts[0])
	}
	cmd := Command{Kind: CommandAct, Action: action}
	if action != game.Raise {
		return cmd, nil
	}

	args := parts[1:]
	if len(args) > 0 && args[0] == "to" {
		args = args[1:]
	}
	if len(args) == 0 {
		cmd.Amount = defaultRaise(st)
		return cmd, nil
	}
	amount, err := strconv.Atoi(strings.TrimPrefix(args[0], "$"))
	if err != nil || amount <= 0 {
		return Command{}, fmt.Errorf("invalid raise amount %q", args[0])
	}
	cmd.Amount = amount
	return cmd, nil
}

// defaultRaise is the raise-to total suggested when no amount is typed
func defaultRaise(st table.State) int {
	if st.Viewer < 0 || st.Viewer >= len(st.Seats) {
		return st.CurrentBet
	}
	seat := st.Seats[st.Viewer]
	return game.HalfPotRaise(st.CurrentBet, st.Pot, seat.Bet+seat.Chips)
}

const helpText = "Commands: fold (f), check (k), call (c), raise [to] N (r), allin (a), " +
	"next (n), hint (h), quit (q). Enter deals the next hand when one is over."
