package bot

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/mcts"
	"github.com/lox/pokersim/internal/randutil"
)

// Kinds of computer player accepted by New
const (
	KindRuleBased = "rule"
	KindMCTS      = "mcts"
	KindCall      = "call"
	KindRandom    = "random"
)

// Kinds returns the accepted kinds, sorted
func Kinds() []string {
	kinds := []string{KindRuleBased, KindMCTS, KindCall, KindRandom}
	sort.Strings(kinds)
	return kinds
}

// New creates a computer player of the given kind. Search settings are only
// used by the MCTS player.
func New(kind string, rng randutil.Source, search mcts.Config, logger *log.Logger) (game.Agent, error) {
	switch kind {
	case KindRuleBased:
		return NewRuleBased(rng, logger), nil
	case KindMCTS:
		return NewMCTSBot(mcts.New(search, rng, logger), logger), nil
	case KindCall:
		return NewCallBot(logger), nil
	case KindRandom:
		return NewRandBot(rng, logger), nil
	}
	return nil, fmt.Errorf("unknown bot kind %q (want one of %v)", kind, Kinds())
}
