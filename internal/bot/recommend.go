// Package bot contains the computer players: the rule-based policy with its
// coaching hints, the MCTS player and a couple of simple reference bots. All
// of them implement game.Agent.
package bot

import "github.com/lox/pokersim/internal/game"

// Strength thresholds used by Recommend
const (
	RaiseThreshold    = 70.0
	ContinueThreshold = 40.0
	OddsThreshold     = 20.0
	MaxPotOdds        = 0.3
)

// Recommendation is the suggested action for a hand with a short reason
type Recommendation struct {
	Action game.Action `json:"action"`
	Reason string      `json:"reason"`
}

// PotOdds is the share of the final pot the seat must put in to call
func PotOdds(toCall, pot int) float64 {
	if pot+toCall <= 0 {
		return 0
	}
	return float64(toCall) / float64(pot+toCall)
}

// Recommend maps hand strength and the price to call onto an action
func Recommend(strength float64, toCall, pot int) Recommendation {
	switch {
	case strength > RaiseThreshold:
		return Recommendation{Action: game.Raise, Reason: "Strong hand - maximize value"}
	case strength > ContinueThreshold:
		if toCall == 0 {
			return Recommendation{Action: game.Check, Reason: "Decent hand - see more cards for free"}
		}
		return Recommendation{Action: game.Call, Reason: "Decent hand - worth seeing more cards"}
	case strength > OddsThreshold && PotOdds(toCall, pot) < MaxPotOdds:
		// Also reached with nothing to call; the seat then checks
		return Recommendation{Action: game.Call, Reason: "Getting good pot odds"}
	case toCall == 0:
		return Recommendation{Action: game.Check, Reason: "Free card - why not?"}
	default:
		return Recommendation{Action: game.Fold, Reason: "Weak hand - save your chips"}
	}
}

// checkOrCall returns the passive continuation for the price
func checkOrCall(toCall int) game.Action {
	if toCall == 0 {
		return game.Check
	}
	return game.Call
}

// legalize turns a decision into one the table accepts for the view. Under
// ShortStackReject a call the stack cannot cover is never turned into a
// shove; the seat folds instead.
func legalize(v game.View, d game.Decision) game.Decision {
	has := func(a game.Action) bool {
		for _, legal := range v.LegalActions {
			if legal == a {
				return true
			}
		}
		return false
	}
	shove := v.ShortStack == game.ShortStackAllIn || v.Chips >= v.ToCall

	switch d.Action {
	case game.Check, game.Call:
		d.Action = checkOrCall(v.ToCall)
	case game.Raise:
		if d.Amount <= v.CurrentBet || d.Amount-v.Bet > v.Chips || !has(game.Raise) {
			d.Action, d.Amount = game.AllIn, 0
			if !shove {
				d.Action = game.Call
			}
		}
	}
	if d.Action != game.Raise {
		d.Amount = 0
	}

	if len(v.LegalActions) == 0 || has(d.Action) {
		return d
	}
	if d.Action == game.Call && has(game.AllIn) && v.ShortStack == game.ShortStackAllIn {
		d.Action = game.AllIn
		return d
	}
	if has(game.Check) {
		d.Action = game.Check
		return d
	}
	d.Action = game.Fold
	return d
}
