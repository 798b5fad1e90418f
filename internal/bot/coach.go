package bot

import (
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/poker"
)

// Coaching is the advice panel shown to a human seat
type Coaching struct {
	Strength       float64                `json:"strength"`
	Label          string                 `json:"label"`
	Hand           string                 `json:"hand"`
	HoleCategory   poker.HoleCardCategory `json:"holeCategory"`
	PotOdds        float64                `json:"potOdds"`
	Recommendation Recommendation         `json:"recommendation"`
	Tips           []string               `json:"tips"`
}

// Coach builds the advice for the seat in v
func Coach(v game.View) Coaching {
	strength := poker.StrengthOf(v.HoleCards, v.Board)
	c := Coaching{
		Strength:       strength,
		Label:          poker.StrengthLabel(strength),
		HoleCategory:   poker.CategorizeHoleCards(v.HoleCards),
		PotOdds:        PotOdds(v.ToCall, v.Pot),
		Recommendation: Recommend(strength, v.ToCall, v.Pot),
		Tips:           Tips(v, strength),
	}
	if len(v.HoleCards) > 0 {
		c.Hand = poker.Evaluate(v.HoleCards, v.Board).Name
	}
	return c
}

// Tips returns position, strength and street hints
func Tips(v game.View, strength float64) []string {
	var tips []string

	if v.FirstToAct {
		tips = append(tips, "You're first to act - being early is a disadvantage")
	} else {
		tips = append(tips, "Later position gives you information advantage")
	}

	switch {
	case strength > 60:
		tips = append(tips, "Premium hand - consider raising to build the pot")
	case strength < 30:
		tips = append(tips, "Marginal hand - be cautious with large bets")
	}

	switch v.Street {
	case game.Preflop:
		if poker.CategorizeHoleCards(v.HoleCards) >= poker.CategoryStrong {
			tips = append(tips, "Starting hand selection is crucial in poker - this one is worth playing")
		} else {
			tips = append(tips, "Starting hand selection is crucial in poker")
		}
	case game.Flop:
		tips = append(tips, "The flop defines your hand - reassess your strength")
	case game.River:
		tips = append(tips, "Last chance to bet - make it count or save chips")
	}
	return tips
}
