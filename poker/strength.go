package poker

// Strength maps an evaluation onto a 0-100 percentage. The category provides
// the base; high-card hands get up to 15 extra points for their top card.
func Strength(e Evaluation) float64 {
	strength := float64(e.Category) / 8 * 100
	if e.Category == HighCard {
		strength += float64(e.HighCard-2) / 12 * 15
	}
	return max(0, min(100, strength))
}

// StrengthOf evaluates and scores a seat's cards in one step. A seat with no
// hole cards has strength 0.
func StrengthOf(hole, community []Card) float64 {
	if len(hole) == 0 {
		return 0
	}
	return Strength(Evaluate(hole, community))
}

// StrengthLabel buckets a strength percentage for display
func StrengthLabel(strength float64) string {
	switch {
	case strength > 70:
		return "Very Strong"
	case strength > 50:
		return "Strong"
	case strength > 30:
		return "Medium"
	default:
		return "Weak"
	}
}
