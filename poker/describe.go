package poker

import (
	"fmt"

	ph "github.com/paulhankin/poker"
)

// Describe returns an exact description of the best five-card hand in cards,
// such as "pair of nines, ace kicker". It is for display only; ranking always
// goes through Evaluate. Between five and seven cards are required.
func Describe(cards []Card) (string, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return "", fmt.Errorf("describe needs 5 to 7 cards, got %d", len(cards))
	}
	converted := make([]ph.Card, len(cards))
	for i, c := range cards {
		pc, err := toPaulhankin(c)
		if err != nil {
			return "", err
		}
		converted[i] = pc
	}
	if len(converted) == 6 {
		converted = bestFive(converted)
	}
	return ph.Describe(converted)
}

// bestFive picks the highest scoring five of six cards
func bestFive(cards []ph.Card) []ph.Card {
	var best [5]ph.Card
	bestScore := int16(-1)
	for skip := range cards {
		var five [5]ph.Card
		n := 0
		for i, c := range cards {
			if i != skip {
				five[n] = c
				n++
			}
		}
		if score := ph.Eval5(&five); bestScore < 0 || score > bestScore {
			best, bestScore = five, score
		}
	}
	return best[:]
}

func toPaulhankin(c Card) (ph.Card, error) {
	var zero ph.Card
	var suit ph.Suit
	switch c.Suit {
	case Spades:
		suit = ph.Spade
	case Hearts:
		suit = ph.Heart
	case Diamonds:
		suit = ph.Diamond
	case Clubs:
		suit = ph.Club
	default:
		return zero, fmt.Errorf("invalid suit for %v", c)
	}
	// The library counts ranks 1..13 with the ace as 1.
	rank := ph.Rank(c.Rank)
	if c.Rank == Ace {
		rank = ph.Rank(1)
	}
	pc, err := ph.MakeCard(suit, rank)
	if err != nil {
		return zero, fmt.Errorf("convert %v: %w", c, err)
	}
	return pc, nil
}
