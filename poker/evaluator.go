package poker

import "sort"

// Category enumerates poker hand categories ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = [...]string{
	"High Card",
	"Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
}

// String returns a human-readable category name
func (c Category) String() string {
	if int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Evaluation is the result of scoring a seat's cards. HighCard is the highest
// card value among every card considered, not a full five-card kicker.
type Evaluation struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	HighCard int      `json:"highCard"`
}

// Evaluate scores 2 hole cards plus 0-5 community cards
func Evaluate(hole, community []Card) Evaluation {
	all := make([]Card, 0, len(hole)+len(community))
	all = append(all, hole...)
	all = append(all, community...)
	return EvaluateCards(all)
}

// EvaluateCards scores an arbitrary set of cards. Flushes and straights need
// at least five cards; smaller sets fall through to the pair categories.
func EvaluateCards(cards []Card) Evaluation {
	var valueCounts [15]int
	var suitCounts [4]int
	high := 0
	for _, c := range cards {
		v := c.Value()
		if v < 2 || v > 14 || c.Suit > Clubs {
			continue
		}
		valueCounts[v]++
		suitCounts[c.Suit]++
		if v > high {
			high = v
		}
	}

	counts := make([]int, 0, 7)
	var unique []int
	for v := 2; v <= 14; v++ {
		if valueCounts[v] > 0 {
			counts = append(counts, valueCounts[v])
			unique = append(unique, v)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	flush := hasFlush(suitCounts)
	straight := hasStraight(unique)

	top, second := 0, 0
	if len(counts) > 0 {
		top = counts[0]
	}
	if len(counts) > 1 {
		second = counts[1]
	}

	var category Category
	switch {
	case flush && straight:
		category = StraightFlush
	case top == 4:
		category = FourOfAKind
	case top == 3 && second >= 2:
		category = FullHouse
	case flush:
		category = Flush
	case straight:
		category = Straight
	case top == 3:
		category = ThreeOfAKind
	case top == 2 && second == 2:
		category = TwoPair
	case top == 2:
		category = Pair
	default:
		category = HighCard
	}

	return Evaluation{Category: category, Name: category.String(), HighCard: high}
}

func hasFlush(suitCounts [4]int) bool {
	for _, n := range suitCounts {
		if n >= 5 {
			return true
		}
	}
	return false
}

// hasStraight expects unique values sorted ascending
func hasStraight(values []int) bool {
	if len(values) < 5 {
		return false
	}
	for i := 0; i+4 < len(values); i++ {
		if values[i+4]-values[i] == 4 {
			return true
		}
	}

	// Wheel: A-2-3-4-5 with the ace playing low
	present := make(map[int]bool, len(values))
	for _, v := range values {
		present[v] = true
	}
	return present[14] && present[2] && present[3] && present[4] && present[5]
}

// Compare returns 1 if a wins, -1 if b wins, 0 for a tie
func Compare(a, b Evaluation) int {
	switch {
	case a.Category > b.Category:
		return 1
	case a.Category < b.Category:
		return -1
	case a.HighCard > b.HighCard:
		return 1
	case a.HighCard < b.HighCard:
		return -1
	}
	return 0
}

// Beats reports whether e strictly wins against other
func (e Evaluation) Beats(other Evaluation) bool {
	return Compare(e, other) > 0
}
