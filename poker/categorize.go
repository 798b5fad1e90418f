package poker

import "fmt"

// HoleCardCategory buckets a starting hand. Higher is stronger; the zero
// value means the input was not two valid cards.
type HoleCardCategory int

const (
	CategoryUnknown HoleCardCategory = iota
	CategoryTrash
	CategoryWeak
	CategoryMedium
	CategoryStrong
	CategoryPremium
)

func (c HoleCardCategory) String() string {
	if c < CategoryUnknown || c > CategoryPremium {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return [...]string{"Unknown", "Trash", "Weak", "Medium", "Strong", "Premium"}[c]
}

// MarshalText encodes the category name
func (c HoleCardCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// CategorizeHoleCards buckets two hole cards:
// Premium (JJ+, AK), Strong (TT, AQ, AJ), Medium (77-99, two suited
// broadway cards), Weak (22-66, suited cards at most two ranks apart),
// Trash otherwise.
func CategorizeHoleCards(hole []Card) HoleCardCategory {
	if len(hole) != 2 || !hole[0].IsValid() || !hole[1].IsValid() {
		return CategoryUnknown
	}

	lo, hi := hole[0].Rank, hole[1].Rank
	if lo > hi {
		lo, hi = hi, lo
	}
	pair := lo == hi
	suited := hole[0].Suit == hole[1].Suit

	switch {
	case pair && lo >= Jack, hi == Ace && lo == King:
		return CategoryPremium
	case pair && lo == Ten, hi == Ace && lo >= Jack:
		return CategoryStrong
	case pair && lo >= Seven, suited && lo >= Ten:
		return CategoryMedium
	case pair, suited && hi-lo <= 2:
		return CategoryWeak
	}
	return CategoryTrash
}
