package poker

// RNG is the random source used for shuffling. *rand.Rand from math/rand/v2
// satisfies it; tests can supply a scripted source.
type RNG interface {
	IntN(n int) int
}

// Deck represents a standard 52-card deck, or the subset of it left after
// known cards were removed. Cards are dealt from the front.
type Deck struct {
	cards []Card
	next  int
	rng   RNG
}

// OrderedCards returns the 52 cards in suit-major, rank-ascending order
func OrderedCards() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng RNG) *Deck {
	d := &Deck{cards: OrderedCards(), rng: rng}
	d.Shuffle()
	return d
}

// NewDeckWithout creates a shuffled deck that excludes the given cards, so
// dealing from it never duplicates a card already in play.
func NewDeckWithout(rng RNG, exclude ...Card) *Deck {
	known := make(map[Card]struct{}, len(exclude))
	for _, c := range exclude {
		known[c] = struct{}{}
	}
	cards := make([]Card, 0, 52-len(known))
	for _, c := range OrderedCards() {
		if _, ok := known[c]; !ok {
			cards = append(cards, c)
		}
	}
	d := &Deck{cards: cards, rng: rng}
	d.Shuffle()
	return d
}

// NewStackedDeck creates a deck that deals the given cards in order. It is
// not shuffled and Shuffle only resets the deal position.
func NewStackedDeck(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// ShuffledCards returns all 52 cards in a uniformly random order
func ShuffledCards(rng RNG) []Card {
	cards := OrderedCards()
	shuffle(rng, cards)
	return cards
}

// Shuffle shuffles the deck using Fisher-Yates and resets the deal position
func (d *Deck) Shuffle() {
	d.next = 0
	if d.rng == nil {
		return
	}
	shuffle(d.rng, d.cards)
}

func shuffle(rng RNG, cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deal deals n cards from the deck. It returns nil if fewer than n remain.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// DealOne deals a single card from the deck
func (d *Deck) DealOne() (Card, bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// Remaining returns the undealt cards in deal order
func (d *Deck) Remaining() []Card {
	out := make([]Card, len(d.cards)-d.next)
	copy(out, d.cards[d.next:])
	return out
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
