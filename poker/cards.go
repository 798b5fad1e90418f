package poker

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Suit represents a card suit
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in deck order
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the suit glyph
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the single-letter suit used in short notation ("s", "h", "d", "c")
func (s Suit) Letter() string {
	if s > Clubs {
		return "?"
	}
	return string("shdc"[s])
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is the numeric rank of a card, deuce=2 through ace=14
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the display rank ("2".."10", "J", "Q", "K", "A")
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Letter returns the single-character rank used in short notation ("T" for ten)
func (r Rank) Letter() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string("23456789TJQKA"[r-Two])
}

// Card represents a playing card. Cards are comparable values; two cards are
// equal when rank and suit match.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from rank and suit
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Value returns the numeric value of the card, 2 through 14 (ace high)
func (c Card) Value() int {
	return int(c.Rank)
}

// IsValid reports whether the card is one of the 52 standard cards
func (c Card) IsValid() bool {
	return c.Rank >= Two && c.Rank <= Ace && c.Suit <= Clubs
}

// IsRed returns true if the card is a heart or diamond
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// String returns the display form of the card (e.g. "A♠", "10♥")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Short returns the two-character form of the card (e.g. "As", "Th")
func (c Card) Short() string {
	return c.Rank.Letter() + c.Suit.Letter()
}

// MarshalText encodes the card in short notation
func (c Card) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid card: rank %d suit %d", c.Rank, c.Suit)
	}
	return []byte(c.Short()), nil
}

// UnmarshalText decodes short or display notation
func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a single card such as "As", "Th", "10h" or "A♠"
func ParseCard(s string) (Card, error) {
	card, rest, err := parseOne(strings.TrimSpace(s))
	if err != nil {
		return Card{}, err
	}
	if rest != "" {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}
	return card, nil
}

// ParseCards parses a list of cards. Cards may be concatenated ("AsKs") or
// separated by spaces or commas ("As, 10h").
func ParseCards(s string) ([]Card, error) {
	s = strings.NewReplacer(" ", "", ",", "", "\t", "").Replace(s)
	var cards []Card
	for s != "" {
		card, rest, err := parseOne(s)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
		s = rest
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixed inputs; it panics on error
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseOne(s string) (Card, string, error) {
	if len(s) < 2 {
		return Card{}, "", fmt.Errorf("invalid card string: %q", s)
	}

	var rank Rank
	if strings.HasPrefix(s, "10") {
		rank = Ten
		s = s[2:]
	} else {
		switch s[0] {
		case '2', '3', '4', '5', '6', '7', '8', '9':
			rank = Rank(s[0]-'0')
		case 'T', 't':
			rank = Ten
		case 'J', 'j':
			rank = Jack
		case 'Q', 'q':
			rank = Queen
		case 'K', 'k':
			rank = King
		case 'A', 'a':
			rank = Ace
		default:
			return Card{}, "", fmt.Errorf("invalid rank: %c", s[0])
		}
		s = s[1:]
	}

	r, size := utf8.DecodeRuneInString(s)
	var suit Suit
	switch r {
	case 's', 'S', '♠':
		suit = Spades
	case 'h', 'H', '♥':
		suit = Hearts
	case 'd', 'D', '♦':
		suit = Diamonds
	case 'c', 'C', '♣':
		suit = Clubs
	default:
		return Card{}, "", fmt.Errorf("invalid suit: %q", r)
	}

	return NewCard(rank, suit), s[size:], nil
}

// FormatCards joins cards using their display form
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
