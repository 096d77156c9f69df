package poker

import (
	"fmt"
	"strings"
)

// Suit is one of the four card suits.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the suit symbol.
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

// Letter returns the single-letter suit code used in card notation.
func (s Suit) Letter() byte {
	return "shdc?"[min(int(s), 4)]
}

// IsRed returns true for hearts and diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is a card rank. Values match pip counts: Two=2 through Ace=14.
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

// String returns the display form of the rank ("10" for ten).
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + r))
	case r == Ten:
		return "10"
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

// Name returns the plural rank name used in hand descriptions ("Aces", "Sixes").
func (r Rank) Name() string {
	names := map[Rank]string{
		Two: "Twos", Three: "Threes", Four: "Fours", Five: "Fives", Six: "Sixes",
		Seven: "Sevens", Eight: "Eights", Nine: "Nines", Ten: "Tens",
		Jack: "Jacks", Queen: "Queens", King: "Kings", Ace: "Aces",
	}
	if n, ok := names[r]; ok {
		return n
	}
	return "?"
}

// Card is an immutable playing card.
type Card struct {
	rank Rank
	suit Suit
}

// NewCard creates a card. It panics on an out-of-range rank or suit.
func NewCard(rank Rank, suit Suit) Card {
	if rank < Two || rank > Ace || suit > Clubs {
		panic(fmt.Sprintf("invalid card rank=%d suit=%d", rank, suit))
	}
	return Card{rank: rank, suit: suit}
}

// Rank returns the card rank.
func (c Card) Rank() Rank { return c.rank }

// Suit returns the card suit.
func (c Card) Suit() Suit { return c.suit }

// IsZero reports whether c is the zero Card (not a real card).
func (c Card) IsZero() bool { return c.rank == 0 }

// String returns compact notation, e.g. "As", "Td".
func (c Card) String() string {
	if c.IsZero() {
		return "??"
	}
	r := c.rank.String()
	if c.rank == Ten {
		r = "T"
	}
	return r + string(c.suit.Letter())
}

// Symbol returns the display form with a suit symbol, e.g. "A♠", "10♦".
func (c Card) Symbol() string {
	return c.rank.String() + c.suit.String()
}

// ParseCard parses a card in [Rank][Suit] notation ("As", "Td", "10h").
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	rank, err := parseRank(s[0])
	if err != nil {
		return Card{}, err
	}
	suit, err := parseSuit(s[1])
	if err != nil {
		return Card{}, err
	}
	return Card{rank: rank, suit: suit}, nil
}

// ParseCards parses whitespace-separated or concatenated cards ("AsKd", "As Kd").
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, "10", "T")
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("card at position %d: %w", i/2, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests).
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

// FormatCards joins card symbols with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Symbol()
	}
	return strings.Join(parts, " ")
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if c >= '2' && c <= '9' {
		return Rank(c - '0'), nil
	}
	return 0, fmt.Errorf("unknown rank '%c'", c)
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit '%c'", c)
	}
}
