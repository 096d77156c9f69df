package poker

import (
	"errors"
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// ErrEmptyDeck is returned when drawing from a deck with no cards left.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is an ordered stack of the cards not yet dealt. The top of the deck is
// the end of the slice.
type Deck struct {
	cards []Card
}

// NewOrderedDeck returns all 52 cards in suit/rank order, unshuffled.
func NewOrderedDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, DeckSize)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// NewShuffledDeck builds a full deck and applies one Fisher-Yates pass using rng.
func NewShuffledDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := NewOrderedDeck()
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return d
}

// NewStackedDeck returns a deck that deals the given cards in order, first
// card first. Used to set up deterministic hands.
func NewStackedDeck(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

// DrawN removes and returns n cards from the top. Nothing is removed on error.
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrEmptyDeck
	}
	out := make([]Card, 0, n)
	for range n {
		c, _ := d.Draw()
		out = append(out, c)
	}
	return out, nil
}

// Remaining returns the number of cards left.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
