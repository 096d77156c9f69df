package poker

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"
)

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable hand category.
func (t HandType) String() string {
	switch t {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the value of a made hand: its category plus an ordered
// tie-break sequence. For paired hands the made ranks lead the sequence
// (quads [quad, kicker], full house [trips, pair], two pair [high, low, kicker]).
// Straights carry only their top card, a wheel being 5-high.
type HandRank struct {
	Type    HandType
	Kickers []Rank
	Cards   []Card // the cards making up the hand, at most five
}

// Compare returns 1 if h beats other, -1 if it loses and 0 on a tie.
func (h HandRank) Compare(other HandRank) int {
	return Compare(h, other)
}

// String describes the hand, e.g. "Four of a Kind, Aces (K kicker)".
func (h HandRank) String() string {
	k := h.Kickers
	at := func(i int) Rank {
		if i < len(k) {
			return k[i]
		}
		return 0
	}
	switch h.Type {
	case StraightFlush:
		if at(0) == Ace {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s-high", at(0))
	case FourOfAKind:
		if len(k) > 1 {
			return fmt.Sprintf("Four of a Kind, %s (%s kicker)", at(0).Name(), at(1))
		}
		return fmt.Sprintf("Four of a Kind, %s", at(0).Name())
	case FullHouse:
		return fmt.Sprintf("Full House, %s full of %s", at(0).Name(), at(1).Name())
	case Flush:
		return fmt.Sprintf("Flush, %s-high", at(0))
	case Straight:
		return fmt.Sprintf("Straight, %s-high", at(0))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", at(0).Name())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", at(0).Name(), at(1).Name())
	case OnePair:
		return fmt.Sprintf("One Pair, %s", at(0).Name())
	default:
		return fmt.Sprintf("High Card, %s", at(0))
	}
}

// Compare orders two hand ranks: category first, then kicker by kicker.
// A missing kicker compares lower than any real rank.
func Compare(a, b HandRank) int {
	if a.Type != b.Type {
		if a.Type > b.Type {
			return 1
		}
		return -1
	}
	for i := 0; i < max(len(a.Kickers), len(b.Kickers)); i++ {
		var ka, kb Rank
		if i < len(a.Kickers) {
			ka = a.Kickers[i]
		}
		if i < len(b.Kickers) {
			kb = b.Kickers[i]
		}
		if ka != kb {
			if ka > kb {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Evaluate returns the best hand that can be made from the hole cards and
// the community cards. Every 5-card subset is considered; with fewer than
// five cards available the whole set is ranked (no straights or flushes).
func Evaluate(hole, board []Card) HandRank {
	all := make([]Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)

	if len(all) <= 5 {
		return rankCards(all)
	}

	var best HandRank
	found := false
	var combo [5]Card
	forEachCombination(len(all), 5, func(idx []int) {
		for i, j := range idx {
			combo[i] = all[j]
		}
		r := rankCards(combo[:])
		if !found || Compare(r, best) > 0 {
			best = r
			found = true
		}
	})
	return best
}

// forEachCombination calls fn with every k-element index subset of [0,n).
func forEachCombination(n, k int, fn func([]int)) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// rankCards ranks a set of at most five cards.
func rankCards(cards []Card) HandRank {
	var counts [Ace + 1]int
	var rankMask uint16
	suitCount := map[Suit]int{}
	for _, c := range cards {
		counts[c.Rank()]++
		rankMask |= 1 << (c.Rank() - Two)
		suitCount[c.Suit()]++
	}

	hand := HandRank{Cards: sortedCards(cards)}

	if len(cards) == 5 {
		isFlush := len(suitCount) == 1
		high := straightHigh(rankMask)
		switch {
		case isFlush && high > 0:
			hand.Type = StraightFlush
			hand.Kickers = []Rank{high}
			return hand
		case isFlush:
			hand.Type = Flush
			hand.Kickers = ranksByCount(counts, 1)
			return hand
		case high > 0:
			hand.Type = Straight
			hand.Kickers = []Rank{high}
			return hand
		}
	}

	quads := ranksByCount(counts, 4)
	trips := ranksByCount(counts, 3)
	pairs := ranksByCount(counts, 2)
	singles := ranksByCount(counts, 1)

	switch {
	case len(quads) > 0:
		hand.Type = FourOfAKind
		hand.Kickers = append(quads[:1:1], singles...)
	case len(trips) > 0 && len(pairs) > 0:
		hand.Type = FullHouse
		hand.Kickers = []Rank{trips[0], pairs[0]}
	case len(trips) > 0:
		hand.Type = ThreeOfAKind
		hand.Kickers = append(trips[:1:1], singles...)
	case len(pairs) > 1:
		hand.Type = TwoPair
		hand.Kickers = append([]Rank{pairs[0], pairs[1]}, singles...)
	case len(pairs) == 1:
		hand.Type = OnePair
		hand.Kickers = append(pairs[:1:1], singles...)
	default:
		hand.Type = HighCard
		hand.Kickers = singles
	}
	return hand
}

// ranksByCount returns the ranks appearing exactly n times, highest first.
func ranksByCount(counts [Ace + 1]int, n int) []Rank {
	var out []Rank
	for r := Ace; r >= Two; r-- {
		if counts[r] == n {
			out = append(out, r)
		}
	}
	return out
}

// straightHigh returns the top rank of a five-card straight in rankMask, or 0.
// Bit 0 is a Two; the wheel (A-2-3-4-5) is reported as Five-high.
func straightHigh(rankMask uint16) Rank {
	if bits.OnesCount16(rankMask) != 5 {
		return 0
	}
	const wheel = 1<<12 | 0xF
	if rankMask == wheel {
		return Five
	}
	low := bits.TrailingZeros16(rankMask)
	if rankMask>>low == 0x1F {
		return Rank(low+4) + Two
	}
	return 0
}

func sortedCards(cards []Card) []Card {
	out := slices.Clone(cards)
	slices.SortStableFunc(out, func(a, b Card) int {
		return int(b.Rank()) - int(a.Rank())
	})
	return out
}

// Describe returns a compact description with the best five cards,
// e.g. "Flush, A-high [A♥ J♥ 9♥ 6♥ 2♥]".
func Describe(h HandRank) string {
	return fmt.Sprintf("%s [%s]", h, strings.TrimSpace(FormatCards(h.Cards)))
}
