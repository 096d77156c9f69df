package poker

// HoleCardCategory is a coarse preflop strength bucket used by the built-in bots.
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// CategorizeHoleCards buckets a starting hand.
// Premium (JJ+, AK), Strong (TT, AQ, AJ), Medium (77-99, suited broadway),
// Weak (22-66, suited connectors), Trash (everything else).
func CategorizeHoleCards(hole []Card) HoleCardCategory {
	if len(hole) != 2 || hole[0].IsZero() || hole[1].IsZero() {
		return CategoryUnknown
	}

	small, big := hole[0].Rank(), hole[1].Rank()
	if small > big {
		small, big = big, small
	}
	suited := hole[0].Suit() == hole[1].Suit()
	pair := small == big

	switch {
	case pair && small >= Jack, small == King && big == Ace:
		return CategoryPremium
	case pair && small == Ten, big == Ace && (small == Queen || small == Jack):
		return CategoryStrong
	case pair && small >= Seven, suited && small >= Ten:
		return CategoryMedium
	case pair, suited && big-small <= 2:
		return CategoryWeak
	default:
		return CategoryTrash
	}
}

// Score maps the category onto 0 (trash) through 4 (premium).
func (c HoleCardCategory) Score() int {
	switch c {
	case CategoryPremium:
		return 4
	case CategoryStrong:
		return 3
	case CategoryMedium:
		return 2
	case CategoryWeak:
		return 1
	default:
		return 0
	}
}
