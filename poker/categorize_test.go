package poker

import (
	"testing"
)

func TestCategorizeHoleCards(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		expected HoleCardCategory
	}{
		// Premium hands
		{"Pocket Aces", "As Ah", CategoryPremium},
		{"Pocket Jacks", "Jh Jd", CategoryPremium},
		{"Ace King offsuit", "Ac Kh", CategoryPremium},

		// Strong hands
		{"Pocket Tens", "Tc Th", CategoryStrong},
		{"Ace Queen suited", "As Qs", CategoryStrong},
		{"Ace Jack offsuit", "Ad Jc", CategoryStrong},

		// Medium hands
		{"Pocket Nines", "9c 9h", CategoryMedium},
		{"Pocket Sevens", "7h 7c", CategoryMedium},
		{"King Queen suited", "Ks Qs", CategoryMedium},
		{"Queen Jack suited", "Qd Jd", CategoryMedium},

		// Weak hands
		{"Pocket Sixes", "6c 6h", CategoryWeak},
		{"Pocket Twos", "2c 2h", CategoryWeak},
		{"Suited connectors 76s", "7h 6h", CategoryWeak},
		{"Suited one-gapper 53s", "5d 3d", CategoryWeak},

		// Trash hands
		{"Seven Two offsuit", "7c 2h", CategoryTrash},
		{"Jack Four offsuit", "Jh 4c", CategoryTrash},
		{"King Queen offsuit", "Kc Qh", CategoryTrash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := CategorizeHoleCards(MustParseCards(tt.cards))
			if result != tt.expected {
				t.Errorf("CategorizeHoleCards(%s) = %s, want %s", tt.cards, result, tt.expected)
			}
		})
	}
}

func TestCategorizeHoleCardsUnknown(t *testing.T) {
	t.Parallel()
	if got := CategorizeHoleCards(nil); got != CategoryUnknown {
		t.Errorf("no cards: got %s", got)
	}
	if got := CategorizeHoleCards(MustParseCards("As Ah Ac")); got != CategoryUnknown {
		t.Errorf("three cards: got %s", got)
	}
	if got := CategorizeHoleCards([]Card{{}, {}}); got != CategoryUnknown {
		t.Errorf("zero cards: got %s", got)
	}
	if CategoryPremium.Score() <= CategoryStrong.Score() || CategoryTrash.Score() != 0 {
		t.Error("category scores out of order")
	}
}
