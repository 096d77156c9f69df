package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/poker"
)

// TAGBot is a tight aggressive bot. Preflop it plays from its hole card
// category, postflop from the made hand.
type TAGBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewTAGBot creates a new TAGBot instance
func NewTAGBot(rng *rand.Rand, logger *log.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: logger}
}

func (t *TAGBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	if v.Street == game.PreFlop {
		return decided(t.logger, v, t.preflop(v))
	}
	return decided(t.logger, v, t.postflop(v))
}

func (t *TAGBot) preflop(v game.View) game.Decision {
	switch poker.CategorizeHoleCards(v.HoleCards) {
	case poker.CategoryPremium:
		if v.CanRaise() {
			return raiseTo(v, v.MinRaise+(v.MaxRaise-v.MinRaise)/4, "TAG raise premium")
		}
		return passive(v, "TAG premium, raise capped")
	case poker.CategoryStrong:
		if v.CanRaise() && v.TableBet <= v.BigBlind {
			return raiseTo(v, 3*v.BigBlind, "TAG open strong")
		}
		return passive(v, "TAG call strong")
	case poker.CategoryMedium:
		if v.ToCall <= 3*v.BigBlind {
			return passive(v, "TAG call medium")
		}
	}
	if v.CanCheck() {
		return game.Decision{Action: game.Check, Reasoning: "TAG check"}
	}
	return game.Decision{Action: game.Fold, Reasoning: "TAG fold"}
}

func (t *TAGBot) postflop(v game.View) game.Decision {
	hand := poker.Evaluate(v.HoleCards, v.Community)
	switch {
	case hand.Type >= poker.TwoPair:
		if v.CanRaise() {
			return raiseTo(v, v.TableBet+max(v.Pot/2, v.BigBlind), "TAG value bet "+hand.Type.String())
		}
		return passive(v, "TAG value call")
	case hand.Type == poker.OnePair:
		if v.ToCall*3 <= v.Pot {
			return passive(v, "TAG pair call")
		}
	}
	if v.CanCheck() {
		return game.Decision{Action: game.Check, Reasoning: "TAG check"}
	}
	if has(v, game.Call) && t.rng.Float64() < 0.1 {
		return game.Decision{Action: game.Call, Reasoning: "TAG float"}
	}
	return game.Decision{Action: game.Fold, Reasoning: "TAG fold"}
}
