package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/game"
)

// RandBot picks a uniformly random legal action.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	if len(v.Legal) == 0 {
		return decided(r.logger, v, game.Decision{Action: game.Fold, Reasoning: "rand-bot no legal actions"})
	}

	action := v.Legal[r.rng.IntN(len(v.Legal))]
	d := game.Decision{Action: action, Reasoning: "rand-bot random action"}
	if action == game.Bet || action == game.Raise {
		d.Amount = v.MinRaise
		if v.MaxRaise > v.MinRaise {
			d.Amount += r.rng.IntN(v.MaxRaise - v.MinRaise + 1)
		}
	}
	return decided(r.logger, v, d)
}
