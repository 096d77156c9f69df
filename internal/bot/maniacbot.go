package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/game"
)

// ManiacBot raises whenever it can most of the time and shoves often.
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger}
}

func (m *ManiacBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	if v.CanCheck() {
		// maniacs prefer to bet
		if v.CanRaise() && m.rng.Float64() < 0.7 {
			if v.Chips <= 20*v.BigBlind || m.rng.Float64() < 0.3 {
				return decided(m.logger, v, raiseTo(v, v.MaxRaise, "maniac shove"))
			}
			size := v.MinRaise + (v.MaxRaise-v.MinRaise)*3/4
			return decided(m.logger, v, raiseTo(v, size, "maniac big raise"))
		}
		return decided(m.logger, v, game.Decision{Action: game.Check, Reasoning: "maniac checking"})
	}

	// facing a bet
	roll := m.rng.Float64()
	if roll < 0.4 && v.CanRaise() {
		return decided(m.logger, v, raiseTo(v, v.MaxRaise, "maniac shove over bet"))
	}
	if roll < 0.8 && has(v, game.Call) {
		return decided(m.logger, v, game.Decision{Action: game.Call, Reasoning: "maniac call"})
	}
	return decided(m.logger, v, game.Decision{Action: game.Fold, Reasoning: "maniac fold"})
}
