package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/game"
)

// CallBot is a calling station. It checks or calls every street, gives up
// on the river against an oversized bet and shoves when short.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	// fold the river to a bet bigger than 80% of the pot before it
	if v.Street == game.River && v.ToCall > 0 {
		before := v.Pot - v.ToCall
		if before > 0 && float64(v.ToCall)/float64(before) > 0.8 {
			return decided(c.logger, v, game.Decision{Action: game.Fold, Reasoning: "folding river to large bet"})
		}
	}

	if v.BigBlind > 0 && v.Chips < 10*v.BigBlind && v.CanRaise() && v.TableBet <= v.BigBlind {
		return decided(c.logger, v, raiseTo(v, v.MaxRaise, "shoving with short stack"))
	}

	if v.CanCheck() {
		return decided(c.logger, v, game.Decision{Action: game.Check, Reasoning: "call-bot checking"})
	}
	if has(v, game.Call) {
		return decided(c.logger, v, game.Decision{Action: game.Call, Reasoning: "call-bot calling"})
	}
	return decided(c.logger, v, game.Decision{Action: game.Fold, Reasoning: "call-bot forced fold"})
}
