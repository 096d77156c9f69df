package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/game"
)

// FoldBot always folds, or checks when that is free.
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	if v.CanCheck() {
		return decided(f.logger, v, game.Decision{Action: game.Check, Reasoning: "fold-bot checking"})
	}
	return decided(f.logger, v, game.Decision{Action: game.Fold, Reasoning: "fold-bot folding"})
}
