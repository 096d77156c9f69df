// Package bot provides built-in deciders for offline play and simulation.
// Every bot answers instantly from the View alone and never errors.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/game"
)

// Strategy names accepted by New.
const (
	StrategyCallingStation = "calling-station"
	StrategyAggressive     = "aggressive"
	StrategyRandom         = "random"
	StrategyFolder         = "folder"
	StrategyTight          = "tight"
)

type factory func(rng *rand.Rand, logger *log.Logger) game.Decider

var strategies = map[string]factory{
	StrategyCallingStation: func(_ *rand.Rand, l *log.Logger) game.Decider { return NewCallBot(l) },
	StrategyAggressive:     func(r *rand.Rand, l *log.Logger) game.Decider { return NewManiacBot(r, l) },
	StrategyRandom:         func(r *rand.Rand, l *log.Logger) game.Decider { return NewRandBot(r, l) },
	StrategyFolder:         func(_ *rand.Rand, l *log.Logger) game.Decider { return NewFoldBot(l) },
	StrategyTight:          func(r *rand.Rand, l *log.Logger) game.Decider { return NewTAGBot(r, l) },
}

var aliases = map[string]string{
	"call":    StrategyCallingStation,
	"calling": StrategyCallingStation,
	"station": StrategyCallingStation,
	"maniac":  StrategyAggressive,
	"rand":    StrategyRandom,
	"fold":    StrategyFolder,
	"tag":     StrategyTight,
}

// Strategies lists the available strategy names in sorted order.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New resolves a strategy name to a bot. The rng must not be shared with
// another goroutine.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (game.Decider, error) {
	name := strings.ToLower(strings.TrimSpace(strategy))
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	f, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown bot strategy %q (available: %s)", strategy, strings.Join(Strategies(), ", "))
	}
	if rng == nil {
		panic("rng is required for bot creation")
	}
	if logger == nil {
		logger = log.Default()
	}
	return f(rng, logger.WithPrefix("bot").With("strategy", name)), nil
}

// passive returns check when it is free and call otherwise.
func passive(v game.View, reason string) game.Decision {
	if v.CanCheck() {
		return game.Decision{Action: game.Check, Reasoning: reason}
	}
	return game.Decision{Action: game.Call, Reasoning: reason}
}

func has(v game.View, a game.ActionKind) bool {
	return slices.Contains(v.Legal, a)
}

// raiseTo builds a bet or raise clamped to the legal range.
func raiseTo(v game.View, amount int, reason string) game.Decision {
	amount = max(min(amount, v.MaxRaise), v.MinRaise)
	return game.Decision{Action: v.RaiseKind(), Amount: amount, Reasoning: reason}
}

func decided(logger *log.Logger, v game.View, d game.Decision) (game.Decision, error) {
	logger.Debug("Bot decision", "player", v.Name, "street", v.Street, "decision", d, "reason", d.Reasoning)
	return d, nil
}
