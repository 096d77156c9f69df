package decision

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokertourney/internal/game"
)

// Retrying retries a failing decider a bounded number of times, doubling
// the delay after each failure.
type Retrying struct {
	Provider game.Decider
	Attempts int           // total attempts, at least one
	Backoff  time.Duration // delay before the second attempt
	Clock    quartz.Clock
	Logger   *log.Logger
}

func (r *Retrying) Decide(ctx context.Context, v game.View) (game.Decision, error) {
	attempts := max(r.Attempts, 1)
	delay := r.Backoff

	var lastErr error
	for i := range attempts {
		if i > 0 {
			if err := r.sleep(ctx, delay); err != nil {
				return game.Decision{}, err
			}
			delay *= 2
		}
		d, err := r.Provider.Decide(ctx, v)
		if err == nil {
			return d, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return game.Decision{}, ctx.Err()
		}
		if r.Logger != nil {
			r.Logger.Warn("Decision attempt failed", "player", v.Name, "attempt", i+1, "of", attempts, "error", err)
		}
	}
	return game.Decision{}, fmt.Errorf("%d attempts failed: %w", attempts, lastErr)
}

func (r *Retrying) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	clock := r.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	timer := clock.NewTimer(d, "decision", "backoff")
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
