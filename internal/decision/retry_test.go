package decision

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/internal/game"
)

var errFlaky = errors.New("flaky provider")

// flaky fails the first n calls and then checks.
func flaky(n int32, calls *atomic.Int32) game.Decider {
	return game.DeciderFunc(func(context.Context, game.View) (game.Decision, error) {
		if calls.Add(1) <= n {
			return game.Decision{}, errFlaky
		}
		return game.Decision{Action: game.Check}, nil
	})
}

func waitForTimer(t *testing.T, mClock *quartz.Mock, want time.Duration) {
	t.Helper()
	require.Eventually(t, func() bool {
		d, ok := mClock.Peek()
		return ok && d == want
	}, time.Second, time.Millisecond, "timer for %s never armed", want)
}

func TestRetryingBacksOffExponentially(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	var calls atomic.Int32
	r := &Retrying{Provider: flaky(2, &calls), Attempts: 3, Backoff: 100 * time.Millisecond, Clock: mClock, Logger: quietLogger()}

	type result struct {
		d   game.Decision
		err error
	}
	done := make(chan result, 1)
	go func() {
		d, err := r.Decide(ctx, game.View{Name: "Alice"})
		done <- result{d, err}
	}()

	waitForTimer(t, mClock, 100*time.Millisecond)
	mClock.Advance(100 * time.Millisecond).MustWait(ctx)
	waitForTimer(t, mClock, 200*time.Millisecond)
	mClock.Advance(200 * time.Millisecond).MustWait(ctx)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, game.Check, res.d.Action)
	assert.EqualValues(t, 3, calls.Load())
}

func TestRetryingGivesUp(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	r := &Retrying{Provider: flaky(10, &calls), Attempts: 3}

	_, err := r.Decide(t.Context(), game.View{})
	require.ErrorIs(t, err, errFlaky)
	assert.Contains(t, err.Error(), "3 attempts failed")
	assert.EqualValues(t, 3, calls.Load())
}

func TestRetryingAtLeastOnce(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	r := &Retrying{Provider: flaky(0, &calls)}

	d, err := r.Decide(t.Context(), game.View{})
	require.NoError(t, err)
	assert.Equal(t, game.Check, d.Action)
	assert.EqualValues(t, 1, calls.Load())
}

func TestRetryingStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(t.Context())

	mClock := quartz.NewMock(t)
	var calls atomic.Int32
	r := &Retrying{Provider: flaky(10, &calls), Attempts: 5, Backoff: time.Second, Clock: mClock}

	done := make(chan error, 1)
	go func() {
		_, err := r.Decide(ctx, game.View{})
		done <- err
	}()

	waitForTimer(t, mClock, time.Second)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.EqualValues(t, 1, calls.Load())
}
