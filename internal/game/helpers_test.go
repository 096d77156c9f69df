package game

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/randutil"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// always returns a decider that answers every turn with the same decision.
func always(action ActionKind, amount int) Decider {
	return DeciderFunc(func(context.Context, View) (Decision, error) {
		return Decision{Action: action, Amount: amount}, nil
	})
}

// passive checks when it can and calls otherwise.
func passive() Decider {
	return DeciderFunc(func(_ context.Context, v View) (Decision, error) {
		if v.CanCheck() {
			return Decision{Action: Check}, nil
		}
		return Decision{Action: Call}, nil
	})
}

// script replays decisions in order and then plays passively.
type script struct {
	mu        sync.Mutex
	decisions []Decision
	views     []View
}

func (s *script) Decide(_ context.Context, v View) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = append(s.views, v)
	if len(s.decisions) == 0 {
		if v.CanCheck() {
			return Decision{Action: Check}, nil
		}
		return Decision{Action: Call}, nil
	}
	d := s.decisions[0]
	s.decisions = s.decisions[1:]
	return d, nil
}

func newTestTournament(t *testing.T, seats []Seat, opts ...TournamentOption) *Tournament {
	t.Helper()
	base := []TournamentOption{
		WithRNG(randutil.New(42)),
		WithLogger(quietLogger()),
		WithID("test-tournament"),
	}
	return NewTournament(seats, append(base, opts...)...)
}

func seatsWith(deciders ...Decider) []Seat {
	names := []string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank", "Grace", "Heidi", "Ivan", "Judy"}
	seats := make([]Seat, len(deciders))
	for i, d := range deciders {
		seats[i] = Seat{Name: names[i], Decider: d}
	}
	return seats
}

func totalChips(t *Tournament) int {
	total := t.Undistributed + t.pots.Total()
	for _, p := range t.players {
		total += p.Chips + p.Bet
	}
	return total
}
