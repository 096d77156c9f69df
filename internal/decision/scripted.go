package decision

import (
	"context"
	"errors"
	"sync"

	"github.com/lox/pokertourney/internal/game"
)

// ErrScriptExhausted is returned once every scripted response has been used.
var ErrScriptExhausted = errors.New("script exhausted")

// Scripted replays canned raw responses through Parse, one per turn.
type Scripted struct {
	mu        sync.Mutex
	responses []string
}

func NewScripted(responses ...string) *Scripted {
	return &Scripted{responses: responses}
}

func (s *Scripted) Decide(_ context.Context, _ game.View) (game.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.responses) == 0 {
		return game.Decision{}, ErrScriptExhausted
	}
	raw := s.responses[0]
	s.responses = s.responses[1:]
	return Parse(raw)
}

// Remaining reports how many responses have not been replayed.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.responses)
}
