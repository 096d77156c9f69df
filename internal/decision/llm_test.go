package decision

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/poker"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func testView() game.View {
	return game.View{
		Name:      "Cowboy Clint",
		Persona:   "Raises with any pair.",
		HoleCards: poker.MustParseCards("9s 9d"),
		Chips:     980,
		Bet:       20,
		Pot:       30,
		TableBet:  20,
		MinRaise:  40,
		MaxRaise:  1000,
		BigBlind:  20,
		Street:    game.PreFlop,
		Opponents: []game.OpponentView{{Name: "Bob", Chips: 990, Bet: 10}},
		Legal:     []game.ActionKind{game.Fold, game.Check, game.Raise},
		Hand:      1,
	}
}

type fakeCompletions struct {
	mu       sync.Mutex
	requests []chatRequest
	headers  []http.Header
	move     string
	thought  string
	status   int
}

func (f *fakeCompletions) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/chat/completions" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.headers = append(f.headers, r.Header.Clone())
	status := f.status
	f.mu.Unlock()

	if status != 0 {
		http.Error(w, `{"error":"rate limited"}`, status)
		return
	}
	content := f.thought
	if req.ResponseFormat != nil {
		content = f.move
	}
	resp := map[string]any{
		"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func TestLLMDecideSendsPromptAndParsesMove(t *testing.T) {
	t.Parallel()
	fake := &fakeCompletions{move: `{"action": "raise", "amount": 60}`}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	llm := NewLLM(LLMConfig{BaseURL: srv.URL + "/", Model: "test/model", APIKey: "sk-test"}, quietLogger())
	d, err := llm.Decide(t.Context(), testView())
	require.NoError(t, err)
	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, game.Raise, d.Action)
	assert.Equal(t, 60, d.Amount)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, "test/model", req.Model)
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, "json_object", req.ResponseFormat.Type)
	prompt := req.Messages[0].Content
	assert.Contains(t, prompt, "Raises with any pair.")
	assert.Contains(t, prompt, "9s, 9d")
	assert.Contains(t, prompt, "Bob (chips: 990")
	assert.Contains(t, prompt, `"fold", "check", "raise"`)
	assert.Contains(t, prompt, "between 40 and 1000")

	assert.Equal(t, "Bearer sk-test", fake.headers[0].Get("Authorization"))
	assert.Equal(t, "pokertourney", fake.headers[0].Get("X-Title"))
}

func TestLLMRationaleBecomesReasoning(t *testing.T) {
	t.Parallel()
	fake := &fakeCompletions{move: "```json\n{\"action\": \"check\"}\n```", thought: "  Pocket nines, I'll see a flop.  "}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	llm := NewLLM(LLMConfig{BaseURL: srv.URL, Model: "m", Rationale: true}, quietLogger())
	d, err := llm.Decide(t.Context(), testView())
	require.NoError(t, err)
	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, game.Check, d.Action)
	assert.Equal(t, "Pocket nines, I'll see a flop.", d.Reasoning)

	require.Len(t, fake.requests, 2)
	assert.Nil(t, fake.requests[0].ResponseFormat, "rationale request is free text")
	assert.True(t, strings.Contains(fake.requests[0].Messages[0].Content, "thought process"))
	assert.Empty(t, fake.headers[0].Get("Authorization"))
}

func TestLLMErrorStatus(t *testing.T) {
	t.Parallel()
	fake := &fakeCompletions{status: http.StatusTooManyRequests}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	llm := NewLLM(LLMConfig{BaseURL: srv.URL, Model: "m"}, quietLogger())
	_, err := llm.Decide(t.Context(), testView())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProviderStatus))
	assert.Contains(t, err.Error(), "429")
}

func TestLLMUnparseableMove(t *testing.T) {
	t.Parallel()
	fake := &fakeCompletions{move: "no idea"}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	llm := NewLLM(LLMConfig{BaseURL: srv.URL, Model: "m"}, quietLogger())
	_, err := llm.Decide(t.Context(), testView())
	assert.ErrorIs(t, err, ErrUnparseable)
}
