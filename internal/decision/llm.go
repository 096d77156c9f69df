package decision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/poker"
)

// ErrProviderStatus is returned when the completion endpoint answers with a
// non-2xx status.
var ErrProviderStatus = errors.New("provider returned error status")

// DefaultBaseURL is the OpenRouter API root.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

const thinkingFailed = "The AI is having trouble thinking right now."

// LLMConfig configures an LLM decider.
type LLMConfig struct {
	BaseURL   string
	Model     string
	APIKey    string
	Rationale bool // ask for a short thought process before the move
	Timeout   time.Duration
	Referer   string
	Title     string
}

// LLM asks an OpenAI-compatible chat completion endpoint for each move.
type LLM struct {
	cfg    LLMConfig
	client *http.Client
	logger *log.Logger
}

// NewLLM creates an LLM decider. A zero Timeout uses 30 seconds.
func NewLLM(cfg LLMConfig, logger *log.Logger) *LLM {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Title == "" {
		cfg.Title = "pokertourney"
	}
	if logger == nil {
		logger = log.Default()
	}
	return &LLM{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.WithPrefix("llm").With("model", cfg.Model),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Decide implements game.Decider. Rationale failures are logged and
// replaced with a stock line; move failures are returned.
func (l *LLM) Decide(ctx context.Context, v game.View) (game.Decision, error) {
	var thought string
	if l.cfg.Rationale {
		var err error
		thought, err = l.complete(ctx, RationalePrompt(v), false)
		if err != nil {
			if ctx.Err() != nil {
				return game.Decision{}, ctx.Err()
			}
			l.logger.Warn("Rationale request failed", "player", v.Name, "error", err)
			thought = thinkingFailed
		}
		thought = strings.TrimSpace(thought)
	}

	raw, err := l.complete(ctx, MovePrompt(v), true)
	if err != nil {
		return game.Decision{}, fmt.Errorf("move request for %s: %w", v.Name, err)
	}
	d, err := Parse(raw)
	if err != nil {
		return game.Decision{}, err
	}
	if thought != "" {
		d.Reasoning = truncate(thought)
	}
	return d, nil
}

func (l *LLM) complete(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	body := chatRequest{
		Model:    l.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	if wantJSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if l.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+l.cfg.APIKey)
	}
	if l.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", l.cfg.Referer)
	}
	req.Header.Set("X-Title", l.cfg.Title)

	start := time.Now()
	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: %d %s", ErrProviderStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("response contained no choices")
	}
	content := out.Choices[0].Message.Content
	l.logger.Debug("Completion", "duration", time.Since(start), "json", wantJSON, "content", content)
	return content, nil
}

func gameState(v game.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game State:\n")
	fmt.Fprintf(&b, "- Street: %s (hand %d)\n", v.Street, v.Hand)
	fmt.Fprintf(&b, "- Your cards: %s\n", cardList(v.HoleCards))
	community := "None"
	if len(v.Community) > 0 {
		community = cardList(v.Community)
	}
	fmt.Fprintf(&b, "- Community cards: %s\n", community)
	fmt.Fprintf(&b, "- Your chips: %d\n", v.Chips)
	fmt.Fprintf(&b, "- Current pot size: %d\n", v.Pot)
	fmt.Fprintf(&b, "- Current bet to match: %d (You have bet %d)\n", v.TableBet, v.Bet)
	fmt.Fprintf(&b, "- Amount to call: %d\n", v.ToCall)
	fmt.Fprintf(&b, "- Other players:\n")
	for _, o := range v.Opponents {
		fmt.Fprintf(&b, "  - %s (chips: %d, bet: %d, folded: %t, all-in: %t)\n", o.Name, o.Chips, o.Bet, o.Folded, o.AllIn)
	}
	return b.String()
}

// RationalePrompt asks for a one or two sentence thought process.
func RationalePrompt(v game.View) string {
	return fmt.Sprintf("You are the poker player %s. Your persona is: %q.\n%s\n"+
		"Based on this, what is your thought process for your next move? "+
		"Explain your reasoning in one or two concise sentences.", v.Name, v.Persona, gameState(v))
}

// MovePrompt asks for a JSON move restricted to the legal actions.
func MovePrompt(v game.View) string {
	legal := make([]string, 0, len(v.Legal))
	for _, a := range v.Legal {
		legal = append(legal, fmt.Sprintf("%q", a.String()))
	}
	var raise string
	if v.CanRaise() {
		raise = fmt.Sprintf("\nFor %q the amount is the total you want to have bet this street, between %d and %d (all-in).",
			v.RaiseKind().String(), v.MinRaise, v.MaxRaise)
	}
	return fmt.Sprintf("You are a Texas Hold'em poker player. Your persona: %q.\n%s\n"+
		"Available Actions: %s.%s\n"+
		`You MUST respond in JSON format with your chosen action. Example: {"action": "raise", "amount": 50} or {"action": "fold"}`,
		v.Persona, gameState(v), strings.Join(legal, ", "), raise)
}

func cardList(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
