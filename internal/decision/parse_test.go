package decision

import (
	"errors"
	"testing"

	"github.com/lox/pokertourney/internal/game"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		action game.ActionKind
		amount int
	}{
		{"json fold", `{"action": "FOLD"}`, game.Fold, 0},
		{"json raise", `{"action": "raise", "amount": 120}`, game.Raise, 120},
		{"json float amount", `{"action": "bet", "amount": 49.6}`, game.Bet, 50},
		{"json raise_amount key", `{"action": "raise", "raise_amount": 300}`, game.Raise, 300},
		{"json amount ignored on call", `{"action": "call", "amount": 80}`, game.Call, 0},
		{"json raise without amount", `{"action": "raise"}`, game.Raise, 0},
		{"json negative amount", `{"action": "bet", "amount": -5}`, game.Bet, 0},
		{"json unknown action folds", `{"action": "shove", "amount": 500}`, game.Fold, 0},
		{"code fence", "```json\n{\"action\": \"check\"}\n```", game.Check, 0},
		{"json wrapped in prose", `Sure! {"action": "call"} good luck`, game.Call, 0},
		{"keyword fold", "I want to fold this hand", game.Fold, 0},
		{"keyword raise amount", "I will raise to 100 chips", game.Raise, 100},
		{"keyword bet amount", "Bet 40 here", game.Bet, 40},
		{"keyword raise no amount", "raise it up", game.Raise, 0},
		{"question is not a decision", "Raise? No, I fold.", game.Fold, 0},
		{"earliest keyword wins", "I'll call... actually check", game.Call, 0},
		{"call before raise", "call or raise 200", game.Call, 0},
		{"negated fold skipped", "I won't fold here, I call.", game.Call, 0},
		{"negated fold with curly apostrophe", "I don’t fold, I check", game.Check, 0},
		{"rather than fold", "Rather than fold I will call", game.Call, 0},
		{"gerunds are not keywords", "Checking would be weak; I'll raise to 120 instead of folding.", game.Raise, 120},
		{"bet before negated fold", "I'd bet 60, no reason to fold.", game.Bet, 60},
		{"amount after keyword", "With 2 pair I raise to 300", game.Raise, 300},
		{"amount before keyword", "300 is my raise", game.Raise, 300},
		{"words containing bet", "Between us, a better line is to check", game.Check, 0},
		{"negation stays in its clause", "Not sure, fold.", game.Fold, 0},
		{"broken json falls back", `{"action": "raise", "amount": }`, game.Raise, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.raw, err)
			}
			if d.Action != tt.action || d.Amount != tt.amount {
				t.Errorf("Parse(%q) = %s %d, want %s %d", tt.raw, d.Action, d.Amount, tt.action, tt.amount)
			}
		})
	}
}

func TestParseUnparseable(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{
		"",
		"   ",
		"I'm not sure what to do",
		`{"move": "x"}`,
		"this board is better for me",
		"I won't fold.",
		"Call? Raise?",
	} {
		if _, err := Parse(raw); !errors.Is(err, ErrUnparseable) {
			t.Errorf("Parse(%q) error = %v, want ErrUnparseable", raw, err)
		}
	}
}

func TestParseKeepsReasoning(t *testing.T) {
	t.Parallel()
	d, err := Parse(`{"action": "call", "reasoning": "pot odds are fine"}`)
	if err != nil {
		t.Fatal(err)
	}
	if d.Reasoning != "pot odds are fine" {
		t.Errorf("reasoning = %q", d.Reasoning)
	}
}

func TestScriptedReplaysThenExhausts(t *testing.T) {
	t.Parallel()
	s := NewScripted(`{"action": "check"}`, "raise 60")

	d, err := s.Decide(t.Context(), game.View{})
	if err != nil || d.Action != game.Check {
		t.Fatalf("first = %v, %v", d, err)
	}
	d, err = s.Decide(t.Context(), game.View{})
	if err != nil || d.Action != game.Raise || d.Amount != 60 {
		t.Fatalf("second = %v, %v", d, err)
	}
	if s.Remaining() != 0 {
		t.Fatalf("remaining = %d", s.Remaining())
	}
	if _, err := s.Decide(t.Context(), game.View{}); !errors.Is(err, ErrScriptExhausted) {
		t.Fatalf("third error = %v", err)
	}
}
