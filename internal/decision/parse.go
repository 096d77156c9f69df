// Package decision turns the output of external decision makers into
// game decisions. Every decision still passes through the betting round's
// sanitizer before it reaches the table.
package decision

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/pokertourney/internal/game"
)

// ErrUnparseable is returned when a response contains neither a decision
// object nor an affirmative action keyword.
var ErrUnparseable = errors.New("unparseable decision")

var (
	keyword     = regexp.MustCompile(`(?i)\b(fold|check|call|bet|raise)\b`)
	negated     = regexp.MustCompile(`(?i)\b(?:not|no|never|don['’]?t|won['’]?t|wouldn['’]?t|shouldn['’]?t|can['’]?t|cannot|instead of|rather than)(?:\s+\S+){0,3}\s*$`)
	integer     = regexp.MustCompile(`\d+`)
	clauseBreak = ".,;:!?\n"
)

const maxReasoning = 280

type wireDecision struct {
	Action      string   `json:"action"`
	Amount      *float64 `json:"amount"`
	RaiseAmount *float64 `json:"raise_amount"`
	Reasoning   string   `json:"reasoning"`
}

// Parse decodes a raw response. A JSON object, bare or inside a code fence,
// is tried first; an object naming an unknown action folds. Otherwise the
// earliest action keyword in the text wins, skipping keywords that are
// negated within their clause ("won't fold") or asked as a question
// ("Raise?"). The first integer after a bet or raise keyword is the
// raise-to amount.
func Parse(raw string) (game.Decision, error) {
	if d, ok := parseJSON(raw); ok {
		return d, nil
	}
	return scanKeywords(raw)
}

func parseJSON(raw string) (game.Decision, bool) {
	obj := extractJSONObject(raw)
	if obj == "" {
		return game.Decision{}, false
	}
	var w wireDecision
	if err := json.Unmarshal([]byte(obj), &w); err != nil || w.Action == "" {
		return game.Decision{}, false
	}

	action, err := game.ParseActionKind(w.Action)
	if err != nil {
		return game.Decision{Action: game.Fold, Reasoning: fmt.Sprintf("invalid action %q", w.Action)}, true
	}
	d := game.Decision{Action: action, Reasoning: truncate(strings.TrimSpace(w.Reasoning))}
	amount := w.Amount
	if amount == nil {
		amount = w.RaiseAmount
	}
	if amount != nil && *amount > 0 && (action == game.Bet || action == game.Raise) {
		d.Amount = int(math.Round(*amount))
	}
	return d, true
}

func scanKeywords(raw string) (game.Decision, error) {
	prev := 0
	for _, m := range keyword.FindAllStringSubmatchIndex(raw, -1) {
		start, end := m[0], m[1]
		// A negation only reaches back to the clause break or the previous
		// keyword, whichever is closer.
		from := max(prev, strings.LastIndexAny(raw[:start], clauseBreak)+1)
		prev = end
		if strings.HasPrefix(strings.TrimLeft(raw[end:], " \t"), "?") {
			continue
		}
		if negated.MatchString(raw[from:start]) {
			continue
		}

		action, err := game.ParseActionKind(raw[m[2]:m[3]])
		if err != nil {
			continue
		}
		d := game.Decision{Action: action, Reasoning: truncate(strings.TrimSpace(raw))}
		if action == game.Bet || action == game.Raise {
			d.Amount = amountNear(raw, end)
		}
		return d, nil
	}
	return game.Decision{}, fmt.Errorf("%w: %q", ErrUnparseable, truncate(raw))
}

// amountNear prefers the first integer after pos and falls back to the first
// one anywhere in s.
func amountNear(s string, pos int) int {
	digits := integer.FindString(s[pos:])
	if digits == "" {
		digits = integer.FindString(s)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// extractJSONObject strips code fences and returns the text between the
// first '{' and the last '}'.
func extractJSONObject(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(s, "```")

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(s[start : end+1])
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxReasoning {
		return s
	}
	return string(r[:maxReasoning]) + "…"
}
