package game

import (
	"fmt"
	"strings"
)

// ActionKind is one of the five betting actions a player may take.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
)

func (a ActionKind) String() string {
	if a < Fold || a > Raise {
		return "unknown"
	}
	return [...]string{"fold", "check", "call", "bet", "raise"}[a]
}

// ParseActionKind maps an action word onto an ActionKind, ignoring case and
// surrounding whitespace.
func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	default:
		return Fold, fmt.Errorf("unknown action %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so actions serialize as words.
func (a ActionKind) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *ActionKind) UnmarshalText(b []byte) error {
	k, err := ParseActionKind(string(b))
	if err != nil {
		return err
	}
	*a = k
	return nil
}

// Decision is what a decider returns for a turn. For bets and raises Amount is
// the total the player wants to have committed on this street (raise-to).
type Decision struct {
	Action    ActionKind
	Amount    int
	Reasoning string
}

func (d Decision) String() string {
	switch d.Action {
	case Bet, Raise:
		return fmt.Sprintf("%s %d", d.Action, d.Amount)
	default:
		return d.Action.String()
	}
}
