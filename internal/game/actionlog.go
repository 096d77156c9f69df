package game

import (
	"fmt"
	"slices"
	"sync"
)

// ActionLog accumulates human-readable lines describing the tournament in
// the order events happened. It is safe for concurrent readers.
type ActionLog struct {
	mu    sync.RWMutex
	lines []string
}

// Addf appends a formatted line and returns it.
func (l *ActionLog) Addf(format string, args ...any) string {
	line := fmt.Sprintf(format, args...)
	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()
	return line
}

// Len returns the number of lines recorded.
func (l *ActionLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.lines)
}

// Lines returns a copy of every line.
func (l *ActionLog) Lines() []string {
	return l.Since(0)
}

// Since returns a copy of the lines recorded at or after index n.
func (l *ActionLog) Since(n int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n >= len(l.lines) {
		return nil
	}
	return slices.Clone(l.lines[max(n, 0):])
}

func formatAction(name string, res ActionResult, pot int) string {
	var line string
	switch res.Action {
	case Fold:
		line = fmt.Sprintf("%s: folds", name)
	case Check:
		line = fmt.Sprintf("%s: checks", name)
	case Call:
		line = fmt.Sprintf("%s: calls $%d (pot now: $%d)", name, res.Chips, pot)
	case Bet:
		line = fmt.Sprintf("%s: bets $%d (pot now: $%d)", name, res.Total, pot)
	case Raise:
		line = fmt.Sprintf("%s: raises to $%d (pot now: $%d)", name, res.Total, pot)
	default:
		line = fmt.Sprintf("%s: %s", name, res.Action)
	}
	if res.AllIn {
		line += " and is all-in"
	}
	return line
}
