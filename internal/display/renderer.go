// Package display renders tournament snapshots to a terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/poker"
)

// Renderer prints action-log lines as they arrive plus a table summary when
// a hand starts or ends. It implements game.Observer.
type Renderer struct {
	mu        sync.Mutex
	w         io.Writer
	lip       *lipgloss.Renderer
	st        styles
	holeCards bool
	quietLog  bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColor forces colour on or off. Off renders plain ASCII.
func WithColor(enabled bool) Option {
	return func(r *Renderer) {
		if enabled {
			r.lip.SetColorProfile(termenv.TrueColor)
		} else {
			r.lip.SetColorProfile(termenv.Ascii)
		}
	}
}

// WithHoleCards controls whether hole cards are shown before showdown.
func WithHoleCards(show bool) Option {
	return func(r *Renderer) { r.holeCards = show }
}

// WithSummariesOnly hides the per-action log and prints only hand summaries.
func WithSummariesOnly() Option {
	return func(r *Renderer) { r.quietLog = true }
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{w: w, lip: lipgloss.NewRenderer(w), holeCards: true}
	for _, opt := range opts {
		opt(r)
	}
	r.st = newStyles(r.lip)
	return r
}

func (r *Renderer) Observe(s game.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.holeCards {
		s = s.Masked()
	}
	if !r.quietLog {
		for _, line := range s.Events {
			fmt.Fprintln(r.w, r.styleLine(line))
		}
	}

	switch s.Kind {
	case game.HandStarted:
		if !r.quietLog {
			fmt.Fprintln(r.w, r.table(s))
		}
	case game.HandEnded:
		fmt.Fprintln(r.w, r.chipCounts(s))
	case game.TournamentEnded:
		fmt.Fprintln(r.w, r.banner(s))
	}
}

func (r *Renderer) styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "--- Hand #"):
		return "\n" + r.st.header.Render(strings.Trim(line, "- "))
	case strings.Contains(line, " thinks: "):
		return r.st.thinking.Render(line)
	case strings.HasPrefix(line, "Dealing the"), strings.HasPrefix(line, "Running out"), line == "Showdown!":
		return r.st.street.Render(line)
	case strings.Contains(line, " wins the tournament"):
		return r.st.success.Render(line)
	case strings.Contains(line, " wins "):
		return r.st.success.Render(line)
	case strings.HasSuffix(line, "has been eliminated."):
		return r.st.errorText.Render(line)
	case strings.Contains(line, "undistributed"), strings.HasPrefix(line, "Hand limit"):
		return r.st.warning.Render(line)
	case strings.HasSuffix(line, "'s turn to act."), line == "Betting round concluded.":
		return r.st.info.Render(line)
	}
	return r.st.log.Render(line)
}

func (r *Renderer) table(s game.Snapshot) string {
	var b strings.Builder
	for _, p := range s.Players {
		if p.Eliminated {
			continue
		}
		var marker string
		switch p.Seat {
		case s.DealerSeat:
			marker = " BTN"
		case s.SmallBlindSeat:
			marker = " SB"
		case s.BigBlindSeat:
			marker = " BB"
		}
		line := fmt.Sprintf("Seat %d: %-16s $%-6d%-4s", p.Seat+1, p.Name, p.Chips+p.Bet, marker)
		if len(p.HoleCards) > 0 {
			line += " " + r.cards(p.HoleCards)
		}
		fmt.Fprintln(&b, r.st.player.Render(line))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Renderer) chipCounts(s game.Snapshot) string {
	var b strings.Builder
	if len(s.Community) > 0 {
		fmt.Fprintf(&b, "Final Board: %s\n", r.cards(s.Community))
	}
	fmt.Fprintln(&b, "Chip Counts:")
	for _, p := range s.Players {
		status := ""
		if p.Eliminated {
			status = r.st.info.Render(" (out)")
		}
		fmt.Fprintf(&b, "  %-16s $%d%s\n", p.Name, p.Chips, status)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Renderer) banner(s game.Snapshot) string {
	if s.Winner < 0 || s.Winner >= len(s.Players) {
		return r.st.header.Render("Tournament over")
	}
	w := s.Players[s.Winner]
	return "\n" + r.st.header.Render(fmt.Sprintf("%s wins after %d hands with $%d", w.Name, s.HandNumber, w.Chips))
}

func (r *Renderer) cards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := r.st.blackCard
		if c.Suit().IsRed() {
			style = r.st.redCard
		}
		parts[i] = style.Render(c.Symbol())
	}
	return strings.Join(parts, " ")
}
