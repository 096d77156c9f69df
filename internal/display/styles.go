package display

import "github.com/charmbracelet/lipgloss"

// styles are bound to a renderer so colour can be switched off per output.
type styles struct {
	header    lipgloss.Style
	log       lipgloss.Style
	thinking  lipgloss.Style
	street    lipgloss.Style
	redCard   lipgloss.Style
	blackCard lipgloss.Style
	player    lipgloss.Style
	success   lipgloss.Style
	errorText lipgloss.Style
	warning   lipgloss.Style
	info      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		log: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		thinking: r.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true),
		street: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		redCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		blackCard: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).
			Bold(true),
		player: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		errorText: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
