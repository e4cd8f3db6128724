package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	dim      lipgloss.Style
	ok       lipgloss.Style
	errText  lipgloss.Style
	selected lipgloss.Style
}

// newStyles binds the palette to w so colour is dropped when w is not a
// terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("242")),
		ok: r.NewStyle().
			Foreground(lipgloss.Color("42")),
		errText: r.NewStyle().
			Foreground(lipgloss.Color("203")),
		selected: r.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true),
	}
}
