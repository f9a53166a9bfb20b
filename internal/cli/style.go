package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorGreen = lipgloss.Color("42")
	colorRed   = lipgloss.Color("196")
	colorGrey  = lipgloss.Color("244")
	colorBlue  = lipgloss.Color("33")
)

// palette renders console text, dropping colour entirely when noColor is set.
type palette struct {
	renderer *lipgloss.Renderer
	noColor  bool
}

func newPalette(out io.Writer, noColor bool) palette {
	return palette{renderer: lipgloss.NewRenderer(out), noColor: noColor}
}

func (p palette) stylize(text string, color lipgloss.Color) string {
	if p.noColor {
		return text
	}
	return p.renderer.NewStyle().Foreground(color).Render(text)
}

func (p palette) good(text string) string  { return p.stylize(text, colorGreen) }
func (p palette) bad(text string) string   { return p.stylize(text, colorRed) }
func (p palette) muted(text string) string { return p.stylize(text, colorGrey) }
func (p palette) title(text string) string { return p.stylize(text, colorBlue) }

// truncate shortens question text for table cells.
func truncate(text string, limit int) string {
	normalized := []rune(strings.Join(strings.Fields(text), " "))
	if len(normalized) <= limit {
		return string(normalized)
	}
	return string(normalized[:limit-3]) + "..."
}
