package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const defaultWidth = 80

var (
	colourAccent = lipgloss.Color("#A6E3A1")
	colourMuted  = lipgloss.Color("#6C7086")
	colourWarn   = lipgloss.Color("#F9E2AF")

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colourAccent)
	mutedStyle   = lipgloss.NewStyle().Foreground(colourMuted)
	warnStyle    = lipgloss.NewStyle().Foreground(colourWarn)
	valueStyle   = lipgloss.NewStyle().Bold(true)
)

// terminalWidth returns the column count of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
