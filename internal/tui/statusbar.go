package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// statusBar renders the bottom line: mapset directory on the left, key hints
// on the right.
type statusBar struct {
	label string
	width int
}

func (s statusBar) render(hints string) string {
	left := styleDim.Render(s.label)
	right := styleDim.Render(hints)
	gap := max(1, s.width-lipgloss.Width(left)-lipgloss.Width(right))
	return styleBar.Width(s.width).Render(fmt.Sprintf("%s%*s%s", left, gap, "", right))
}
