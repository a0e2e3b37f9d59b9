package tui

import "github.com/charmbracelet/lipgloss"

// Ayu theme colors for TUI contexts.
var (
	colorPass = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorWarn = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorFail = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorDim  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorText = lipgloss.AdaptiveColor{Light: "#5c6166", Dark: "#bfbdb6"}
	colorSel  = lipgloss.AdaptiveColor{Light: "#e8e8e8", Dark: "#1a1f29"}
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true)

	styleSelected = lipgloss.NewStyle().
			Background(colorSel).
			Foreground(colorText)

	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSource  = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	styleTarget  = lipgloss.NewStyle().Foreground(colorPass)
	styleSuccess = lipgloss.NewStyle().Foreground(colorPass).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(colorFail).Bold(true)

	styleBar = lipgloss.NewStyle().
			Background(colorSel).
			Foreground(colorDim).
			Padding(0, 1)
)

// roleMark is the two-column marker in front of a difficulty.
func roleMark(isSource, isTarget bool) string {
	switch {
	case isSource:
		return styleSource.Render("S ")
	case isTarget:
		return styleTarget.Render("T ")
	default:
		return "  "
	}
}
