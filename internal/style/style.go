// Package style holds the terminal styling shared by the mt commands and the
// TUI. Colors follow the Ayu palette and adapt to light and dark terminals.
package style

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julianknutsen/mapping-tools/internal/beatmap"
)

var (
	colorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
	colorPurple = lipgloss.AdaptiveColor{Light: "#a37acc", Dark: "#d2a6ff"}
)

// Status icons.
const (
	IconPass = "✓"
	IconSkip = "–"
)

var (
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Bold    lipgloss.Style

	// Per-addition accents for hitsound listings.
	Whistle lipgloss.Style
	Finish  lipgloss.Style
	Clap    lipgloss.Style
)

func init() { colored() }

func colored() {
	Success = lipgloss.NewStyle().Foreground(colorPass).Bold(true)
	Warning = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	Error = lipgloss.NewStyle().Foreground(colorFail).Bold(true)
	Info = lipgloss.NewStyle().Foreground(colorAccent)
	Dim = lipgloss.NewStyle().Foreground(colorMuted)
	Bold = lipgloss.NewStyle().Bold(true)
	Whistle = lipgloss.NewStyle().Foreground(colorAccent)
	Finish = lipgloss.NewStyle().Foreground(colorWarn)
	Clap = lipgloss.NewStyle().Foreground(colorPurple)
}

func plain() {
	for _, s := range []*lipgloss.Style{&Success, &Warning, &Error, &Info, &Dim, &Bold, &Whistle, &Finish, &Clap} {
		*s = lipgloss.NewStyle()
	}
}

// SetColorMode applies the --color flag: "always", "never" or "auto".
// Auto leaves the decision to lipgloss, which honors NO_COLOR.
func SetColorMode(mode string) error {
	switch mode {
	case "never":
		_ = os.Setenv("NO_COLOR", "1")
		plain()
	case "always":
		_ = os.Unsetenv("NO_COLOR")
		_ = os.Setenv("CLICOLOR_FORCE", "1")
		colored()
	case "auto", "":
	default:
		return fmt.Errorf("invalid --color %q: must be always, auto or never", mode)
	}
	return nil
}

// Additions renders a hitsound bit set, coloring each addition.
func Additions(a beatmap.Additions) string {
	var parts []string
	if a.Has(beatmap.AdditionNormal) {
		parts = append(parts, "normal")
	}
	if a.Has(beatmap.AdditionWhistle) {
		parts = append(parts, Whistle.Render("whistle"))
	}
	if a.Has(beatmap.AdditionFinish) {
		parts = append(parts, Finish.Render("finish"))
	}
	if a.Has(beatmap.AdditionClap) {
		parts = append(parts, Clap.Render("clap"))
	}
	if len(parts) == 0 {
		return Dim.Render("-")
	}
	return strings.Join(parts, "+")
}

// Timestamp formats a time in ms the way the osu! editor shows it,
// mm:ss:mmm. Fractions of a millisecond are truncated.
func Timestamp(ms float64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	t := int64(ms)
	return fmt.Sprintf("%s%02d:%02d:%03d", sign, t/60000, t/1000%60, t%1000)
}
