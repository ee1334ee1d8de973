package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DisableColor replaces every style with an unstyled one. Used when stdout
// is not a terminal.
func DisableColor() {
	plain := lipgloss.NewStyle()
	StyleGreen, StyleYellow, StyleRed, StyleBlue = plain, plain, plain, plain
	StyleDim, StyleFg, StyleHeader, StyleBold = plain, plain, plain, plain
}

// StatusStyle returns the style for a session status.
func StatusStyle(s domain.SessionStatus) lipgloss.Style {
	switch s {
	case domain.SessionActive:
		return StyleGreen
	case domain.SessionPaused:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored marker such as "● ACTIVE".
func StatusIndicator(s domain.SessionStatus) string {
	return StatusStyle(s).Render("● " + strings.ToUpper(string(s)))
}

// SignedStyle colors a signed duration: green when positive, red when negative.
func SignedStyle(seconds int64) lipgloss.Style {
	switch {
	case seconds > 0:
		return StyleGreen
	case seconds < 0:
		return StyleRed
	default:
		return StyleFg
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
