package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/timetrack/internal/accounting"
	"github.com/alexanderramin/timetrack/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Durations renders seconds according to the display settings.
type Durations struct {
	Format        domain.TimeFormat
	DecimalPlaces int
	IncludeUnit   bool
}

// DurationsFor builds a Durations from the accounting settings.
func DurationsFor(s domain.Settings) Durations {
	return Durations{Format: s.TimeDisplayFormat, DecimalPlaces: s.DecimalPlaces}
}

func (d Durations) Render(seconds int64) string {
	places := d.DecimalPlaces
	return accounting.FormatSeconds(seconds, d.Format, accounting.FormatOptions{
		IncludeUnit:   d.IncludeUnit,
		DecimalPlaces: &places,
	})
}

// Signed renders seconds with an explicit "+" for surpluses and the signed
// color.
func (d Durations) Signed(seconds int64) string {
	text := d.Render(seconds)
	if seconds > 0 {
		text = "+" + text
	}
	return SignedStyle(seconds).Render(text)
}

// ClockTime renders an instant as HH:MM in UTC, or a dash when nil.
func ClockTime(t *time.Time) string {
	if t == nil {
		return StyleDim.Render("—")
	}
	return t.UTC().Format("15:04")
}

// Truncate shortens s to at most n visible runes, ending in "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// Tags joins tags for a table cell.
func Tags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return StyleBlue.Render("#" + strings.Join(tags, " #"))
}
