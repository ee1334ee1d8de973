package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// instantLayouts are tried in order. Layouts without a date are placed on
// the current UTC day.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

var clockLayouts = []string{"15:04:05", "15:04"}

// parseInstant reads a point in time given on the command line. All forms
// without an explicit offset are UTC.
func parseInstant(value string, now time.Time) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	now = now.UTC()
	for _, layout := range clockLayouts {
		if c, err := time.Parse(layout, value); err == nil {
			return time.Date(now.Year(), now.Month(), now.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use HH:MM, YYYY-MM-DD HH:MM or RFC3339): %w", value, domain.ErrValidation)
}

func parseOptionalInstant(value string, now time.Time) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseInstant(value, now)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// dayOrToday validates day, defaulting to today when empty.
func dayOrToday(day string, app *App) (string, error) {
	if day == "" {
		return app.today(), nil
	}
	if _, err := domain.ParseDay(day); err != nil {
		return "", err
	}
	return day, nil
}

// changed returns v when the named flag was set explicitly, nil otherwise.
func changed[T any](flags *pflag.FlagSet, name string, v *T) *T {
	if flags.Changed(name) {
		return v
	}
	return nil
}
