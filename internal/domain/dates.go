package domain

import (
	"fmt"
	"time"
)

// DayLayout is the canonical calendar-day format. Lexical order of strings in
// this layout equals chronological order.
const DayLayout = "2006-01-02"

// ParseDay parses a canonical YYYY-MM-DD day as midnight UTC.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(DayLayout, day)
	if err != nil || t.Format(DayLayout) != day {
		return time.Time{}, fmt.Errorf("invalid day %q (want YYYY-MM-DD): %w", day, ErrValidation)
	}
	return t, nil
}

// DayOf returns the UTC calendar day of an instant.
func DayOf(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// DayBounds returns the UTC [start, end) instants of a day.
func DayBounds(day string) (time.Time, time.Time, error) {
	start, err := ParseDay(day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

// DaysBetween lists every day from `from` to `to` inclusive.
func DaysBetween(from, to string) ([]string, error) {
	start, err := ParseDay(from)
	if err != nil {
		return nil, err
	}
	end, err := ParseDay(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("range %s..%s is reversed: %w", from, to, ErrValidation)
	}
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DayLayout))
	}
	return days, nil
}

// IsWeekendDay reports whether the day is a Saturday or Sunday.
func IsWeekendDay(day string) bool {
	t, err := ParseDay(day)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
