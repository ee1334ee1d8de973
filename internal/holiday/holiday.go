// Package holiday reads public-holiday calendars in iCalendar format.
package holiday

import (
	"fmt"
	"io"
	"sort"
	"time"

	ical "github.com/emersion/go-ical"

	"github.com/alexanderramin/timetrack/internal/domain"
)

const (
	// maxEventDays bounds how far a single event is expanded.
	maxEventDays = 366
	// maxOccurrences bounds how many occurrences one recurring event yields.
	maxOccurrences = 366
	// horizonYears is how many years past the current one Parse expands
	// recurring events.
	horizonYears = 5
)

// Parse reads a calendar with ParseUntil, expanding recurring events through
// the end of the year horizonYears after the current one.
func Parse(r io.Reader) ([]domain.Holiday, error) {
	year := time.Now().UTC().Year() + horizonYears
	return ParseUntil(r, time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC))
}

// ParseUntil reads every VEVENT of an iCalendar stream and returns one holiday
// per covered day, sorted by day. Multi-day events expand per day with the end
// treated as exclusive, as all-day events encode it. Events with an RRULE
// yield every occurrence starting before until, minus EXDATEs. When two events
// share a day the first one wins. Events without a usable start are skipped.
func ParseUntil(r io.Reader, until time.Time) ([]domain.Holiday, error) {
	dec := ical.NewDecoder(r)
	byDay := make(map[string]domain.Holiday)

	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing calendar: %w", err)
		}

		for _, component := range cal.Children {
			if component.Name != ical.CompEvent {
				continue
			}
			event := ical.Event{Component: component}

			start, err := event.DateTimeStart(time.UTC)
			if err != nil || start.IsZero() {
				continue
			}
			end, err := event.DateTimeEnd(time.UTC)
			if err != nil {
				continue
			}
			name, _ := event.Props.Text(ical.PropSummary)
			if name == "" {
				name = "Holiday"
			}

			set, err := event.RecurrenceSet(time.UTC)
			if err != nil {
				continue
			}
			occurrences := []time.Time{start}
			if set != nil {
				occurrences = expand(set.Iterator(), until)
			}

			span := end.Sub(start)
			for _, occ := range occurrences {
				for _, day := range coveredDays(occ, occ.Add(span)) {
					if _, seen := byDay[day]; seen {
						continue
					}
					byDay[day] = domain.Holiday{Day: day, Name: name}
				}
			}
		}
	}

	out := make([]domain.Holiday, 0, len(byDay))
	for _, h := range byDay {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// expand drains a recurrence iterator up to until, capped at maxOccurrences.
func expand(next func() (time.Time, bool), until time.Time) []time.Time {
	var out []time.Time
	for len(out) < maxOccurrences {
		t, ok := next()
		if !ok || !t.Before(until) {
			break
		}
		out = append(out, t.UTC())
	}
	return out
}

// coveredDays lists the calendar days in [start, end). An event ending on or
// before its start covers its start day only.
func coveredDays(start, end time.Time) []string {
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	days := []string{first.Format(domain.DayLayout)}
	for d := first.AddDate(0, 0, 1); d.Before(end) && len(days) < maxEventDays; d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(domain.DayLayout))
	}
	return days
}
