package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timetrack/internal/accounting"
	"github.com/alexanderramin/timetrack/internal/domain"
)

// FormatSummary renders an aggregation: one row per day (per month in year
// mode) followed by the totals and the fractional leave days.
func FormatSummary(agg *accounting.Aggregation, d Durations) string {
	headers := []string{"DAY", "WORKED", "EXPECTED", "OVERTIME", "PAUSE", "VACATION", "SICK", "NOTE"}
	rows := make([][]string, 0, len(agg.Rows)+1)
	for _, r := range agg.Rows {
		rows = append(rows, []string{
			dayLabel(r),
			d.Render(r.WorkSeconds),
			d.Render(r.ExpectedSeconds),
			d.Signed(r.OvertimeSeconds),
			d.Render(r.PauseSeconds),
			zeroDim(d, r.VacationSeconds),
			zeroDim(d, r.SickSeconds),
			dayNote(r),
		})
	}
	t := agg.Totals
	rows = append(rows, []string{
		Bold("TOTAL"),
		Bold(d.Render(t.WorkSeconds)),
		Bold(d.Render(t.ExpectedSeconds)),
		d.Signed(t.OvertimeSeconds),
		d.Render(t.PauseSeconds),
		zeroDim(d, t.VacationSeconds),
		zeroDim(d, t.SickSeconds),
		"",
	})

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	fmt.Fprintf(&b, "\nVacation days  %s\n", Days(agg.VacationDays))
	fmt.Fprintf(&b, "Sick days      %s", Days(agg.SickDays))
	title := fmt.Sprintf("%s summary %s … %s", agg.Mode, agg.From, agg.To)
	return RenderBox(title, b.String())
}

func dayLabel(r domain.DaySummary) string {
	if r.IsWeekend {
		return Dim(r.Day)
	}
	return r.Day
}

func dayNote(r domain.DaySummary) string {
	var parts []string
	if r.IsHoliday {
		name := "holiday"
		if r.HolidayName != nil {
			name = *r.HolidayName
		}
		parts = append(parts, StyleBlue.Render(name))
	}
	for _, lt := range r.LeaveTypes {
		parts = append(parts, StyleYellow.Render(lt))
	}
	return strings.Join(parts, ", ")
}

func zeroDim(d Durations, seconds int64) string {
	if seconds == 0 {
		return Dim(d.Render(0))
	}
	return d.Render(seconds)
}

// Days prints day counts without trailing zeros.
func Days(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64)
}
