package accounting

import (
	"math"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// Balance is the vacation/sick usage over a reporting period.
type Balance struct {
	UsedVacation      float64
	UsedSick          float64
	TotalVacation     float64
	RemainingVacation float64
}

// IsWithin reports whether day falls inside the leave's inclusive range.
// Comparison is lexical and therefore only valid for YYYY-MM-DD strings.
func IsWithin(day string, leave domain.LeaveEntry) bool {
	return leave.StartDate <= day && day <= leave.EndDate
}

// LeaveBalance sums the authoritative day counts of the given entries.
// Sick leave has no entitlement ceiling; remaining vacation never drops
// below zero.
func LeaveBalance(entries []domain.LeaveEntry, settings domain.Settings) Balance {
	var b Balance
	for _, e := range entries {
		if !e.Approved && !settings.CountUnapprovedLeave {
			continue
		}
		switch e.Type {
		case domain.LeaveVacation:
			b.UsedVacation += e.DayCount
		case domain.LeaveSick:
			b.UsedSick += e.DayCount
		}
	}
	b.TotalVacation = settings.VacationDaysPerYear + settings.VacationDaysCarryover
	b.RemainingVacation = math.Max(b.TotalVacation-b.UsedVacation, 0)
	return b
}

// CountLeaveDays counts the working days (weekdays that are not holidays)
// in the inclusive range. It is used once, when a leave entry is created.
func CountLeaveDays(start, end string, holidays map[string]bool) (float64, error) {
	days, err := domain.DaysBetween(start, end)
	if err != nil {
		return 0, err
	}
	var n float64
	for _, d := range days {
		if domain.IsWeekendDay(d) || holidays[d] {
			continue
		}
		n++
	}
	return n, nil
}
