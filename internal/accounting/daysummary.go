package accounting

import (
	"sort"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// DayInputs is everything needed to derive the day summaries of a range.
type DayInputs struct {
	From     string
	To       string
	Sessions []domain.WorkSession
	Leaves   []domain.LeaveEntry
	Holidays []domain.Holiday
	Settings domain.Settings
}

// BuildDaySummaries produces exactly one summary per calendar day in
// [From, To].
//
// Only stopped sessions count, attributed to the UTC day they started on.
// Weekends and holidays expect nothing. A vacation or sick leave covering a
// working day credits the full baseline as leave seconds and clears the
// expectation for that day, so leave never shows up as an overtime deficit.
func BuildDaySummaries(in DayInputs) ([]domain.DaySummary, error) {
	days, err := domain.DaysBetween(in.From, in.To)
	if err != nil {
		return nil, err
	}

	type workPause struct{ work, pause int64 }
	worked := make(map[string]workPause)
	for _, s := range in.Sessions {
		if s.Status != domain.SessionStopped || s.TotalSeconds == nil {
			continue
		}
		day := domain.DayOf(s.StartTime)
		wp := worked[day]
		wp.work += *s.TotalSeconds
		wp.pause += s.PausedSeconds
		worked[day] = wp
	}

	holidays := make(map[string]string, len(in.Holidays))
	for _, h := range in.Holidays {
		holidays[h.Day] = h.Name
	}

	baseline := in.Settings.ExpectedDailySeconds()
	out := make([]domain.DaySummary, 0, len(days))
	for _, day := range days {
		b := baseline
		d := domain.DaySummary{
			Day:                     day,
			WorkSeconds:             worked[day].work,
			PauseSeconds:            worked[day].pause,
			BaselineExpectedSeconds: &b,
			IsWeekend:               domain.IsWeekendDay(day),
		}
		if name, ok := holidays[day]; ok {
			d.IsHoliday = true
			d.HolidayName = &name
		}
		workingDay := !d.IsWeekend && !d.IsHoliday
		if workingDay {
			d.ExpectedSeconds = baseline
		}

		types := make(map[string]bool)
		for _, l := range in.Leaves {
			if !IsWithin(day, l) || (!l.Approved && !in.Settings.CountUnapprovedLeave) {
				continue
			}
			types[string(l.Type)] = true
			if !workingDay {
				continue
			}
			switch l.Type {
			case domain.LeaveVacation:
				d.VacationSeconds = baseline
				d.ExpectedSeconds = 0
			case domain.LeaveSick:
				d.SickSeconds = baseline
				d.ExpectedSeconds = 0
			}
		}
		// Sick leave taken during a vacation is accounted as sick.
		if d.SickSeconds > 0 {
			d.VacationSeconds = 0
		}
		for t := range types {
			d.LeaveTypes = append(d.LeaveTypes, t)
		}
		sort.Strings(d.LeaveTypes)

		d.OvertimeSeconds = d.WorkSeconds - d.ExpectedSeconds
		out = append(out, d)
	}
	return out, nil
}
