package domain

import "math"

// DaySummary is the per-day accounting record the aggregator rolls up.
// In year mode the same shape carries a month bucket, keyed "YYYY-MM".
type DaySummary struct {
	Day                     string
	WorkSeconds             int64
	PauseSeconds            int64
	OvertimeSeconds         int64
	ExpectedSeconds         int64
	BaselineExpectedSeconds *int64
	VacationSeconds         int64
	SickSeconds             int64
	IsWeekend               bool
	IsHoliday               bool
	HolidayName             *string
	LeaveTypes              []string
}

// Baseline is the denominator for fractional leave-day conversion.
func (d DaySummary) Baseline() int64 {
	return Int64FromPtrWithDefault(d.ExpectedSeconds, d.BaselineExpectedSeconds)
}

// Settings is the read-only view of the user's accounting settings.
type Settings struct {
	ExpectedDailyHours    *float64
	ExpectedWeeklyHours   *float64
	VacationDaysPerYear   float64
	VacationDaysCarryover float64
	TimeDisplayFormat     TimeFormat
	DecimalPlaces         int
	CountUnapprovedLeave  bool
}

const defaultDailyHours = 8

// ExpectedDailySeconds prefers the daily figure, then a fifth of the weekly
// one, then eight hours.
func (s Settings) ExpectedDailySeconds() int64 {
	switch {
	case s.ExpectedDailyHours != nil:
		return int64(math.Round(*s.ExpectedDailyHours * 3600))
	case s.ExpectedWeeklyHours != nil:
		return int64(math.Round(*s.ExpectedWeeklyHours * 3600 / 5))
	default:
		return defaultDailyHours * 3600
	}
}
