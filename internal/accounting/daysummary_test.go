package accounting

import (
	"testing"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stopped(start, stop string, paused int64) domain.WorkSession {
	s := session("", parseInstant(start), parseInstant(stop))
	s.PausedSeconds = paused
	total := int64(s.StopTime.Sub(s.StartTime).Seconds()) - paused
	s.TotalSeconds = &total
	return s
}

func TestBuildDaySummaries_OnePerDay(t *testing.T) {
	daily := 8.0
	in := DayInputs{
		From: "2025-06-13", // Friday
		To:   "2025-06-16", // Monday
		Sessions: []domain.WorkSession{
			stopped("2025-06-13T09:00:00Z", "2025-06-13T17:00:00Z", 1800),
			stopped("2025-06-16T08:00:00Z", "2025-06-16T10:00:00Z", 0),
			session("open", parseInstant("2025-06-16T11:00:00Z"), nil),
		},
		Settings: domain.Settings{ExpectedDailyHours: &daily},
	}

	days, err := BuildDaySummaries(in)
	require.NoError(t, err)
	require.Len(t, days, 4)

	fri := days[0]
	assert.Equal(t, int64(27000), fri.WorkSeconds)
	assert.Equal(t, int64(1800), fri.PauseSeconds)
	assert.Equal(t, int64(-1800), fri.OvertimeSeconds)

	sat := days[1]
	assert.True(t, sat.IsWeekend)
	assert.Zero(t, sat.ExpectedSeconds)
	assert.Equal(t, int64(28800), *sat.BaselineExpectedSeconds)

	mon := days[3]
	assert.Equal(t, int64(7200), mon.WorkSeconds, "open sessions are not accounted")
}

func TestBuildDaySummaries_LeaveAndHolidays(t *testing.T) {
	in := DayInputs{
		From: "2025-06-16",
		To:   "2025-06-21",
		Leaves: []domain.LeaveEntry{
			{Type: domain.LeaveVacation, StartDate: "2025-06-16", EndDate: "2025-06-21", Approved: true},
			{Type: domain.LeaveSick, StartDate: "2025-06-18", EndDate: "2025-06-18"},
		},
		Holidays: []domain.Holiday{{Day: "2025-06-19", Name: "Corpus Christi"}},
		Settings: domain.Settings{CountUnapprovedLeave: true},
	}

	days, err := BuildDaySummaries(in)
	require.NoError(t, err)

	mon := days[0]
	assert.Equal(t, int64(28800), mon.VacationSeconds)
	assert.Zero(t, mon.ExpectedSeconds)
	assert.Zero(t, mon.OvertimeSeconds)
	assert.Equal(t, []string{"vacation"}, mon.LeaveTypes)

	wed := days[2]
	assert.Equal(t, int64(28800), wed.SickSeconds)
	assert.Zero(t, wed.VacationSeconds)
	assert.Equal(t, []string{"sick", "vacation"}, wed.LeaveTypes)

	thu := days[3]
	assert.True(t, thu.IsHoliday)
	require.NotNil(t, thu.HolidayName)
	assert.Equal(t, "Corpus Christi", *thu.HolidayName)
	assert.Zero(t, thu.VacationSeconds, "holidays do not consume leave")

	sat := days[5]
	assert.Zero(t, sat.VacationSeconds)
	assert.Equal(t, []string{"vacation"}, sat.LeaveTypes)

	agg, err := Aggregate(days, domain.ModeWeek, "2025-06-16", "2025-06-21")
	require.NoError(t, err)
	assert.Equal(t, 3.0, agg.VacationDays)
	assert.Equal(t, 1.0, agg.SickDays)
}

func TestBuildDaySummaries_UnapprovedSkippedWhenConfigured(t *testing.T) {
	in := DayInputs{
		From:   "2025-06-16",
		To:     "2025-06-16",
		Leaves: []domain.LeaveEntry{{Type: domain.LeaveVacation, StartDate: "2025-06-16", EndDate: "2025-06-16"}},
	}
	days, err := BuildDaySummaries(in)
	require.NoError(t, err)
	assert.Zero(t, days[0].VacationSeconds)
	assert.Equal(t, int64(28800), days[0].ExpectedSeconds)
}
