package accounting

import (
	"testing"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveBalance_Example(t *testing.T) {
	settings := domain.Settings{VacationDaysPerYear: 25, VacationDaysCarryover: 2, CountUnapprovedLeave: true}
	entries := []domain.LeaveEntry{{Type: domain.LeaveVacation, DayCount: 5}}

	b := LeaveBalance(entries, settings)

	assert.Equal(t, 5.0, b.UsedVacation)
	assert.Equal(t, 27.0, b.TotalVacation)
	assert.Equal(t, 22.0, b.RemainingVacation)
}

func TestLeaveBalance_RemainingNeverNegativeSickUnbounded(t *testing.T) {
	settings := domain.Settings{VacationDaysPerYear: 2, CountUnapprovedLeave: true}
	entries := []domain.LeaveEntry{
		{Type: domain.LeaveVacation, DayCount: 3, Approved: true},
		{Type: domain.LeaveSick, DayCount: 40},
		{Type: domain.LeaveOther, DayCount: 1},
	}

	b := LeaveBalance(entries, settings)

	assert.Equal(t, 0.0, b.RemainingVacation)
	assert.Equal(t, 40.0, b.UsedSick)
}

func TestLeaveBalance_UnapprovedExcludedWhenConfigured(t *testing.T) {
	entries := []domain.LeaveEntry{
		{Type: domain.LeaveVacation, DayCount: 2, Approved: true},
		{Type: domain.LeaveVacation, DayCount: 3, Approved: false},
	}

	counted := LeaveBalance(entries, domain.Settings{VacationDaysPerYear: 10, CountUnapprovedLeave: true})
	excluded := LeaveBalance(entries, domain.Settings{VacationDaysPerYear: 10})

	assert.Equal(t, 5.0, counted.UsedVacation)
	assert.Equal(t, 2.0, excluded.UsedVacation)
	assert.Equal(t, 8.0, excluded.RemainingVacation)
}

func TestIsWithin(t *testing.T) {
	leave := domain.LeaveEntry{StartDate: "2025-06-16", EndDate: "2025-06-20"}
	assert.True(t, IsWithin("2025-06-16", leave))
	assert.True(t, IsWithin("2025-06-20", leave))
	assert.False(t, IsWithin("2025-06-15", leave))
	assert.False(t, IsWithin("2025-06-21", leave))
}

func TestCountLeaveDays_SkipsWeekendsAndHolidays(t *testing.T) {
	// Mon 2025-06-16 .. Sun 2025-06-22 with Thursday a holiday.
	n, err := CountLeaveDays("2025-06-16", "2025-06-22", map[string]bool{"2025-06-19": true})
	require.NoError(t, err)
	assert.Equal(t, 4.0, n)
}
