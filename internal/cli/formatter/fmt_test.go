package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/timetrack/internal/accounting"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/testutil"
)

var hhmm = Durations{Format: domain.FormatHHMM}

func TestFormatSessionList(t *testing.T) {
	now := testutil.Instant("2025-06-16T17:00:00Z")
	stopped := testutil.NewTestSession(testutil.Instant("2025-06-16T08:00:00Z"),
		testutil.WithStopTime(testutil.Instant("2025-06-16T12:00:00Z")),
		testutil.WithComment("planning"))
	open := testutil.NewTestSession(testutil.Instant("2025-06-16T13:00:00Z"), testutil.WithProject("ops"))

	out := FormatSessionList("2025-06-16", []*domain.WorkSession{stopped, open}, hhmm, now)

	assert.Contains(t, out, "08:00")
	assert.Contains(t, out, "12:00")
	assert.Contains(t, out, "planning")
	assert.Contains(t, out, "ops")
	assert.Contains(t, out, "Total 8:00")
}

func TestFormatSessionList_Empty(t *testing.T) {
	assert.Contains(t, FormatSessionList("2025-06-16", nil, hhmm, time.Now()), "No sessions on 2025-06-16.")
}

func TestFormatSession_ShowsNotes(t *testing.T) {
	s := testutil.NewTestSession(testutil.Instant("2025-06-16T08:00:00Z"))
	s.Notes = []domain.SessionNote{{Type: domain.NoteRuntime, Content: "standup", CreatedAt: testutil.Instant("2025-06-16T09:15:00Z")}}

	out := FormatSession(s, hhmm, testutil.Instant("2025-06-16T10:00:00Z"))

	assert.Contains(t, out, "ACTIVE")
	assert.Contains(t, out, "2:00")
	assert.Contains(t, out, "09:15")
	assert.Contains(t, out, "[runtime] standup")
}

func TestFormatDayTree_NestsTasksUnderSessions(t *testing.T) {
	sess := testutil.NewTestSession(testutil.Instant("2025-06-16T08:00:00Z"),
		testutil.WithStopTime(testutil.Instant("2025-06-16T12:00:00Z")))
	inside := testutil.NewTestTask("2025-06-16", "review PR",
		testutil.WithTaskStart(testutil.Instant("2025-06-16T09:00:00Z")))
	loose := testutil.NewTestTask("2025-06-16", "call bank")

	r := accounting.Reconcile([]domain.WorkSession{*sess}, []domain.Task{*inside, *loose})
	out := FormatDayTree("2025-06-16", r, hhmm, testutil.Instant("2025-06-16T18:00:00Z"))

	lines := strings.Split(out, "\n")
	idx := func(s string) int {
		for i, l := range lines {
			if strings.Contains(l, s) {
				return i
			}
		}
		return -1
	}
	assert.Greater(t, idx("review PR"), idx("08:00"))
	assert.Greater(t, idx("call bank"), idx("Unassigned"))
	assert.Greater(t, idx("Unassigned"), idx("review PR"))
}

func TestFormatDayTree_Empty(t *testing.T) {
	out := FormatDayTree("2025-06-16", accounting.Reconcile(nil, nil), hhmm, time.Now())
	assert.Contains(t, out, "Nothing recorded")
}

func TestFormatSummary(t *testing.T) {
	name := "Corpus Christi"
	base := int64(28800)
	days := []domain.DaySummary{
		{Day: "2025-06-18", WorkSeconds: 32400, ExpectedSeconds: 28800, OvertimeSeconds: 3600},
		{Day: "2025-06-19", IsHoliday: true, HolidayName: &name},
		{Day: "2025-06-20", VacationSeconds: 28800, BaselineExpectedSeconds: &base, LeaveTypes: []string{"vacation"}},
	}
	agg, err := accounting.Aggregate(days, domain.ModeDay, "2025-06-18", "2025-06-20")
	assert.NoError(t, err)

	out := FormatSummary(agg, hhmm)

	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "+1:00")
	assert.Contains(t, out, "Corpus Christi")
	assert.Contains(t, out, "vacation")
	assert.Contains(t, out, "Vacation days  1")
}

func TestFormatBalance(t *testing.T) {
	out := FormatBalance(2025, &accounting.Balance{TotalVacation: 27, UsedVacation: 4.5, RemainingVacation: 22.5, UsedSick: 2})
	assert.Contains(t, out, "VACATION 2025")
	assert.Contains(t, out, "27")
	assert.Contains(t, out, "4.5")
	assert.Contains(t, out, "22.5")
}

func TestFormatLeaveList(t *testing.T) {
	half := testutil.NewTestLeave("2025-06-20", "2025-06-20", domain.LeaveVacation,
		testutil.WithDayCount(0.5), testutil.WithApproved(false))
	out := FormatLeaveList([]*domain.LeaveEntry{half})
	assert.Contains(t, out, "0.5")
	assert.Contains(t, out, "no")
	assert.Contains(t, FormatLeaveList(nil), "No leave found.")
}
