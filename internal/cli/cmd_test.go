package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/repository"
	"github.com/alexanderramin/timetrack/internal/service"
	"github.com/alexanderramin/timetrack/internal/testutil"
)

const holidayICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//timetrack//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:corpus@example.com\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20250619\r\n" +
	"DTEND;VALUE=DATE:20250620\r\n" +
	"SUMMARY:Corpus Christi\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }
func (c *testClock) Set(s string)   { c.now = testutil.Instant(s) }

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
// The clock starts on Monday 2025-06-16 at 08:00 UTC.
func testApp(t *testing.T) (*App, *testClock) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clock := &testClock{}
	clock.Set("2025-06-16T08:00:00Z")

	sessRepo := repository.NewSQLiteSessionRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	leaveRepo := repository.NewSQLiteLeaveRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)
	settings := service.StaticSettings{
		VacationDaysPerYear:  25,
		TimeDisplayFormat:    domain.FormatHHMM,
		DecimalPlaces:        1,
		CountUnapprovedLeave: true,
	}

	return &App{
		Sessions: service.NewSessionService(sessRepo, uow, clock.Now),
		Tasks:    service.NewTaskService(taskRepo, sessRepo, uow, clock.Now),
		Summary:  service.NewSummaryService(sessRepo, leaveRepo, holidayRepo, settings),
		Leave:    service.NewLeaveService(leaveRepo, settings, uow, clock.Now),
		Holidays: service.NewHolidayService(holidayRepo, uow),
		Settings: settings,
		Account:  testutil.TestAccount,
		Now:      clock.Now,
	}, clock
}

// executeCmd runs a CLI command and captures its output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, "", args...)
}

func executeCmdWithInput(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// idFrom returns the word following marker in out.
func idFrom(t *testing.T, out, marker string) string {
	t.Helper()
	fields := strings.Fields(out[strings.Index(out, marker)+len(marker):])
	require.NotEmpty(t, fields, "no id after %q in %q", marker, out)
	return fields[0]
}

func TestSessionLifecycle(t *testing.T) {
	app, clock := testApp(t)

	out, err := executeCmd(t, app, "session", "start", "-c", "planning", "-p", "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "Started session")
	assert.Contains(t, out, "at 08:00")

	out, err = executeCmd(t, app, "session", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "ACTIVE")
	assert.Contains(t, out, "planning")

	clock.Set("2025-06-16T12:00:00Z")
	out, err = executeCmd(t, app, "session", "pause")
	require.NoError(t, err)
	assert.Contains(t, out, "Paused session")

	clock.Set("2025-06-16T12:30:00Z")
	out, err = executeCmd(t, app, "session", "resume")
	require.NoError(t, err)
	assert.Contains(t, out, "Resumed session")

	clock.Set("2025-06-16T17:00:00Z")
	out, err = executeCmd(t, app, "session", "stop")
	require.NoError(t, err)
	assert.Contains(t, out, "worked 8:30, paused 0:30")

	out, err = executeCmd(t, app, "session", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No open session.")

	out, err = executeCmd(t, app, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "planning")
	assert.Contains(t, out, "Total 8:30")
}

func TestSessionStart_SecondStartConflicts(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "session", "start")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "session", "start")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSessionStart_InvalidTime(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "session", "start", "--at", "soon")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSessionNote(t *testing.T) {
	app, clock := testApp(t)

	_, err := executeCmd(t, app, "session", "note", "nothing open")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := executeCmd(t, app, "session", "start")
	require.NoError(t, err)
	id := idFrom(t, out, "Started session ")

	clock.Set("2025-06-16T09:15:00Z")
	out, err = executeCmd(t, app, "session", "note", "standup done")
	require.NoError(t, err)
	assert.Contains(t, out, "at 09:15")

	out, err = executeCmd(t, app, "session", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "[runtime] standup done")
}

func TestSessionAddEditRemove(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "session", "add",
		"--start", "2025-06-13 09:00", "--end", "2025-06-13 12:00", "-c", "backfill")
	require.NoError(t, err)
	assert.Contains(t, out, "(3:00)")
	id := idFrom(t, out, "Added session ")

	_, err = executeCmd(t, app, "session", "add",
		"--start", "2025-06-13 11:00", "--end", "2025-06-13 13:00")
	assert.ErrorIs(t, err, domain.ErrConflict)

	out, err = executeCmd(t, app, "session", "edit", id, "--end", "2025-06-13 13:30", "-p", "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "(4:30)")

	out, err = executeCmd(t, app, "session", "list", "--day", "2025-06-13")
	require.NoError(t, err)
	assert.Contains(t, out, "ops")

	_, err = executeCmd(t, app, "session", "rm", id)
	require.NoError(t, err)

	out, err = executeCmd(t, app, "session", "list", "--day", "2025-06-13")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions on 2025-06-13.")
}

func TestSessionAdd_RequiresFlags(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "session", "add", "--start", "09:00")
	assert.Error(t, err)
}

func TestTaskTree(t *testing.T) {
	app, clock := testApp(t)

	_, err := executeCmd(t, app, "session", "start", "-c", "morning")
	require.NoError(t, err)
	clock.Set("2025-06-16T12:00:00Z")
	_, err = executeCmd(t, app, "session", "stop")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "task", "add", "review PR", "--start", "09:00", "--end", "10:00")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "task", "add", "call bank")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "review PR")
	assert.Contains(t, out, "call bank")

	out, err = executeCmd(t, app, "task", "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "morning")
	assert.Less(t, strings.Index(out, "review PR"), strings.Index(out, "Unassigned"))
	assert.Less(t, strings.Index(out, "Unassigned"), strings.Index(out, "call bank"))
}

func TestTaskStartAndDone(t *testing.T) {
	app, clock := testApp(t)

	out, err := executeCmd(t, app, "task", "add", "deploy", "-p", "ops")
	require.NoError(t, err)
	id := idFrom(t, out, "Added task ")

	clock.Set("2025-06-16T10:00:00Z")
	out, err = executeCmd(t, app, "task", "start", id)
	require.NoError(t, err)
	assert.Contains(t, out, `for "deploy" at 10:00`)

	out, err = executeCmd(t, app, "session", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "ops")

	clock.Set("2025-06-16T11:00:00Z")
	out, err = executeCmd(t, app, "task", "done", id)
	require.NoError(t, err)
	assert.Contains(t, out, "at 11:00")

	_, err = executeCmd(t, app, "task", "start", id)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTaskRemove_Unknown(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "task", "rm", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLeaveAddListBalance(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "leave", "add", "--from", "2025-06-16", "--to", "2025-06-20")
	require.NoError(t, err)
	assert.Contains(t, out, "5 days")

	out, err = executeCmd(t, app, "leave", "add", "--from", "2025-07-01", "--days", "0.5", "--type", "sick")
	require.NoError(t, err)
	assert.Contains(t, out, "0.5 days")

	out, err = executeCmd(t, app, "leave", "list", "--type", "vacation")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-06-16")
	assert.NotContains(t, out, "2025-07-01")

	out, err = executeCmd(t, app, "leave", "balance", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "VACATION 2025")
	assert.Contains(t, out, "20")
	assert.Contains(t, out, "0.5")

	_, err = executeCmd(t, app, "leave", "add", "--from", "2025-06-20", "--to", "2025-06-16")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHolidayImportAndSummary(t *testing.T) {
	app, clock := testApp(t)

	out, err := executeCmdWithInput(t, app, holidayICS, "holiday", "import", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 holidays")

	out, err = executeCmd(t, app, "holiday", "list", "--from", "2025-06-01", "--to", "2025-06-30")
	require.NoError(t, err)
	assert.Contains(t, out, "Corpus Christi")

	_, err = executeCmd(t, app, "session", "start")
	require.NoError(t, err)
	clock.Set("2025-06-16T17:00:00Z")
	_, err = executeCmd(t, app, "session", "stop")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "summary", "--mode", "week", "--anchor", "2025-06-16")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-06-16")
	assert.Contains(t, out, "2025-06-22")
	assert.Contains(t, out, "Corpus Christi")
	assert.Contains(t, out, "+1:00")
	assert.Contains(t, out, "TOTAL")
}

func TestSummary_Errors(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "summary", "--mode", "fortnight")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = executeCmd(t, app, "summary", "--from", "2025-06-01")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = executeCmd(t, app, "summary", "--mode", "day", "--from", "2025-06-10", "--to", "2025-06-01")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSummary_ExplicitRangeDecimal(t *testing.T) {
	app, _ := testApp(t)
	app.Settings = service.StaticSettings{TimeDisplayFormat: domain.FormatDecimal, DecimalPlaces: 2}

	_, err := executeCmd(t, app, "session", "add", "--start", "2025-06-10 09:00", "--end", "2025-06-10 13:30")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "summary", "--mode", "month", "--from", "2025-06-01", "--to", "2025-06-30", "--unit")
	require.NoError(t, err)
	assert.Contains(t, out, "4.50 h")
}
