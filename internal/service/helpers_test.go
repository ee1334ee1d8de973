package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/repository"
	"github.com/alexanderramin/timetrack/internal/testutil"
)

const acct = testutil.TestAccount

// fakeClock is a settable clock shared by all services of a harness.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = testutil.Instant(s)
}

// recordingObserver captures use-case events for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) Names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	names := make([]string, len(o.events))
	for i, e := range o.events {
		names[i] = e.Name
	}
	return names
}

type harness struct {
	db       *sql.DB
	clock    *fakeClock
	observer *recordingObserver
	settings domain.Settings

	sessionRepo *repository.SQLiteSessionRepo
	taskRepo    *repository.SQLiteTaskRepo
	leaveRepo   *repository.SQLiteLeaveRepo
	holidayRepo *repository.SQLiteHolidayRepo

	Sessions SessionService
	Tasks    TaskService
	Summary  SummaryService
	Leave    LeaveService
	Holidays HolidayService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessOn(t, testutil.NewTestDB(t), nil)
}

// newHarnessOn wires every service against database. A nil uow uses the
// regular SQLite unit of work.
func newHarnessOn(t *testing.T, database *sql.DB, uow db.UnitOfWork) *harness {
	t.Helper()
	if uow == nil {
		uow = testutil.NewTestUoW(database)
	}
	h := &harness{
		db:       database,
		clock:    &fakeClock{now: testutil.Instant("2025-06-16T09:00:00Z")},
		observer: &recordingObserver{},
		settings: domain.Settings{
			VacationDaysPerYear:  25,
			TimeDisplayFormat:    domain.FormatHHMM,
			CountUnapprovedLeave: true,
		},
		sessionRepo: repository.NewSQLiteSessionRepo(database),
		taskRepo:    repository.NewSQLiteTaskRepo(database),
		leaveRepo:   repository.NewSQLiteLeaveRepo(database),
		holidayRepo: repository.NewSQLiteHolidayRepo(database),
	}
	settings := settingsFunc(func() domain.Settings { return h.settings })

	h.Sessions = NewSessionService(h.sessionRepo, uow, h.clock.Now, h.observer)
	h.Tasks = NewTaskService(h.taskRepo, h.sessionRepo, uow, h.clock.Now, h.observer)
	h.Summary = NewSummaryService(h.sessionRepo, h.leaveRepo, h.holidayRepo, settings, h.observer)
	h.Leave = NewLeaveService(h.leaveRepo, settings, uow, h.clock.Now, h.observer)
	h.Holidays = NewHolidayService(h.holidayRepo, uow, h.observer)
	return h
}

type settingsFunc func() domain.Settings

func (f settingsFunc) Settings() domain.Settings { return f() }

func strPtr(s string) *string { return &s }

func f64Ptr(v float64) *float64 { return &v }
