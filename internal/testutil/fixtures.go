package testutil

import (
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/google/uuid"
)

// TestAccount is the account most fixtures default to.
const TestAccount = "acct-test"

// Instant parses an RFC3339 literal and panics on malformed input.
func Instant(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// InstantPtr is Instant returning a pointer.
func InstantPtr(s string) *time.Time {
	t := Instant(s)
	return &t
}

// Session options
type SessionOption func(*domain.WorkSession)

// WithStopTime marks the session stopped at t and computes its total.
func WithStopTime(t time.Time) SessionOption {
	return func(s *domain.WorkSession) {
		s.StopTime = &t
		s.Status = domain.SessionStopped
		s.LastPauseStart = nil
		s.Recompute()
	}
}

// WithPausedSince leaves the session paused since t.
func WithPausedSince(t time.Time) SessionOption {
	return func(s *domain.WorkSession) {
		s.Status = domain.SessionPaused
		s.LastPauseStart = &t
	}
}

func WithPausedSeconds(n int64) SessionOption {
	return func(s *domain.WorkSession) {
		s.PausedSeconds = n
		if s.StopTime != nil {
			s.Recompute()
		}
	}
}

func WithComment(c string) SessionOption {
	return func(s *domain.WorkSession) {
		s.Comment = c
	}
}

func WithProject(p string) SessionOption {
	return func(s *domain.WorkSession) {
		s.Project = p
	}
}

func WithTags(tags ...string) SessionOption {
	return func(s *domain.WorkSession) {
		s.Tags = tags
	}
}

func WithAccount(id string) SessionOption {
	return func(s *domain.WorkSession) {
		s.AccountID = id
	}
}

// NewTestSession builds an active session of TestAccount started at start.
// Apply WithPausedSeconds after WithStopTime so the total reflects it.
func NewTestSession(start time.Time, opts ...SessionOption) *domain.WorkSession {
	s := &domain.WorkSession{
		ID:        uuid.New().String(),
		AccountID: TestAccount,
		StartTime: start.UTC(),
		Status:    domain.SessionActive,
		CreatedAt: start.UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStart(t time.Time) TaskOption {
	return func(tk *domain.Task) {
		tk.StartTime = &t
	}
}

func WithTaskEnd(t time.Time) TaskOption {
	return func(tk *domain.Task) {
		tk.EndTime = &t
	}
}

func WithTaskProject(p string) TaskOption {
	return func(tk *domain.Task) {
		tk.Project = p
	}
}

func WithTaskTags(tags ...string) TaskOption {
	return func(tk *domain.Task) {
		tk.Tags = tags
	}
}

func WithTaskNote(n string) TaskOption {
	return func(tk *domain.Task) {
		tk.Note = n
	}
}

func NewTestTask(day, title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:        uuid.New().String(),
		AccountID: TestAccount,
		Day:       day,
		Title:     title,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Leave options
type LeaveOption func(*domain.LeaveEntry)

func WithDayCount(n float64) LeaveOption {
	return func(l *domain.LeaveEntry) {
		l.DayCount = n
	}
}

func WithApproved(a bool) LeaveOption {
	return func(l *domain.LeaveEntry) {
		l.Approved = a
	}
}

func WithLeaveComment(c string) LeaveOption {
	return func(l *domain.LeaveEntry) {
		l.Comment = c
	}
}

// NewTestLeave builds an approved entry of TestAccount counting one day.
func NewTestLeave(start, end string, typ domain.LeaveType, opts ...LeaveOption) *domain.LeaveEntry {
	l := &domain.LeaveEntry{
		ID:        uuid.New().String(),
		AccountID: TestAccount,
		StartDate: start,
		EndDate:   end,
		Type:      typ,
		Approved:  true,
		DayCount:  1,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
