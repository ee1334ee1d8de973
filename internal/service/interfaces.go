package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/timetrack/internal/accounting"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/repository"
)

// StartInput describes a session to start. A nil StartTime means now.
type StartInput struct {
	StartTime *time.Time
	Comment   string
	Project   string
	Tags      []string
}

// ManualInput describes a finished session entered after the fact.
type ManualInput struct {
	Start   time.Time
	End     time.Time
	Comment string
	Project string
	Tags    []string
}

// SessionChanges patches a stopped session. Nil fields are left unchanged.
type SessionChanges struct {
	StartTime *time.Time
	StopTime  *time.Time
	Comment   *string
	Project   *string
	Tags      *[]string
}

// NoteInput appends a note. A nil CreatedAt means now.
type NoteInput struct {
	Content   string
	Type      domain.NoteType
	CreatedAt *time.Time
}

type SessionService interface {
	Start(ctx context.Context, accountID string, in StartInput) (*domain.WorkSession, error)
	// PauseOrResume toggles the open session and reports the applied event.
	PauseOrResume(ctx context.Context, accountID string) (*domain.WorkSession, domain.SessionEvent, error)
	// Stop closes the open session. A non-nil comment replaces the session comment.
	Stop(ctx context.Context, accountID string, comment *string) (*domain.WorkSession, error)
	AppendNote(ctx context.Context, accountID, sessionID string, in NoteInput) (*domain.SessionNote, error)
	CreateManual(ctx context.Context, accountID string, in ManualInput) (*domain.WorkSession, error)
	Update(ctx context.Context, accountID, id string, ch SessionChanges) (*domain.WorkSession, error)
	Delete(ctx context.Context, accountID, id string) error
	// Active returns the open session, or nil when there is none.
	Active(ctx context.Context, accountID string) (*domain.WorkSession, error)
	GetByID(ctx context.Context, accountID, id string) (*domain.WorkSession, error)
	ListForDay(ctx context.Context, accountID, day string) ([]*domain.WorkSession, error)
}

type TaskService interface {
	List(ctx context.Context, accountID, day string) ([]*domain.Task, error)
	GetByID(ctx context.Context, accountID, id string) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, accountID, id string) error
	DayTree(ctx context.Context, accountID, day string) (*DayTree, error)
	// StartTask starts a session for a task of today and stamps its start time.
	StartTask(ctx context.Context, accountID, taskID string) (*domain.WorkSession, *domain.Task, error)
}

type SummaryService interface {
	DaySummaries(ctx context.Context, accountID, from, to string) ([]domain.DaySummary, error)
	Summary(ctx context.Context, accountID string, mode domain.SummaryMode, from, to string) (*accounting.Aggregation, error)
}

// LeaveInput describes a leave request. A nil DayCount is derived from the
// working days in the range.
type LeaveInput struct {
	StartDate string
	EndDate   string
	Type      domain.LeaveType
	Comment   string
	Approved  bool
	DayCount  *float64
}

type LeaveService interface {
	Create(ctx context.Context, accountID string, in LeaveInput) (*domain.LeaveEntry, error)
	List(ctx context.Context, accountID string, f repository.LeaveFilter) ([]*domain.LeaveEntry, error)
	Delete(ctx context.Context, accountID, id string) error
	Balance(ctx context.Context, accountID string, year int) (*accounting.Balance, error)
}

type HolidayService interface {
	// Import upserts every holiday of an iCalendar stream and returns how
	// many days were stored.
	Import(ctx context.Context, accountID string, r io.Reader) (int, error)
	List(ctx context.Context, accountID, from, to string) ([]domain.Holiday, error)
	Delete(ctx context.Context, accountID, day string) error
}

// SettingsProvider supplies the read-only accounting settings.
type SettingsProvider interface {
	Settings() domain.Settings
}
