package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// SessionRepo persists work sessions, their notes and the per-account
// open-session pointer. Every query is scoped to one account.
type SessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	GetByID(ctx context.Context, accountID, id string) (*domain.WorkSession, error)
	// Update writes s only if its stored status still equals expected.
	Update(ctx context.Context, s *domain.WorkSession, expected domain.SessionStatus) error
	Delete(ctx context.Context, accountID, id string) error
	ListForDay(ctx context.Context, accountID, day string) ([]*domain.WorkSession, error)
	ListRange(ctx context.Context, accountID, from, to string) ([]*domain.WorkSession, error)
	FindOverlapping(ctx context.Context, accountID string, start, end time.Time, excludeID string) ([]*domain.WorkSession, error)

	AppendNote(ctx context.Context, n *domain.SessionNote) error
	ListNotes(ctx context.Context, sessionID string) ([]domain.SessionNote, error)

	ClaimOpen(ctx context.Context, accountID, sessionID string) error
	ReleaseOpen(ctx context.Context, accountID, sessionID string) error
	CurrentOpen(ctx context.Context, accountID string) (*domain.WorkSession, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, accountID, id string) (*domain.Task, error)
	ListByDay(ctx context.Context, accountID, day string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, accountID, id string) error
}

// LeaveFilter narrows LeaveRepo.List. Empty fields do not filter.
type LeaveFilter struct {
	From string
	To   string
	Type domain.LeaveType
}

type LeaveRepo interface {
	Create(ctx context.Context, l *domain.LeaveEntry) error
	GetByID(ctx context.Context, accountID, id string) (*domain.LeaveEntry, error)
	List(ctx context.Context, accountID string, f LeaveFilter) ([]*domain.LeaveEntry, error)
	// Overlapping lists entries whose range intersects [from, to].
	Overlapping(ctx context.Context, accountID, from, to string) ([]*domain.LeaveEntry, error)
	Delete(ctx context.Context, accountID, id string) error
}

type HolidayRepo interface {
	Upsert(ctx context.Context, h domain.Holiday) error
	ListRange(ctx context.Context, accountID, from, to string) ([]domain.Holiday, error)
	Delete(ctx context.Context, accountID, day string) error
}
