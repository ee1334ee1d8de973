package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/repository"
	"github.com/google/uuid"
)

type sessionService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	clock    Clock
	observer UseCaseObserver
}

// NewSessionService wires the session lifecycle. A nil clock uses the system
// time.
func NewSessionService(
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	clock Clock,
	observers ...UseCaseObserver,
) SessionService {
	return &sessionService{
		sessions: sessions,
		uow:      uow,
		clock:    clockOrSystem(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sessionService) now() time.Time { return normalize(s.clock()) }

func (s *sessionService) Start(ctx context.Context, accountID string, in StartInput) (sess *domain.WorkSession, err error) {
	startedAt := time.Now()
	fields := map[string]any{"account": accountID}
	defer func() { observe(ctx, s.observer, "session-start", startedAt, fields, &err) }()

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		sess, txErr = startSession(ctx, repository.NewSQLiteSessionRepo(tx), accountID, now, in)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	fields["session_id"] = sess.ID
	return sess, nil
}

// startSession creates an active session and claims the account's open slot
// inside the caller's transaction.
func startSession(ctx context.Context, sessions repository.SessionRepo, accountID string, now time.Time, in StartInput) (*domain.WorkSession, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account is required: %w", domain.ErrValidation)
	}
	start := now
	if in.StartTime != nil {
		start = normalize(*in.StartTime)
		if start.After(now) {
			return nil, fmt.Errorf("start time %s is in the future: %w", start.Format(time.RFC3339), domain.ErrValidation)
		}
	}

	if err := ensureNoOpenSession(ctx, sessions, accountID); err != nil {
		return nil, err
	}

	sess := &domain.WorkSession{
		ID:        uuid.New().String(),
		AccountID: accountID,
		StartTime: start,
		Status:    domain.SessionActive,
		Project:   in.Project,
		Tags:      in.Tags,
		CreatedAt: now,
	}
	var note *domain.SessionNote
	if in.Comment != "" {
		note = &domain.SessionNote{
			ID:        uuid.New().String(),
			SessionID: sess.ID,
			Type:      domain.NoteStart,
			Content:   in.Comment,
			CreatedAt: now,
		}
		if err := sess.AddNote(*note); err != nil {
			return nil, err
		}
	}

	if err := sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	if err := sessions.ClaimOpen(ctx, accountID, sess.ID); err != nil {
		return nil, err
	}
	if note != nil {
		if err := sessions.AppendNote(ctx, note); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func (s *sessionService) PauseOrResume(ctx context.Context, accountID string) (sess *domain.WorkSession, event domain.SessionEvent, err error) {
	startedAt := time.Now()
	fields := map[string]any{"account": accountID}
	defer func() { observe(ctx, s.observer, "session-toggle", startedAt, fields, &err) }()

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		current, err := openSession(ctx, txSessions, accountID)
		if err != nil {
			return err
		}
		ev, err := domain.ToggleEvent(current.Status)
		if err != nil {
			return err
		}
		prev := current.Status
		if err := current.Apply(ev, now); err != nil {
			return err
		}
		if err := txSessions.Update(ctx, current, prev); err != nil {
			return err
		}
		sess, event = current, ev
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	fields["session_id"] = sess.ID
	fields["event"] = string(event)
	return sess, event, nil
}

func (s *sessionService) Stop(ctx context.Context, accountID string, comment *string) (sess *domain.WorkSession, err error) {
	startedAt := time.Now()
	fields := map[string]any{"account": accountID}
	defer func() { observe(ctx, s.observer, "session-stop", startedAt, fields, &err) }()

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		current, err := openSession(ctx, txSessions, accountID)
		if err != nil {
			return err
		}
		prev := current.Status
		if err := current.Stop(now); err != nil {
			return err
		}
		if comment != nil {
			current.Comment = *comment
		}
		if err := txSessions.Update(ctx, current, prev); err != nil {
			return err
		}
		if err := txSessions.ReleaseOpen(ctx, accountID, current.ID); err != nil {
			return err
		}
		sess = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["session_id"] = sess.ID
	fields["total_seconds"] = *sess.TotalSeconds
	return sess, nil
}

func openSession(ctx context.Context, sessions repository.SessionRepo, accountID string) (*domain.WorkSession, error) {
	current, err := sessions.CurrentOpen(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("no active or paused session: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return current, nil
}

func (s *sessionService) AppendNote(ctx context.Context, accountID, sessionID string, in NoteInput) (note *domain.SessionNote, err error) {
	startedAt := time.Now()
	fields := map[string]any{"account": accountID, "session_id": sessionID, "note_type": string(in.Type)}
	defer func() { observe(ctx, s.observer, "session-note", startedAt, fields, &err) }()

	now := s.now()
	createdAt := now
	if in.CreatedAt != nil {
		createdAt = normalize(*in.CreatedAt)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		sess, err := txSessions.GetByID(ctx, accountID, sessionID)
		if err != nil {
			return err
		}
		n := domain.SessionNote{
			ID:        uuid.New().String(),
			SessionID: sess.ID,
			Type:      in.Type,
			Content:   in.Content,
			CreatedAt: createdAt,
		}
		if err := sess.AddNote(n); err != nil {
			return err
		}
		if err := txSessions.AppendNote(ctx, &n); err != nil {
			return err
		}
		if err := txSessions.Update(ctx, sess, sess.Status); err != nil {
			return err
		}
		note = &n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *sessionService) CreateManual(ctx context.Context, accountID string, in ManualInput) (sess *domain.WorkSession, err error) {
	startedAt := time.Now()
	fields := map[string]any{"account": accountID}
	defer func() { observe(ctx, s.observer, "session-create-manual", startedAt, fields, &err) }()

	if accountID == "" {
		return nil, fmt.Errorf("account is required: %w", domain.ErrValidation)
	}
	start, end := normalize(in.Start), normalize(in.End)
	now := s.now()
	candidate := &domain.WorkSession{
		ID:        uuid.New().String(),
		AccountID: accountID,
		StartTime: start,
		StopTime:  &end,
		Status:    domain.SessionStopped,
		Project:   in.Project,
		Tags:      in.Tags,
		CreatedAt: now,
	}
	if err = candidate.ValidateInterval(); err != nil {
		return nil, err
	}
	candidate.Recompute()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		if err := ensureNoOverlap(ctx, txSessions, accountID, start, end, ""); err != nil {
			return err
		}
		var note *domain.SessionNote
		if in.Comment != "" {
			note = &domain.SessionNote{
				ID:        uuid.New().String(),
				SessionID: candidate.ID,
				Type:      domain.NoteStart,
				Content:   in.Comment,
				CreatedAt: now,
			}
			if err := candidate.AddNote(*note); err != nil {
				return err
			}
		}
		if err := txSessions.Create(ctx, candidate); err != nil {
			return err
		}
		if note != nil {
			return txSessions.AppendNote(ctx, note)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["session_id"] = candidate.ID
	return candidate, nil
}

// ensureNoOpenSession fails with ErrConflict while the account has an active
// or paused session.
func ensureNoOpenSession(ctx context.Context, sessions repository.SessionRepo, accountID string) error {
	open, err := sessions.CurrentOpen(ctx, accountID)
	switch {
	case err == nil:
		return fmt.Errorf("session %s is still %s: %w", open.ID, open.Status, domain.ErrConflict)
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}
	return nil
}

func ensureNoOverlap(ctx context.Context, sessions repository.SessionRepo, accountID string, start, end time.Time, excludeID string) error {
	overlapping, err := sessions.FindOverlapping(ctx, accountID, start, end, excludeID)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return fmt.Errorf("interval overlaps session %s: %w", overlapping[0].ID, domain.ErrConflict)
	}
	return nil
}

func (s *sessionService) Update(ctx context.Context, accountID, id string, ch SessionChanges) (sess *domain.WorkSession, err error) {
	startedAt := time.Now()
	fields := map[string]any{"account": accountID, "session_id": id}
	defer func() { observe(ctx, s.observer, "session-update", startedAt, fields, &err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		current, err := txSessions.GetByID(ctx, accountID, id)
		if err != nil {
			return err
		}
		if current.Status.IsOpen() {
			return fmt.Errorf("session %s is %s, stop it first: %w", id, current.Status, domain.ErrValidation)
		}
		if ch.StartTime != nil {
			current.StartTime = normalize(*ch.StartTime)
		}
		if ch.StopTime != nil {
			stop := normalize(*ch.StopTime)
			current.StopTime = &stop
		}
		if ch.Comment != nil {
			current.Comment = *ch.Comment
		}
		if ch.Project != nil {
			current.Project = *ch.Project
		}
		if ch.Tags != nil {
			current.Tags = *ch.Tags
		}
		if err := current.ValidateInterval(); err != nil {
			return err
		}
		if err := ensureNoOverlap(ctx, txSessions, accountID, current.StartTime, *current.StopTime, current.ID); err != nil {
			return err
		}
		current.Recompute()
		if err := txSessions.Update(ctx, current, domain.SessionStopped); err != nil {
			return err
		}
		sess = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Delete(ctx context.Context, accountID, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"account": accountID, "session_id": id}
	defer func() { observe(ctx, s.observer, "session-delete", startedAt, fields, &err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		current, err := txSessions.GetByID(ctx, accountID, id)
		if err != nil {
			return err
		}
		if current.Status.IsOpen() {
			return fmt.Errorf("session %s is %s, stop it first: %w", id, current.Status, domain.ErrValidation)
		}
		return txSessions.Delete(ctx, accountID, id)
	})
}

func (s *sessionService) Active(ctx context.Context, accountID string) (*domain.WorkSession, error) {
	sess, err := s.sessions.CurrentOpen(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) GetByID(ctx context.Context, accountID, id string) (*domain.WorkSession, error) {
	return s.sessions.GetByID(ctx, accountID, id)
}

func (s *sessionService) ListForDay(ctx context.Context, accountID, day string) ([]*domain.WorkSession, error) {
	return s.sessions.ListForDay(ctx, accountID, day)
}
