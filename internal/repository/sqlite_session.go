package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

const sessionColumns = `id, account_id, start_time, stop_time, status, paused_seconds,
	last_pause_start, total_seconds, comment, project, tags, created_at`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	tags, err := encodeTags(s.Tags)
	if err != nil {
		return err
	}
	query := `INSERT INTO work_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.AccountID,
		formatInstant(s.StartTime),
		nullableTimeToString(s.StopTime),
		string(s.Status),
		s.PausedSeconds,
		nullableTimeToString(s.LastPauseStart),
		nullableInt64ToValue(s.TotalSeconds),
		s.Comment,
		s.Project,
		tags,
		formatInstant(s.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s already has an open session: %w", s.AccountID, domain.ErrConflict)
		}
		return fmt.Errorf("inserting work session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, accountID, id string) (*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE id = ? AND account_id = ?`
	s, err := r.scanSession(r.db.QueryRowContext(ctx, query, id, accountID))
	if err != nil {
		return nil, err
	}
	if err := r.loadNotes(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.WorkSession, expected domain.SessionStatus) error {
	tags, err := encodeTags(s.Tags)
	if err != nil {
		return err
	}
	query := `UPDATE work_sessions SET start_time = ?, stop_time = ?, status = ?,
		paused_seconds = ?, last_pause_start = ?, total_seconds = ?,
		comment = ?, project = ?, tags = ?
		WHERE id = ? AND account_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query,
		formatInstant(s.StartTime),
		nullableTimeToString(s.StopTime),
		string(s.Status),
		s.PausedSeconds,
		nullableTimeToString(s.LastPauseStart),
		nullableInt64ToValue(s.TotalSeconds),
		s.Comment,
		s.Project,
		tags,
		s.ID,
		s.AccountID,
		string(expected),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s already has an open session: %w", s.AccountID, domain.ErrConflict)
		}
		return fmt.Errorf("updating work session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s is no longer %s: %w", s.ID, expected, domain.ErrConflict)
	}
	return nil
}

// Delete removes a stopped session and its notes.
func (r *SQLiteSessionRepo) Delete(ctx context.Context, accountID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM work_sessions WHERE id = ? AND account_id = ? AND status = ?`,
		id, accountID, string(domain.SessionStopped))
	if err != nil {
		return fmt.Errorf("deleting work session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("stopped work session %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListForDay lists sessions that started within the UTC day, notes included.
func (r *SQLiteSessionRepo) ListForDay(ctx context.Context, accountID, day string) ([]*domain.WorkSession, error) {
	return r.ListRange(ctx, accountID, day, day)
}

// ListRange lists sessions whose start falls on a UTC day in [from, to].
func (r *SQLiteSessionRepo) ListRange(ctx context.Context, accountID, from, to string) ([]*domain.WorkSession, error) {
	lo, _, err := domain.DayBounds(from)
	if err != nil {
		return nil, err
	}
	_, hi, err := domain.DayBounds(to)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + sessionColumns + ` FROM work_sessions
		WHERE account_id = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time, id`
	rows, err := r.db.QueryContext(ctx, query, accountID, formatInstant(lo), formatInstant(hi))
	if err != nil {
		return nil, fmt.Errorf("listing work sessions: %w", err)
	}
	sessions, err := r.scanSessions(rows)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if err := r.loadNotes(ctx, s); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// FindOverlapping lists sessions intersecting [start, end). Open sessions
// extend indefinitely.
func (r *SQLiteSessionRepo) FindOverlapping(ctx context.Context, accountID string, start, end time.Time, excludeID string) ([]*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions
		WHERE account_id = ? AND id != ?
		  AND start_time < ?
		  AND (stop_time IS NULL OR stop_time > ?)
		ORDER BY start_time, id`
	rows, err := r.db.QueryContext(ctx, query, accountID, excludeID, formatInstant(end), formatInstant(start))
	if err != nil {
		return nil, fmt.Errorf("finding overlapping sessions: %w", err)
	}
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) AppendNote(ctx context.Context, n *domain.SessionNote) error {
	query := `INSERT INTO session_notes (id, session_id, note_type, content, created_at, seq)
		VALUES (?, ?, ?, ?, ?,
			COALESCE((SELECT MAX(seq) FROM session_notes WHERE session_id = ?), 0) + 1)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.SessionID, string(n.Type), n.Content, formatInstant(n.CreatedAt), n.SessionID)
	if err != nil {
		return fmt.Errorf("inserting session note: %w", err)
	}
	return nil
}

// ListNotes returns a session's notes in append order.
func (r *SQLiteSessionRepo) ListNotes(ctx context.Context, sessionID string) ([]domain.SessionNote, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, note_type, content, created_at
		FROM session_notes WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing session notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.SessionNote
	for rows.Next() {
		var n domain.SessionNote
		var noteType, createdAt string
		if err := rows.Scan(&n.ID, &n.SessionID, &noteType, &n.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning session note: %w", err)
		}
		n.Type = domain.NoteType(noteType)
		if n.CreatedAt, err = parseInstant(createdAt); err != nil {
			return nil, fmt.Errorf("parsing note created_at: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session notes: %w", err)
	}
	return notes, nil
}

// ClaimOpen points the account's open slot at sessionID. A taken slot is a
// conflict; this insert is the compare-and-swap behind the single open
// session per account.
func (r *SQLiteSessionRepo) ClaimOpen(ctx context.Context, accountID, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO open_sessions (account_id, session_id) VALUES (?, ?)`, accountID, sessionID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s already has an open session: %w", accountID, domain.ErrConflict)
		}
		return fmt.Errorf("claiming open session: %w", err)
	}
	return nil
}

// ReleaseOpen clears the open slot only if it still points at sessionID.
func (r *SQLiteSessionRepo) ReleaseOpen(ctx context.Context, accountID, sessionID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM open_sessions WHERE account_id = ? AND session_id = ?`, accountID, sessionID)
	if err != nil {
		return fmt.Errorf("releasing open session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking released rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s is not the open session of %s: %w", sessionID, accountID, domain.ErrConflict)
	}
	return nil
}

// CurrentOpen returns the account's active or paused session.
func (r *SQLiteSessionRepo) CurrentOpen(ctx context.Context, accountID string) (*domain.WorkSession, error) {
	var sessionID string
	err := r.db.QueryRowContext(ctx,
		`SELECT session_id FROM open_sessions WHERE account_id = ?`, accountID).Scan(&sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("open session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("reading open session pointer: %w", err)
	}
	return r.GetByID(ctx, accountID, sessionID)
}

func (r *SQLiteSessionRepo) loadNotes(ctx context.Context, s *domain.WorkSession) error {
	notes, err := r.ListNotes(ctx, s.ID)
	if err != nil {
		return err
	}
	s.Notes = notes
	return nil
}

type sessionRow struct {
	startTime, status, tags, createdAt string
	stopTime, lastPauseStart           sql.NullString
	totalSeconds                       sql.NullInt64
}

func (sr *sessionRow) targets(s *domain.WorkSession) []any {
	return []any{
		&s.ID, &s.AccountID, &sr.startTime, &sr.stopTime, &sr.status, &s.PausedSeconds,
		&sr.lastPauseStart, &sr.totalSeconds, &s.Comment, &s.Project, &sr.tags, &sr.createdAt,
	}
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var raw sessionRow
	if err := row.Scan(raw.targets(&s)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}
	return populateSession(&s, &raw)
}

// scanSessions drains and closes rows. Callers may issue follow-up queries
// afterwards, which matters on a single-connection database.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.WorkSession, error) {
	defer rows.Close()
	var sessions []*domain.WorkSession
	for rows.Next() {
		var s domain.WorkSession
		var raw sessionRow
		if err := rows.Scan(raw.targets(&s)...); err != nil {
			return nil, fmt.Errorf("scanning work session row: %w", err)
		}
		session, err := populateSession(&s, &raw)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work sessions: %w", err)
	}
	return sessions, rows.Close()
}

func populateSession(s *domain.WorkSession, raw *sessionRow) (*domain.WorkSession, error) {
	var err error
	if s.StartTime, err = parseInstant(raw.startTime); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if s.StopTime, err = parseNullableTime(raw.stopTime); err != nil {
		return nil, fmt.Errorf("parsing stop_time: %w", err)
	}
	if s.LastPauseStart, err = parseNullableTime(raw.lastPauseStart); err != nil {
		return nil, fmt.Errorf("parsing last_pause_start: %w", err)
	}
	if s.CreatedAt, err = parseInstant(raw.createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if raw.totalSeconds.Valid {
		total := raw.totalSeconds.Int64
		s.TotalSeconds = &total
	}
	s.Status = domain.SessionStatus(raw.status)
	if s.Tags, err = decodeTags(raw.tags); err != nil {
		return nil, err
	}
	return s, nil
}
