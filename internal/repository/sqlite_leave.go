package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/domain"
)

// SQLiteLeaveRepo implements LeaveRepo using a SQLite database.
type SQLiteLeaveRepo struct {
	db db.DBTX
}

// NewSQLiteLeaveRepo creates a new SQLiteLeaveRepo.
func NewSQLiteLeaveRepo(conn db.DBTX) *SQLiteLeaveRepo {
	return &SQLiteLeaveRepo{db: conn}
}

const leaveColumns = `id, account_id, start_date, end_date, type, comment, approved, day_count, created_at`

func (r *SQLiteLeaveRepo) Create(ctx context.Context, l *domain.LeaveEntry) error {
	query := `INSERT INTO leave_entries (` + leaveColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.AccountID,
		l.StartDate,
		l.EndDate,
		string(l.Type),
		l.Comment,
		boolToInt(l.Approved),
		l.DayCount,
		formatInstant(l.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting leave entry: %w", err)
	}
	return nil
}

func (r *SQLiteLeaveRepo) GetByID(ctx context.Context, accountID, id string) (*domain.LeaveEntry, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_entries WHERE id = ? AND account_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, accountID)
	l, err := scanLeave(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("leave entry: %w", ErrNotFound)
		}
		return nil, err
	}
	return l, nil
}

// List returns entries lying entirely within [f.From, f.To], ordered by start.
func (r *SQLiteLeaveRepo) List(ctx context.Context, accountID string, f LeaveFilter) ([]*domain.LeaveEntry, error) {
	var where []string
	args := []any{accountID}
	where = append(where, "account_id = ?")
	if f.From != "" {
		where = append(where, "start_date >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		where = append(where, "end_date <= ?")
		args = append(args, f.To)
	}
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(f.Type))
	}
	query := `SELECT ` + leaveColumns + ` FROM leave_entries
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY start_date, created_at, id`
	return r.query(ctx, query, args...)
}

func (r *SQLiteLeaveRepo) Overlapping(ctx context.Context, accountID, from, to string) ([]*domain.LeaveEntry, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_entries
		WHERE account_id = ? AND start_date <= ? AND end_date >= ?
		ORDER BY start_date, created_at, id`
	return r.query(ctx, query, accountID, to, from)
}

func (r *SQLiteLeaveRepo) Delete(ctx context.Context, accountID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leave_entries WHERE id = ? AND account_id = ?`, id, accountID)
	if err != nil {
		return fmt.Errorf("deleting leave entry: %w", err)
	}
	return requireAffected(res, "leave entry "+id)
}

func (r *SQLiteLeaveRepo) query(ctx context.Context, query string, args ...any) ([]*domain.LeaveEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing leave entries: %w", err)
	}
	defer rows.Close()

	var out []*domain.LeaveEntry
	for rows.Next() {
		l, err := scanLeave(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leave entries: %w", err)
	}
	return out, nil
}

func scanLeave(scan func(dest ...any) error) (*domain.LeaveEntry, error) {
	var l domain.LeaveEntry
	var leaveType, createdAt string
	var approved int
	var dayCount sql.NullFloat64
	if err := scan(&l.ID, &l.AccountID, &l.StartDate, &l.EndDate, &leaveType,
		&l.Comment, &approved, &dayCount, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning leave entry: %w", err)
	}
	l.Type = domain.LeaveType(leaveType)
	l.Approved = intToBool(approved)
	l.DayCount = dayCount.Float64
	var err error
	if l.CreatedAt, err = parseInstant(createdAt); err != nil {
		return nil, fmt.Errorf("parsing leave created_at: %w", err)
	}
	return &l, nil
}
