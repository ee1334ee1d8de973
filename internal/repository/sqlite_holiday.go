package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/domain"
)

// SQLiteHolidayRepo implements HolidayRepo using a SQLite database.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

// NewSQLiteHolidayRepo creates a new SQLiteHolidayRepo.
func NewSQLiteHolidayRepo(conn db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: conn}
}

// Upsert stores a holiday, replacing the name of an existing one on that day.
func (r *SQLiteHolidayRepo) Upsert(ctx context.Context, h domain.Holiday) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO holidays (account_id, day, name) VALUES (?, ?, ?)
		ON CONFLICT(account_id, day) DO UPDATE SET name = excluded.name`,
		h.AccountID, h.Day, h.Name)
	if err != nil {
		return fmt.Errorf("upserting holiday %s: %w", h.Day, err)
	}
	return nil
}

func (r *SQLiteHolidayRepo) ListRange(ctx context.Context, accountID, from, to string) ([]domain.Holiday, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT account_id, day, name FROM holidays
		WHERE account_id = ? AND day >= ? AND day <= ? ORDER BY day`,
		accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var out []domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.AccountID, &h.Day, &h.Name); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return out, nil
}

func (r *SQLiteHolidayRepo) Delete(ctx context.Context, accountID, day string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE account_id = ? AND day = ?`, accountID, day)
	if err != nil {
		return fmt.Errorf("deleting holiday: %w", err)
	}
	return requireAffected(res, "holiday "+day)
}
