package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillLeaveDayCount(db); err != nil {
		return fmt.Errorf("backfilling leave day counts: %w", err)
	}
	return nil
}

// migrateBackfillLeaveDayCount fills day_count for leave rows written before
// the column existed. The count is frozen afterwards like any other entry.
func migrateBackfillLeaveDayCount(db *sql.DB) error {
	ctx := context.Background()

	type pending struct {
		id, account, start, end string
	}
	rows, err := db.QueryContext(ctx, `SELECT id, account_id, start_date, end_date
		FROM leave_entries WHERE day_count IS NULL`)
	if err != nil {
		return fmt.Errorf("listing leave entries without day count: %w", err)
	}
	var todo []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.account, &p.start, &p.end); err != nil {
			rows.Close()
			return fmt.Errorf("scanning leave entry: %w", err)
		}
		todo = append(todo, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating leave entries: %w", err)
	}

	for _, p := range todo {
		holidays, err := holidayDays(ctx, db, p.account)
		if err != nil {
			return err
		}
		days, err := domain.DaysBetween(p.start, p.end)
		if err != nil {
			// Malformed legacy rows keep a zero count rather than blocking startup.
			days = nil
		}
		var n float64
		for _, d := range days {
			if !domain.IsWeekendDay(d) && !holidays[d] {
				n++
			}
		}
		if _, err := db.ExecContext(ctx, `UPDATE leave_entries SET day_count = ? WHERE id = ?`, n, p.id); err != nil {
			return fmt.Errorf("updating day count of %s: %w", p.id, err)
		}
	}
	return nil
}

func holidayDays(ctx context.Context, db *sql.DB, account string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT day FROM holidays WHERE account_id = ?`, account)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()
	out := make(map[string]bool)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		out[d] = true
	}
	return out, rows.Err()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_sessions (
		id               TEXT PRIMARY KEY,
		account_id       TEXT NOT NULL,
		start_time       TEXT NOT NULL,
		stop_time        TEXT,
		status           TEXT NOT NULL DEFAULT 'active'
		                 CHECK(status IN ('active','paused','stopped')),
		paused_seconds   INTEGER NOT NULL DEFAULT 0,
		last_pause_start TEXT,
		total_seconds    INTEGER,
		comment          TEXT NOT NULL DEFAULT '',
		project          TEXT NOT NULL DEFAULT '',
		tags             TEXT NOT NULL DEFAULT '[]',
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_sessions_account_start ON work_sessions(account_id, start_time)`,

	// Second line of defence behind the open_sessions pointer.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_work_sessions_one_open
		ON work_sessions(account_id) WHERE status IN ('active','paused')`,

	`CREATE TABLE IF NOT EXISTS open_sessions (
		account_id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL UNIQUE REFERENCES work_sessions(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS session_notes (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES work_sessions(id) ON DELETE CASCADE,
		note_type  TEXT NOT NULL CHECK(note_type IN ('start','runtime')),
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL,
		seq        INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_session_notes_session ON session_notes(session_id, seq)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		day        TEXT NOT NULL,
		title      TEXT NOT NULL,
		start_time TEXT,
		end_time   TEXT,
		project    TEXT NOT NULL DEFAULT '',
		tags       TEXT NOT NULL DEFAULT '[]',
		note       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_account_day ON tasks(account_id, day)`,

	`CREATE TABLE IF NOT EXISTS leave_entries (
		id         TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		type       TEXT NOT NULL CHECK(type IN ('vacation','sick','other')),
		comment    TEXT NOT NULL DEFAULT '',
		approved   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_leave_entries_account_range ON leave_entries(account_id, start_date, end_date)`,

	`ALTER TABLE leave_entries ADD COLUMN day_count REAL`,

	`CREATE TABLE IF NOT EXISTS holidays (
		account_id TEXT NOT NULL,
		day        TEXT NOT NULL,
		name       TEXT NOT NULL,
		PRIMARY KEY (account_id, day)
	)`,
}
