package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, account_id, day, title, start_time, end_time, project, tags, note, created_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	tags, err := encodeTags(t.Tags)
	if err != nil {
		return err
	}
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.AccountID,
		t.Day,
		t.Title,
		nullableTimeToString(t.StartTime),
		nullableTimeToString(t.EndTime),
		t.Project,
		tags,
		t.Note,
		formatInstant(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, accountID, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND account_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, accountID)

	var t domain.Task
	var raw taskRow
	if err := row.Scan(raw.targets(&t)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return populateTask(&t, &raw)
}

// ListByDay returns a day's tasks; unstarted tasks sort first, then by start.
func (r *SQLiteTaskRepo) ListByDay(ctx context.Context, accountID, day string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE account_id = ? AND day = ?
		ORDER BY start_time IS NOT NULL, start_time, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, accountID, day)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var raw taskRow
		if err := rows.Scan(raw.targets(&t)...); err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		task, err := populateTask(&t, &raw)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	tags, err := encodeTags(t.Tags)
	if err != nil {
		return err
	}
	query := `UPDATE tasks SET day = ?, title = ?, start_time = ?, end_time = ?,
		project = ?, tags = ?, note = ?
		WHERE id = ? AND account_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Day,
		t.Title,
		nullableTimeToString(t.StartTime),
		nullableTimeToString(t.EndTime),
		t.Project,
		tags,
		t.Note,
		t.ID,
		t.AccountID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, "task "+t.ID)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, accountID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND account_id = ?`, id, accountID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, "task "+id)
}

type taskRow struct {
	startTime, endTime sql.NullString
	tags, createdAt    string
}

func (tr *taskRow) targets(t *domain.Task) []any {
	return []any{
		&t.ID, &t.AccountID, &t.Day, &t.Title, &tr.startTime, &tr.endTime,
		&t.Project, &tr.tags, &t.Note, &tr.createdAt,
	}
}

func populateTask(t *domain.Task, raw *taskRow) (*domain.Task, error) {
	var err error
	if t.StartTime, err = parseNullableTime(raw.startTime); err != nil {
		return nil, fmt.Errorf("parsing task start_time: %w", err)
	}
	if t.EndTime, err = parseNullableTime(raw.endTime); err != nil {
		return nil, fmt.Errorf("parsing task end_time: %w", err)
	}
	if t.CreatedAt, err = parseInstant(raw.createdAt); err != nil {
		return nil, fmt.Errorf("parsing task created_at: %w", err)
	}
	if t.Tags, err = decodeTags(raw.tags); err != nil {
		return nil, err
	}
	return t, nil
}

// requireAffected maps a zero-row write to ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
