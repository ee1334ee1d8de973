package domain

import (
	"fmt"
	"time"
)

// Task is an ad-hoc sub-task recorded for a day. It is stored independently
// of work sessions; its session is derived at read time by reconciliation.
type Task struct {
	ID        string
	AccountID string
	Day       string
	Title     string
	StartTime *time.Time
	EndTime   *time.Time
	Project   string
	Tags      []string
	Note      string
	CreatedAt time.Time
}

// Validate checks the fields required to persist a task.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title is required: %w", ErrValidation)
	}
	if _, err := ParseDay(t.Day); err != nil {
		return err
	}
	if t.StartTime != nil && t.EndTime != nil && !t.EndTime.After(*t.StartTime) {
		return fmt.Errorf("task end must be after start: %w", ErrValidation)
	}
	return nil
}
