package domain

import (
	"fmt"
	"time"
)

type LeaveEntry struct {
	ID        string
	AccountID string
	StartDate string
	EndDate   string
	Type      LeaveType
	Comment   string
	Approved  bool
	// DayCount is authoritative once stored; it is never recomputed from the
	// date range afterwards.
	DayCount  float64
	CreatedAt time.Time
}

func (l *LeaveEntry) Validate() error {
	if !ValidLeaveTypes[l.Type] {
		return fmt.Errorf("unknown leave type %q: %w", l.Type, ErrValidation)
	}
	if _, err := ParseDay(l.StartDate); err != nil {
		return err
	}
	if _, err := ParseDay(l.EndDate); err != nil {
		return err
	}
	if l.EndDate < l.StartDate {
		return fmt.Errorf("leave end date must not precede start date: %w", ErrValidation)
	}
	if l.DayCount < 0 {
		return fmt.Errorf("leave day count must not be negative: %w", ErrValidation)
	}
	return nil
}

type Holiday struct {
	AccountID string
	Day       string
	Name      string
}
