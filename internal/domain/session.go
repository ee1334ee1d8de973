package domain

import (
	"fmt"
	"time"
)

type WorkSession struct {
	ID             string
	AccountID      string
	StartTime      time.Time
	StopTime       *time.Time
	Status         SessionStatus
	PausedSeconds  int64
	LastPauseStart *time.Time
	TotalSeconds   *int64
	Comment        string
	Project        string
	Tags           []string
	Notes          []SessionNote
	CreatedAt      time.Time
}

type SessionNote struct {
	ID        string
	SessionID string
	Type      NoteType
	Content   string
	CreatedAt time.Time
}

// sessionTransitions is the complete state machine. Any (status, event) pair
// missing from the table is rejected.
var sessionTransitions = map[SessionStatus]map[SessionEvent]SessionStatus{
	SessionActive: {
		EventPause: SessionPaused,
		EventStop:  SessionStopped,
	},
	SessionPaused: {
		EventResume: SessionActive,
		EventStop:   SessionStopped,
	},
}

// NextStatus looks up the transition table.
func NextStatus(from SessionStatus, event SessionEvent) (SessionStatus, error) {
	next, ok := sessionTransitions[from][event]
	if !ok {
		return "", fmt.Errorf("cannot %s a %s session: %w", event, from, ErrValidation)
	}
	return next, nil
}

// ToggleEvent returns the event PauseOrResume applies to a session in status s.
func ToggleEvent(s SessionStatus) (SessionEvent, error) {
	switch s {
	case SessionActive:
		return EventPause, nil
	case SessionPaused:
		return EventResume, nil
	default:
		return "", fmt.Errorf("session is %s: %w", s, ErrValidation)
	}
}

// Apply runs event against the session at instant now.
func (s *WorkSession) Apply(event SessionEvent, now time.Time) error {
	next, err := NextStatus(s.Status, event)
	if err != nil {
		return err
	}
	switch event {
	case EventPause:
		s.LastPauseStart = &now
	case EventResume:
		s.closePauseSpan(now)
	case EventStop:
		s.closePauseSpan(now)
		s.StopTime = &now
		total := s.computeTotal()
		s.TotalSeconds = &total
	}
	s.Status = next
	return nil
}

// Pause, Resume and Stop apply the matching event.
func (s *WorkSession) Pause(now time.Time) error  { return s.Apply(EventPause, now) }
func (s *WorkSession) Resume(now time.Time) error { return s.Apply(EventResume, now) }
func (s *WorkSession) Stop(now time.Time) error   { return s.Apply(EventStop, now) }

func (s *WorkSession) closePauseSpan(now time.Time) {
	if s.LastPauseStart == nil {
		return
	}
	if span := int64(now.Sub(*s.LastPauseStart) / time.Second); span > 0 {
		s.PausedSeconds += span
	}
	s.LastPauseStart = nil
}

// computeTotal is (stop - start) - paused, clamped at zero for clock skew.
func (s *WorkSession) computeTotal() int64 {
	if s.StopTime == nil {
		return 0
	}
	total := int64(s.StopTime.Sub(s.StartTime)/time.Second) - s.PausedSeconds
	if total < 0 {
		return 0
	}
	return total
}

// Recompute refreshes TotalSeconds after an interval edit on a stopped session.
func (s *WorkSession) Recompute() {
	total := s.computeTotal()
	s.TotalSeconds = &total
	s.LastPauseStart = nil
}

// WorkedSeconds returns the accounted seconds of a stopped session, or the
// running figure at now for an open one.
func (s *WorkSession) WorkedSeconds(now time.Time) int64 {
	if s.TotalSeconds != nil {
		return *s.TotalSeconds
	}
	paused := s.PausedSeconds
	if s.LastPauseStart != nil {
		paused += int64(now.Sub(*s.LastPauseStart) / time.Second)
	}
	worked := int64(now.Sub(s.StartTime)/time.Second) - paused
	if worked < 0 {
		return 0
	}
	return worked
}

// AddNote appends an immutable note and mirrors its content into Comment.
func (s *WorkSession) AddNote(n SessionNote) error {
	if n.Content == "" {
		return fmt.Errorf("note content is required: %w", ErrValidation)
	}
	if !ValidNoteTypes[n.Type] {
		return fmt.Errorf("unknown note type %q: %w", n.Type, ErrValidation)
	}
	s.Notes = append(s.Notes, n)
	s.Comment = n.Content
	return nil
}

// ValidateInterval checks the invariants of a stopped session's interval.
func (s *WorkSession) ValidateInterval() error {
	if s.StopTime == nil {
		return fmt.Errorf("stop time is required: %w", ErrValidation)
	}
	if !s.StopTime.After(s.StartTime) {
		return fmt.Errorf("end must be after start: %w", ErrValidation)
	}
	return nil
}
