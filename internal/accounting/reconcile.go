package accounting

import (
	"sort"
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// Reconciliation is the read-time association of tasks with the sessions
// that enclose them.
type Reconciliation struct {
	// Sessions in chronological order (start time, then ID).
	Sessions   []domain.WorkSession
	BySession  map[string][]domain.Task
	Unassigned []domain.Task
}

// TasksFor returns the tasks reconciled onto the given session.
func (r Reconciliation) TasksFor(sessionID string) []domain.Task {
	return r.BySession[sessionID]
}

// Reconcile maps each task onto the first session, in chronological order,
// whose interval it intersects:
//
//	task.start < session.stop (open sessions never end) AND
//	(task.end is absent OR task.end > session.start)
//
// Tasks without a start time are always unassigned. Inputs are never mutated
// and identical inputs always produce identical output.
func Reconcile(sessions []domain.WorkSession, tasks []domain.Task) Reconciliation {
	ordered := make([]domain.WorkSession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		return a.ID < b.ID
	})

	result := Reconciliation{
		Sessions:  ordered,
		BySession: make(map[string][]domain.Task, len(ordered)),
	}

	for _, task := range tasks {
		if task.StartTime == nil {
			result.Unassigned = append(result.Unassigned, task)
			continue
		}
		matched := false
		for _, sess := range ordered {
			if taskWithinSession(task, sess) {
				result.BySession[sess.ID] = append(result.BySession[sess.ID], task)
				matched = true
				break
			}
		}
		if !matched {
			result.Unassigned = append(result.Unassigned, task)
		}
	}

	for id := range result.BySession {
		sortTasksByStart(result.BySession[id])
	}
	return result
}

func taskWithinSession(task domain.Task, sess domain.WorkSession) bool {
	if sess.StopTime != nil && !task.StartTime.Before(*sess.StopTime) {
		return false
	}
	return task.EndTime == nil || task.EndTime.After(sess.StartTime)
}

// sortTasksByStart orders by start time; ties keep input order.
func sortTasksByStart(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return startOrZero(tasks[i]).Before(startOrZero(tasks[j]))
	})
}

func startOrZero(t domain.Task) time.Time {
	if t.StartTime == nil {
		return time.Time{}
	}
	return *t.StartTime
}
