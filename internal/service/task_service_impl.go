package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timetrack/internal/accounting"
	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/repository"
	"github.com/google/uuid"
)

// DayTree is a day's sessions with their reconciled tasks.
type DayTree struct {
	Day string
	accounting.Reconciliation
}

type taskService struct {
	tasks    repository.TaskRepo
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	clock    Clock
	observer UseCaseObserver
}

func NewTaskService(
	tasks repository.TaskRepo,
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	clock Clock,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		tasks:    tasks,
		sessions: sessions,
		uow:      uow,
		clock:    clockOrSystem(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) List(ctx context.Context, accountID, day string) ([]*domain.Task, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return nil, err
	}
	return s.tasks.ListByDay(ctx, accountID, day)
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.AccountID == "" {
		return fmt.Errorf("account is required: %w", domain.ErrValidation)
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.CreatedAt = normalize(s.clock())
	normalizeTaskTimes(t)
	if err := t.Validate(); err != nil {
		return err
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	normalizeTaskTimes(t)
	if err := t.Validate(); err != nil {
		return err
	}
	return s.tasks.Update(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, accountID, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, accountID, id)
}

func (s *taskService) Delete(ctx context.Context, accountID, id string) error {
	return s.tasks.Delete(ctx, accountID, id)
}

func normalizeTaskTimes(t *domain.Task) {
	if t.StartTime != nil {
		v := normalize(*t.StartTime)
		t.StartTime = &v
	}
	if t.EndTime != nil {
		v := normalize(*t.EndTime)
		t.EndTime = &v
	}
}

// DayTree reconciles the day's tasks onto the sessions that started that day.
func (s *taskService) DayTree(ctx context.Context, accountID, day string) (*DayTree, error) {
	sessions, err := s.sessions.ListForDay(ctx, accountID, day)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByDay(ctx, accountID, day)
	if err != nil {
		return nil, err
	}

	sessVals := make([]domain.WorkSession, len(sessions))
	for i, sess := range sessions {
		sessVals[i] = *sess
	}
	taskVals := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		taskVals[i] = *t
	}
	return &DayTree{Day: day, Reconciliation: accounting.Reconcile(sessVals, taskVals)}, nil
}

func (s *taskService) StartTask(ctx context.Context, accountID, taskID string) (sess *domain.WorkSession, task *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"account": accountID, "task_id": taskID}
	defer func() { observe(ctx, s.observer, "task-start", startedAt, fields, &err) }()

	now := normalize(s.clock())
	today := domain.DayOf(now)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txSessions := repository.NewSQLiteSessionRepo(tx)

		t, err := txTasks.GetByID(ctx, accountID, taskID)
		if err != nil {
			return err
		}
		if err := ensureNoOpenSession(ctx, txSessions, accountID); err != nil {
			return err
		}
		if t.Day != today {
			return fmt.Errorf("task %s is planned for %s, not today (%s): %w", taskID, t.Day, today, domain.ErrValidation)
		}

		started, err := startSession(ctx, txSessions, accountID, now, StartInput{
			Comment: t.Title,
			Project: t.Project,
			Tags:    t.Tags,
		})
		if err != nil {
			return err
		}

		t.StartTime = &now
		if t.EndTime != nil && !t.EndTime.After(now) {
			t.EndTime = nil
		}
		if err := txTasks.Update(ctx, t); err != nil {
			return err
		}
		sess, task = started, t
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	fields["session_id"] = sess.ID
	return sess, task, nil
}
