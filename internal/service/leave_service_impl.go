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

type leaveService struct {
	leaves   repository.LeaveRepo
	settings SettingsProvider
	uow      db.UnitOfWork
	clock    Clock
	observer UseCaseObserver
}

func NewLeaveService(
	leaves repository.LeaveRepo,
	settings SettingsProvider,
	uow db.UnitOfWork,
	clock Clock,
	observers ...UseCaseObserver,
) LeaveService {
	return &leaveService{
		leaves:   leaves,
		settings: settings,
		uow:      uow,
		clock:    clockOrSystem(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create stores a leave entry. Without an explicit day count the entry counts
// the weekdays of its range that are not holidays; the count is frozen then.
func (s *leaveService) Create(ctx context.Context, accountID string, in LeaveInput) (entry *domain.LeaveEntry, err error) {
	startedAt := time.Now()
	fields := map[string]any{"account": accountID, "type": string(in.Type)}
	defer func() { observe(ctx, s.observer, "leave-create", startedAt, fields, &err) }()

	if accountID == "" {
		return nil, fmt.Errorf("account is required: %w", domain.ErrValidation)
	}
	entry = &domain.LeaveEntry{
		ID:        uuid.New().String(),
		AccountID: accountID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Type:      in.Type,
		Comment:   in.Comment,
		Approved:  in.Approved,
		CreatedAt: normalize(s.clock()),
	}
	if in.DayCount != nil {
		entry.DayCount = *in.DayCount
	}
	if err = entry.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if in.DayCount == nil {
			holidays, err := repository.NewSQLiteHolidayRepo(tx).ListRange(ctx, accountID, entry.StartDate, entry.EndDate)
			if err != nil {
				return err
			}
			closed := make(map[string]bool, len(holidays))
			for _, h := range holidays {
				closed[h.Day] = true
			}
			if entry.DayCount, err = accounting.CountLeaveDays(entry.StartDate, entry.EndDate, closed); err != nil {
				return err
			}
		}
		return repository.NewSQLiteLeaveRepo(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	fields["day_count"] = entry.DayCount
	return entry, nil
}

// List returns entries lying entirely within the filter's bounds.
func (s *leaveService) List(ctx context.Context, accountID string, f repository.LeaveFilter) ([]*domain.LeaveEntry, error) {
	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := domain.ParseDay(d); err != nil {
			return nil, err
		}
	}
	if f.From != "" && f.To != "" && f.To < f.From {
		return nil, fmt.Errorf("range %s..%s is reversed: %w", f.From, f.To, domain.ErrValidation)
	}
	if f.Type != "" && !domain.ValidLeaveTypes[f.Type] {
		return nil, fmt.Errorf("unknown leave type %q: %w", f.Type, domain.ErrValidation)
	}
	return s.leaves.List(ctx, accountID, f)
}

func (s *leaveService) Delete(ctx context.Context, accountID, id string) error {
	return s.leaves.Delete(ctx, accountID, id)
}

// Balance covers the entries starting in the given calendar year, so an entry
// spanning New Year counts once, in the year it begins.
func (s *leaveService) Balance(ctx context.Context, accountID string, year int) (*accounting.Balance, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("year %d out of range: %w", year, domain.ErrValidation)
	}
	from := fmt.Sprintf("%04d-01-01", year)
	to := fmt.Sprintf("%04d-12-31", year)

	entries, err := s.leaves.Overlapping(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}
	var inYear []domain.LeaveEntry
	for _, e := range entries {
		if e.StartDate >= from {
			inYear = append(inYear, *e)
		}
	}
	b := accounting.LeaveBalance(inYear, s.settings.Settings())
	return &b, nil
}
