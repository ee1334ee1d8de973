package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/holiday"
	"github.com/alexanderramin/timetrack/internal/repository"
)

type holidayService struct {
	holidays repository.HolidayRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewHolidayService(holidays repository.HolidayRepo, uow db.UnitOfWork, observers ...UseCaseObserver) HolidayService {
	return &holidayService{
		holidays: holidays,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Import stores all holidays of the calendar in one transaction.
func (s *holidayService) Import(ctx context.Context, accountID string, r io.Reader) (n int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"account": accountID}
	defer func() { observe(ctx, s.observer, "holiday-import", startedAt, fields, &err) }()

	if accountID == "" {
		return 0, fmt.Errorf("account is required: %w", domain.ErrValidation)
	}
	parsed, err := holiday.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("importing holidays: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txHolidays := repository.NewSQLiteHolidayRepo(tx)
		for _, h := range parsed {
			h.AccountID = accountID
			if err := txHolidays.Upsert(ctx, h); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["days"] = len(parsed)
	return len(parsed), nil
}

func (s *holidayService) List(ctx context.Context, accountID, from, to string) ([]domain.Holiday, error) {
	if _, err := domain.DaysBetween(from, to); err != nil {
		return nil, err
	}
	return s.holidays.ListRange(ctx, accountID, from, to)
}

func (s *holidayService) Delete(ctx context.Context, accountID, day string) error {
	if _, err := domain.ParseDay(day); err != nil {
		return err
	}
	return s.holidays.Delete(ctx, accountID, day)
}
