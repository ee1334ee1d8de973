package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timetrack/internal/accounting"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/repository"
)

type summaryService struct {
	sessions repository.SessionRepo
	leaves   repository.LeaveRepo
	holidays repository.HolidayRepo
	settings SettingsProvider
	observer UseCaseObserver
}

func NewSummaryService(
	sessions repository.SessionRepo,
	leaves repository.LeaveRepo,
	holidays repository.HolidayRepo,
	settings SettingsProvider,
	observers ...UseCaseObserver,
) SummaryService {
	return &summaryService{
		sessions: sessions,
		leaves:   leaves,
		holidays: holidays,
		settings: settings,
		observer: useCaseObserverOrNoop(observers),
	}
}

// DaySummaries returns one summary per calendar day of [from, to].
func (s *summaryService) DaySummaries(ctx context.Context, accountID, from, to string) ([]domain.DaySummary, error) {
	if _, err := domain.DaysBetween(from, to); err != nil {
		return nil, err
	}

	sessions, err := s.sessions.ListRange(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}
	leaves, err := s.leaves.Overlapping(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}
	holidays, err := s.holidays.ListRange(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}

	in := accounting.DayInputs{
		From:     from,
		To:       to,
		Holidays: holidays,
		Settings: s.settings.Settings(),
	}
	for _, sess := range sessions {
		in.Sessions = append(in.Sessions, *sess)
	}
	for _, l := range leaves {
		in.Leaves = append(in.Leaves, *l)
	}
	return accounting.BuildDaySummaries(in)
}

func (s *summaryService) Summary(ctx context.Context, accountID string, mode domain.SummaryMode, from, to string) (agg *accounting.Aggregation, err error) {
	startedAt := time.Now()
	fields := map[string]any{"account": accountID, "mode": string(mode), "from": from, "to": to}
	defer func() { observe(ctx, s.observer, "summary", startedAt, fields, &err) }()

	if !domain.ValidSummaryModes[mode] {
		return nil, fmt.Errorf("unknown summary mode %q: %w", mode, domain.ErrValidation)
	}
	var days []domain.DaySummary
	days, err = s.DaySummaries(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}
	agg, err = accounting.Aggregate(days, mode, from, to)
	if err != nil {
		return nil, err
	}
	fields["rows"] = len(agg.Rows)
	return agg, nil
}
