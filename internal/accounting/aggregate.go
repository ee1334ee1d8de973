package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// monthKeyLen is the length of a "YYYY-MM" prefix of a canonical day.
const monthKeyLen = 7

// Totals is the elementwise sum across all rows of an aggregation.
type Totals struct {
	WorkSeconds     int64
	PauseSeconds    int64
	OvertimeSeconds int64
	ExpectedSeconds int64
	VacationSeconds int64
	SickSeconds     int64
}

func (t *Totals) add(d domain.DaySummary) {
	t.WorkSeconds += d.WorkSeconds
	t.PauseSeconds += d.PauseSeconds
	t.OvertimeSeconds += d.OvertimeSeconds
	t.ExpectedSeconds += d.ExpectedSeconds
	t.VacationSeconds += d.VacationSeconds
	t.SickSeconds += d.SickSeconds
}

type Aggregation struct {
	Mode         domain.SummaryMode
	From         string
	To           string
	Rows         []domain.DaySummary
	Totals       Totals
	VacationDays float64
	SickDays     float64
}

// Aggregate rolls per-day summaries in [from, to] up for the given mode.
//
// Day, week and month modes return the day rows ordered by day. Year mode
// re-buckets rows by month: numeric fields are summed and the single-day
// hints (weekend, holiday, leave types) are cleared on the bucket.
//
// Fractional leave days are always derived from the day rows, never from
// buckets: each day contributes leave_seconds / baseline, and a day with a
// zero baseline or no leave contributes nothing.
func Aggregate(days []domain.DaySummary, mode domain.SummaryMode, from, to string) (*Aggregation, error) {
	if !domain.ValidSummaryModes[mode] {
		return nil, fmt.Errorf("unknown summary mode %q: %w", mode, domain.ErrValidation)
	}
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	rows := make([]domain.DaySummary, 0, len(days))
	for _, d := range days {
		if d.Day >= from && d.Day <= to {
			rows = append(rows, d)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })

	agg := &Aggregation{Mode: mode, From: from, To: to}
	for _, d := range rows {
		agg.Totals.add(d)
		agg.VacationDays += fractionalDays(d.VacationSeconds, d.Baseline())
		agg.SickDays += fractionalDays(d.SickSeconds, d.Baseline())
	}

	if mode == domain.ModeYear {
		agg.Rows = bucketByMonth(rows)
	} else {
		agg.Rows = rows
	}
	return agg, nil
}

func fractionalDays(leaveSeconds, baseline int64) float64 {
	if leaveSeconds == 0 || baseline == 0 {
		return 0
	}
	return float64(leaveSeconds) / float64(baseline)
}

// bucketByMonth expects rows sorted by day.
func bucketByMonth(rows []domain.DaySummary) []domain.DaySummary {
	var buckets []domain.DaySummary
	for _, d := range rows {
		key := d.Day
		if len(key) > monthKeyLen {
			key = key[:monthKeyLen]
		}
		if len(buckets) == 0 || buckets[len(buckets)-1].Day != key {
			var zero int64
			buckets = append(buckets, domain.DaySummary{Day: key, BaselineExpectedSeconds: &zero})
		}
		b := &buckets[len(buckets)-1]
		b.WorkSeconds += d.WorkSeconds
		b.PauseSeconds += d.PauseSeconds
		b.OvertimeSeconds += d.OvertimeSeconds
		b.ExpectedSeconds += d.ExpectedSeconds
		*b.BaselineExpectedSeconds += d.Baseline()
		b.VacationSeconds += d.VacationSeconds
		b.SickSeconds += d.SickSeconds
	}
	return buckets
}

func validateRange(from, to string) error {
	if _, err := domain.ParseDay(from); err != nil {
		return err
	}
	if _, err := domain.ParseDay(to); err != nil {
		return err
	}
	if from > to {
		return fmt.Errorf("range start %s is after end %s: %w", from, to, domain.ErrValidation)
	}
	return nil
}

// ResolveRange returns the canonical range of the given mode that contains
// anchor: the day itself, its ISO week (Monday to Sunday), its month or its
// year.
func ResolveRange(mode domain.SummaryMode, anchor string) (string, string, error) {
	t, err := domain.ParseDay(anchor)
	if err != nil {
		return "", "", err
	}
	var start, end time.Time
	switch mode {
	case domain.ModeDay:
		start, end = t, t
	case domain.ModeWeek:
		offset := (int(t.Weekday()) + 6) % 7
		start = t.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 6)
	case domain.ModeMonth:
		start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case domain.ModeYear:
		start = time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		return "", "", fmt.Errorf("unknown summary mode %q: %w", mode, domain.ErrValidation)
	}
	return start.Format(domain.DayLayout), end.Format(domain.DayLayout), nil
}
