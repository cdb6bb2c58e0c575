package reports

import (
	"context"
	"sort"
	"time"

	"github.com/fintrack/fintrack/internal/movements"
)

// The chart window spans today back 30 days inclusive.
const chartWindowDays = 30

// RepositoryPort defines data access methods for reports.
type RepositoryPort interface {
	Summarize(ctx context.Context) (movements.Summary, error)
	AmountsSince(ctx context.Context, since time.Time) ([]DayAmount, error)
}

// Service computes report statistics.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Stats returns the all-time summary and the daily chart series.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	summary, err := s.repo.Summarize(ctx)
	if err != nil {
		return Stats{}, err
	}
	now := s.now().UTC()
	since := now.AddDate(0, 0, -chartWindowDays)
	amounts, err := s.repo.AmountsSince(ctx, since)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Summary: summary, ChartData: BuildChartData(now, amounts)}, nil
}

// BuildChartData zero-fills every day of the window so the chart has no
// gaps, then folds the day amounts in and sorts ascending by date.
func BuildChartData(now time.Time, amounts []DayAmount) []ChartPoint {
	points := make(map[string]*ChartPoint, chartWindowDays+1)
	for i := 0; i <= chartWindowDays; i++ {
		date := now.AddDate(0, 0, -i).UTC().Format("2006-01-02")
		points[date] = &ChartPoint{Date: date}
	}

	for _, a := range amounts {
		point, ok := points[a.Date]
		if !ok {
			continue
		}
		if a.Type == movements.TypeIncome {
			point.Incomes += a.Amount
		} else {
			point.Expenses += a.Amount
		}
	}

	out := make([]ChartPoint, 0, len(points))
	for _, p := range points {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
