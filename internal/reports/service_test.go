package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/movements"
)

type stubRepo struct {
	summary   movements.Summary
	amounts   []DayAmount
	sumErr    error
	amountErr error
	lastSince time.Time
}

func (s *stubRepo) Summarize(ctx context.Context) (movements.Summary, error) {
	return s.summary, s.sumErr
}

func (s *stubRepo) AmountsSince(ctx context.Context, since time.Time) ([]DayAmount, error) {
	s.lastSince = since
	return s.amounts, s.amountErr
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
}

func TestBuildChartDataZeroFills(t *testing.T) {
	points := BuildChartData(fixedNow(), nil)

	require.Len(t, points, 31)
	assert.Equal(t, "2026-08-01", points[0].Date)
	assert.Equal(t, "2026-08-31", points[30].Date)
	for i, p := range points {
		assert.Zero(t, p.Incomes, "point %d", i)
		assert.Zero(t, p.Expenses, "point %d", i)
		if i > 0 {
			assert.Less(t, points[i-1].Date, p.Date, "dates must ascend")
		}
	}
}

func TestBuildChartDataFoldsAmounts(t *testing.T) {
	amounts := []DayAmount{
		{Date: "2026-08-31", Type: movements.TypeIncome, Amount: 100},
		{Date: "2026-08-31", Type: movements.TypeIncome, Amount: 50},
		{Date: "2026-08-31", Type: movements.TypeExpense, Amount: 25},
		{Date: "2026-08-15", Type: movements.TypeExpense, Amount: 70},
	}
	points := BuildChartData(fixedNow(), amounts)
	require.Len(t, points, 31)

	byDate := make(map[string]ChartPoint, len(points))
	for _, p := range points {
		byDate[p.Date] = p
	}
	assert.Equal(t, 150.0, byDate["2026-08-31"].Incomes)
	assert.Equal(t, 25.0, byDate["2026-08-31"].Expenses)
	assert.Equal(t, 70.0, byDate["2026-08-15"].Expenses)
	assert.Zero(t, byDate["2026-08-20"].Incomes)
}

func TestBuildChartDataIgnoresOutOfWindowDays(t *testing.T) {
	amounts := []DayAmount{
		{Date: "2026-07-01", Type: movements.TypeIncome, Amount: 999},
		{Date: "2026-09-15", Type: movements.TypeIncome, Amount: 999},
	}
	points := BuildChartData(fixedNow(), amounts)
	for _, p := range points {
		assert.Zero(t, p.Incomes)
	}
}

func TestStats(t *testing.T) {
	repo := &stubRepo{
		summary: movements.Summary{TotalIncomes: 300, TotalExpenses: 120, Balance: 180},
		amounts: []DayAmount{{Date: "2026-08-30", Type: movements.TypeIncome, Amount: 300}},
	}
	svc := NewService(repo)
	svc.now = fixedNow

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repo.summary, stats.Summary)
	require.Len(t, stats.ChartData, 31)
	assert.Equal(t, fixedNow().AddDate(0, 0, -30), repo.lastSince)
}

func TestStatsPropagatesErrors(t *testing.T) {
	boom := errors.New("db down")

	svc := NewService(&stubRepo{sumErr: boom})
	svc.now = fixedNow
	_, err := svc.Stats(context.Background())
	assert.ErrorIs(t, err, boom)

	svc = NewService(&stubRepo{amountErr: boom})
	svc.now = fixedNow
	_, err = svc.Stats(context.Background())
	assert.ErrorIs(t, err, boom)
}
