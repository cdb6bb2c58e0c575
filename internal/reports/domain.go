package reports

import "github.com/fintrack/fintrack/internal/movements"

// ChartPoint is one day of aggregated movement amounts.
type ChartPoint struct {
	Date     string  `json:"date"`
	Incomes  float64 `json:"incomes"`
	Expenses float64 `json:"expenses"`
}

// Stats is the reports payload: all-time summary plus a zero-filled
// daily series for the chart.
type Stats struct {
	Summary   movements.Summary `json:"summary"`
	ChartData []ChartPoint      `json:"chartData"`
}

// DayAmount is one movement row reduced to what the chart needs.
type DayAmount struct {
	Date   string // YYYY-MM-DD, UTC
	Type   movements.Type
	Amount float64
}
