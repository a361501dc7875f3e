// Package report computes per-user income/outcome totals and renders the
// dashboard comparison chart.
package report

import (
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Store is the subset of the storage layer the reporting needs.
type Store interface {
	TotalIncome(userID uint) (float64, error)
	TotalOutcome(userID uint) (float64, error)
}

// Summary holds the aggregate totals for one user.
type Summary struct {
	TotalIncome  float64
	TotalOutcome float64
}

// Balance returns income minus outcome.
func (s Summary) Balance() float64 {
	return s.TotalIncome - s.TotalOutcome
}

// Summarize recomputes the totals for a user. Users without transactions
// total zero.
func Summarize(store Store, userID uint) (Summary, error) {
	income, err := store.TotalIncome(userID)
	if err != nil {
		return Summary{}, err
	}
	outcome, err := store.TotalOutcome(userID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{TotalIncome: income, TotalOutcome: outcome}, nil
}

// RenderChart writes a two-bar income/outcome comparison chart as a PNG to
// path. The path is shared between all users; the last writer wins.
func RenderChart(s Summary, path string) error {
	max := s.TotalIncome
	if s.TotalOutcome > max {
		max = s.TotalOutcome
	}
	// A degenerate y-range breaks rendering when both totals are zero.
	if max <= 0 {
		max = 1
	}

	graph := chart.BarChart{
		Title:    "Income vs Outcome",
		Width:    512,
		Height:   400,
		BarWidth: 100,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: max * 1.1},
		},
		Bars: []chart.Value{
			{
				Label: "Income",
				Value: s.TotalIncome,
				Style: chart.Style{
					FillColor:   drawing.ColorFromHex("2e7d32"),
					StrokeColor: drawing.ColorFromHex("2e7d32"),
				},
			},
			{
				Label: "Outcome",
				Value: s.TotalOutcome,
				Style: chart.Style{
					FillColor:   drawing.ColorFromHex("c62828"),
					StrokeColor: drawing.ColorFromHex("c62828"),
				},
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return graph.Render(chart.PNG, f)
}
