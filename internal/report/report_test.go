package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	income  float64
	outcome float64
	err     error
}

func (s *stubStore) TotalIncome(userID uint) (float64, error)  { return s.income, s.err }
func (s *stubStore) TotalOutcome(userID uint) (float64, error) { return s.outcome, s.err }

func TestSummarize(t *testing.T) {
	summary, err := Summarize(&stubStore{income: 100, outcome: 40}, 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, summary.TotalIncome)
	assert.Equal(t, 40.0, summary.TotalOutcome)
	assert.Equal(t, 60.0, summary.Balance())
}

func TestSummarizeEmpty(t *testing.T) {
	summary, err := Summarize(&stubStore{}, 1)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalIncome)
	assert.Zero(t, summary.TotalOutcome)
}

func TestSummarizePropagatesStoreError(t *testing.T) {
	_, err := Summarize(&stubStore{err: errors.New("boom")}, 1)
	assert.Error(t, err)
}

func TestRenderChartWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")

	err := RenderChart(Summary{TotalIncome: 100, TotalOutcome: 40}, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4], "output should be a PNG")
}

func TestRenderChartZeroTotals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	assert.NoError(t, RenderChart(Summary{}, path))
}

func TestRenderChartOverwritesSharedPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")

	require.NoError(t, RenderChart(Summary{TotalIncome: 1}, path))
	first, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, RenderChart(Summary{TotalIncome: 5000, TotalOutcome: 3000}, path))
	second, err := os.Stat(path)
	require.NoError(t, err)

	assert.NotEqual(t, first.Size(), second.Size(), "last writer wins on the shared path")
}
