package plotfit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goburst/autofit"
	"github.com/sartorproj/goburst/exgauss"
	"github.com/sartorproj/goburst/timeseries"
)

func testReport(t *testing.T) (*timeseries.Series, *autofit.Report) {
	t.Helper()
	params, err := exgauss.New(10, 5.0, 1.0, 4, 12.0, 0.8, 2.0)
	require.NoError(t, err)

	times := make([]float64, 200)
	for i := range times {
		times[i] = float64(i) * 0.1
	}
	series, err := timeseries.New(times, exgauss.EvaluateAll(times, params))
	require.NoError(t, err)
	series.Name = "testburst"
	series.RMS = 0.05

	report := &autofit.Report{
		Range:   [2]int{10, 190},
		Optimum: 2,
		Data: map[int]*autofit.Result{
			2: {
				Params:           params,
				InitialParams:    params,
				BurstRange:       [2]int{30, 160},
				AdjustedRSquared: 0.999,
				Timescale:        2,
				BurstWidth:       13,
			},
		},
	}
	return series, report
}

func TestFittedWritesFigure(t *testing.T) {
	series, report := testReport(t)
	path := filepath.Join(t.TempDir(), "fit.png")

	require.NoError(t, Fitted(series, report, report.Optimum, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestInitialOverlayWritesFigure(t *testing.T) {
	series, report := testReport(t)
	path := filepath.Join(t.TempDir(), "initial.png")

	require.NoError(t, InitialOverlay(series, report, report.Optimum, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestFittedUnknownCandidate(t *testing.T) {
	series, report := testReport(t)
	err := Fitted(series, report, 7, filepath.Join(t.TempDir(), "x.png"))
	require.Error(t, err)
}
