package fit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goburst/exgauss"
)

func grid(start, stop, step float64) []float64 {
	var xs []float64
	for x := start; x <= stop+1e-9; x += step {
		xs = append(xs, x)
	}
	return xs
}

// Recovery scenario: a clean single exGaussian must be recovered within 5%.
func TestCurveRecoversSingleComponent(t *testing.T) {
	truth, err := exgauss.New(10, 5.0, 1.0, 2.0)
	require.NoError(t, err)

	xs := grid(0, 20, 0.1)
	ys := exgauss.EvaluateAll(xs, truth)

	initial, err := InitialGuess(xs, ys, 1)
	require.NoError(t, err)

	res, err := Curve(xs, ys, initial, 0)
	require.NoError(t, err)
	require.Len(t, res.Params, 4)

	for i, want := range truth {
		relErr := math.Abs(res.Params[i]-want) / math.Abs(want)
		require.Less(t, relErr, 0.05, "parameter %d: want %v got %v", i, want, res.Params[i])
	}
	require.Less(t, res.SSE, 1e-6)
	require.Len(t, res.Uncertainties, 4)
	for i, u := range res.Uncertainties {
		require.False(t, math.IsNaN(u), "uncertainty %d", i)
	}
}

func TestCurveReportsInsufficientData(t *testing.T) {
	initial, err := exgauss.New(10, 5.0, 1.0, 2.0)
	require.NoError(t, err)

	xs := []float64{0, 1, 2, 3}
	_, err = Curve(xs, xs, initial, 0)
	require.ErrorIs(t, err, ErrNonConvergence)
}

func TestCurveReportsLengthMismatch(t *testing.T) {
	initial, err := exgauss.New(10, 5.0, 1.0, 2.0)
	require.NoError(t, err)

	_, err = Curve(grid(0, 20, 0.1), grid(0, 10, 0.1), initial, 0)
	require.ErrorIs(t, err, ErrNonConvergence)
}

func TestCurveRejectsInvalidInitial(t *testing.T) {
	xs := grid(0, 20, 0.1)
	_, err := Curve(xs, xs, exgauss.Params{1, 2}, 0)
	require.ErrorIs(t, err, exgauss.ErrInvalidLength)
}

func TestCurveInfeasibleInitialGuess(t *testing.T) {
	initial := exgauss.Params{math.NaN(), 5.0, 1.0, 2.0}
	xs := grid(0, 20, 0.1)
	_, err := Curve(xs, xs, initial, 0)
	require.ErrorIs(t, err, ErrNonConvergence)
}

func TestInitialGuessAlwaysFeasible(t *testing.T) {
	truth, err := exgauss.New(6, 4.0, 0.8, 3, 14.0, 0.6, 1.5)
	require.NoError(t, err)

	xs := grid(0, 20, 0.1)
	ys := exgauss.EvaluateAll(xs, truth)
	// Deterministic noise so the peaks are not pristine.
	for i := range ys {
		ys[i] += 0.02 * math.Sin(7*float64(i))
	}

	for k := 1; k <= 4; k++ {
		p, err := InitialGuess(xs, ys, k)
		require.NoError(t, err)
		require.Equal(t, k, p.NumComponents())
		require.Greater(t, p.Timescale(), 0.0)
		for i := 0; i < k; i++ {
			amp, loc, scale := p.Component(i)
			require.Greater(t, amp, 0.0, "k=%d component %d amplitude", k, i)
			require.Greater(t, scale, 0.0, "k=%d component %d scale", k, i)
			require.GreaterOrEqual(t, loc, xs[0])
			require.LessOrEqual(t, loc, xs[len(xs)-1])
		}
	}
}

func TestInitialGuessRejectsBadShape(t *testing.T) {
	_, err := InitialGuess(nil, nil, 1)
	require.Error(t, err)

	_, err = InitialGuess([]float64{1, 2, 3}, []float64{1, 2}, 1)
	require.Error(t, err)

	_, err = InitialGuess([]float64{1, 2, 3}, []float64{1, 2, 3}, 0)
	require.Error(t, err)
}

func TestExtendGuessKeepsFittedVector(t *testing.T) {
	truth, err := exgauss.New(10, 5.0, 1.0, 2.0)
	require.NoError(t, err)

	xs := grid(0, 25, 0.1)
	ys := exgauss.EvaluateAll(xs, truth)
	// A second, unmodelled pulse leaves a residual peak near x=15.
	second, err := exgauss.New(5, 15.0, 0.8, 2.0)
	require.NoError(t, err)
	for i, x := range xs {
		ys[i] += exgauss.Evaluate(x, second)
	}

	next := ExtendGuess(xs, ys, truth)
	require.Equal(t, 2, next.NumComponents())
	require.Equal(t, truth.Timescale(), next.Timescale())
	// The fitted components are carried over untouched.
	require.Equal(t, []float64(truth[:3]), []float64(next[:3]))

	amp, loc, scale := next.Component(1)
	require.Greater(t, amp, 0.0)
	require.Greater(t, scale, 0.0)
	require.InDelta(t, 15.0, loc, 2.0, "new component should sit on the residual peak")
}

func TestJacobianDimensions(t *testing.T) {
	p, err := exgauss.New(10, 5.0, 1.0, 2.0)
	require.NoError(t, err)

	xs := grid(0, 5, 0.5)
	j := jacobian(xs, p)
	rows, cols := j.Dims()
	require.Equal(t, len(xs), rows)
	require.Equal(t, len(p), cols)
}
