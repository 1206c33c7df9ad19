package stats

import (
	"errors"
	"fmt"

	"github.com/sartorproj/goburst/exgauss"
)

// ErrDegenerate reports an adjusted R² request with too few observations
// for the parameter count (n - p - 1 <= 0).
var ErrDegenerate = errors.New("adjusted R^2 undefined: n - p - 1 <= 0")

// Residuals returns ys minus the model evaluated at xs, element-wise.
func Residuals(xs, ys []float64, p exgauss.Params) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = ys[i] - exgauss.Evaluate(x, p)
	}
	return out
}

// RSquared returns the coefficient of determination of the fit:
// 1 - SS_res/SS_tot.
func RSquared(xs, ys []float64, p exgauss.Params) float64 {
	mean := 0.0
	for _, y := range ys {
		mean += y
	}
	mean /= float64(len(ys))

	ssRes := 0.0
	for _, r := range Residuals(xs, ys, p) {
		ssRes += r * r
	}

	ssTot := 0.0
	for _, y := range ys {
		diff := y - mean
		ssTot += diff * diff
	}

	return 1 - ssRes/ssTot
}

// AdjustedRSquared returns R² penalized for the parameter count:
// 1 - (1 - R²)(n-1)/(n-p-1). It fails when the fit has no residual
// degrees of freedom.
func AdjustedRSquared(xs, ys []float64, p exgauss.Params) (float64, error) {
	n := len(xs)
	np := len(p)
	if n-np-1 <= 0 {
		return 0, fmt.Errorf("%w (n=%d, p=%d)", ErrDegenerate, n, np)
	}
	rs := RSquared(xs, ys, p)
	return 1 - (1-rs)*float64(n-1)/float64(n-np-1), nil
}
