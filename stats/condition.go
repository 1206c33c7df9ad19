package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Condition returns the condition number of a fit's final Jacobian: the
// ratio of its largest to smallest singular value. Large values flag an
// unstable, nearly degenerate parametrization; a rank-deficient Jacobian
// yields +Inf.
func Condition(j mat.Matrix) float64 {
	var svd mat.SVD
	if ok := svd.Factorize(j, mat.SVDNone); !ok {
		return math.Inf(1)
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return math.Inf(1)
	}
	smallest := values[len(values)-1]
	if smallest == 0 {
		return math.Inf(1)
	}
	return values[0] / smallest
}
