// Package exgauss implements the sum-of-exGaussian pulse model.
package exgauss

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// expCutoff bounds the argument of math.Exp in the closed-form density.
// Beyond it the exp/erfc product has underflowed to zero in the left tail
// and evaluating it naively yields Inf*0 = NaN.
const expCutoff = 700

var unitNormal = distuv.UnitNormal

// pdf evaluates one exGaussian density: the convolution of a Gaussian
// (loc, scale) with an exponential tail of mean ts. Matches scipy's
// exponnorm with K = ts/scale.
func pdf(x, loc, scale, ts float64) float64 {
	z := (x - loc) / scale
	arg := scale*scale/(2*ts*ts) - (x-loc)/ts
	if arg > expCutoff {
		return 0
	}
	return 1 / (2 * ts) * math.Exp(arg) * math.Erfc((scale/ts-z)/math.Sqrt2)
}

// cdf evaluates one exGaussian cumulative distribution at x.
func cdf(x, loc, scale, ts float64) float64 {
	z := (x - loc) / scale
	arg := scale*scale/(2*ts*ts) - (x-loc)/ts
	v := unitNormal.CDF(z)
	if arg <= expCutoff {
		v -= math.Exp(arg) * unitNormal.CDF(z-scale/ts)
	}
	// Rounding can push the difference marginally outside [0, 1].
	return math.Max(0, math.Min(1, v))
}

// Evaluate returns the sum of k exGaussian components at x, each scaled by
// its amplitude and sharing the trailing timescale parameter.
func Evaluate(x float64, p Params) float64 {
	sum := 0.0
	for i := 0; i < p.NumComponents(); i++ {
		amp, loc, scale := p.Component(i)
		sum += amp * pdf(x, loc, scale, p.Timescale())
	}
	return sum
}

// EvaluateAll evaluates the model at every point of xs.
func EvaluateAll(xs []float64, p Params) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Evaluate(x, p)
	}
	return out
}

// Integral returns the area under the model from -inf up to x: the sum of
// amplitude-weighted component CDFs. It is non-decreasing in x and tends
// to p.TotalArea() as x grows large.
func Integral(x float64, p Params) float64 {
	sum := 0.0
	for i := 0; i < p.NumComponents(); i++ {
		amp, loc, scale := p.Component(i)
		sum += amp * cdf(x, loc, scale, p.Timescale())
	}
	return sum
}

// IntegralAll evaluates the running integral at every point of xs.
func IntegralAll(xs []float64, p Params) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Integral(x, p)
	}
	return out
}
