// Package stats provides goodness-of-fit statistics and burst-range
// extraction for exGaussian pulse fits.
//
// # Fit Statistics
//
// Score a fitted parameter vector against observations:
//
//	res := stats.Residuals(xs, ys, params)
//	rs := stats.RSquared(xs, ys, params)
//	adj, err := stats.AdjustedRSquared(xs, ys, params)
//
// Adjusted R² penalizes parameter count so models with different component
// counts can be compared; it is undefined when the fit leaves no residual
// degrees of freedom (n - p - 1 <= 0) and returns ErrDegenerate.
//
// Condition measures the numerical stability of a fit from its final
// Jacobian; selection uses it to reject ill-conditioned solutions:
//
//	cond := stats.Condition(result.Jacobian)
//
// # Burst Ranges
//
// Extract the window holding the central fraction of total signal area,
// either from raw samples (with outward expansion) or from a fitted model:
//
//	low, high, err := stats.RawBurstRange(ys, 0.90, 0.20)
//	low, high, err := stats.ModelBurstRange(xs, params, 0.95)
//
// Both return ErrAreaUnreachable instead of scanning out of bounds when the
// signal has no positive area or a threshold cannot be reached.
package stats
