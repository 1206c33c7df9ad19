// Package fit estimates sum-of-exGaussian parameters by nonlinear least
// squares.
//
// Curve wraps a Levenberg-Marquardt solver: forward-difference Jacobian,
// damped normal equations, multiplicative damping schedule, and a bounded
// iteration budget. The solution carries the covariance matrix, so each
// parameter's uncertainty is available as the square root of the
// corresponding diagonal entry.
//
// # Basic Usage
//
//	initial, err := fit.InitialGuess(xs, ys, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := fit.Curve(xs, ys, initial, 0)
//	if err != nil {
//	    // ErrNonConvergence or ErrSingularJacobian: skip this candidate.
//	}
//	fmt.Printf("timescale %.3f +/- %.3f\n",
//	    res.Params.Timescale(), res.Uncertainties[len(res.Params)-1])
//
// # Warm Starts
//
// Candidate counts are fitted in sequence, each seeding the next:
//
//	next := fit.ExtendGuess(xs, ys, res.Params)
//	res2, err := fit.Curve(xs, ys, next, 0)
//
// ExtendGuess keeps the fitted vector intact and appends one component at
// the largest positive residual peak. This chaining is a hard sequential
// dependency of the selection loop; candidates must not be fitted in
// parallel.
package fit
