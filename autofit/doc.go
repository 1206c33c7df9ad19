// Package autofit selects the number of exGaussian components that best
// describes a burst profile.
//
// AutoFit walks candidate component counts upward from one. Each candidate
// is fitted by nonlinear least squares, warm-started from the previous
// successful fit with one extra component seeded at the largest residual
// peak. Candidates are scored by adjusted R² and by the condition number of
// the fit's Jacobian.
//
// # Basic Usage
//
//	series, _ := timeseries.LoadJSON("burst.json")
//	report, err := autofit.AutoFit(series, autofit.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s := report.Summary()
//	fmt.Printf("N=%d adjusted R^2=%.4f timescale=%.3f±%.3f\n",
//	    s.OptimumK, s.AdjustedRSquared, s.Timescale, s.TimescaleUncertainty)
//
// # Selection Rule
//
// Among recorded candidates, the optimum is the smallest component count
// whose condition number passes the stability threshold and whose adjusted
// R² lies within a small tolerance of the best stable value; parsimony
// wins ties. When every candidate fails the stability cut, the best
// adjusted R² is selected regardless and the report is flagged unstable.
//
// # Failure Handling
//
// A candidate that does not converge, has no residual degrees of freedom,
// or yields an unextractable model burst range is logged and left out of
// the report; the search carries on. The run as a whole errors only on
// malformed input, an unextractable raw burst range, or when every
// candidate failed (ErrNoViable).
package autofit
