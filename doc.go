// Package goburst fits sums of exponentially-modified Gaussian (exGaussian)
// pulse components to radio burst intensity profiles.
//
// GoBurst models a burst as k exGaussian pulses (Gaussian rise, exponential
// decay tail) sharing a single decay timescale. It fits candidate models of
// increasing component count with nonlinear least squares, scores each fit,
// and selects the simplest model whose fit quality matches the best seen.
//
// # Features
//
//   - Sum-of-exGaussian model evaluation and cumulative integral
//   - Levenberg-Marquardt curve fitting with covariance-based uncertainties
//   - Goodness-of-fit statistics (R², adjusted R², Jacobian condition number)
//   - Burst range extraction from raw data or from a fitted model
//   - Automatic component-count selection with warm-started candidate fits
//   - Diagnostic plots: residuals, fitted curve, individual components
//
// # Quick Start
//
// Fit a burst profile and select the component count:
//
//	series, _ := timeseries.LoadJSON("burst.json")
//	report, _ := autofit.AutoFit(series, autofit.DefaultConfig())
//	summary := report.Summary()
//	fmt.Printf("optimum N=%d, adjusted R^2=%.4f\n",
//	    summary.OptimumK, summary.AdjustedRSquared)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - exgauss: the sum-of-exGaussian model family and its parameter vector
//   - fit: nonlinear least-squares fitting and initial-guess heuristics
//   - stats: fit statistics and burst-range extraction
//   - autofit: automatic component-count selection and fit reports
//   - timeseries: burst records, smoothing, and data loading
//   - plotfit: diagnostic figure rendering
package goburst
