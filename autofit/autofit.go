// Package autofit implements automatic component-count selection for
// exGaussian burst fits.
package autofit

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/sartorproj/goburst/exgauss"
	"github.com/sartorproj/goburst/fit"
	"github.com/sartorproj/goburst/stats"
	"github.com/sartorproj/goburst/timeseries"
)

// ErrNoViable reports a run in which every candidate component count failed.
var ErrNoViable = errors.New("no candidate component count produced a usable fit")

// Config holds configuration for the component-count search.
type Config struct {
	MaxComponents int // Maximum component count to try (default: 5)
	MaxIterations int // Solver iteration budget per candidate (default: 400)

	// ImprovementTol stops the search once a new candidate improves the
	// best adjusted R^2 by less than this (default: 1e-3).
	ImprovementTol float64
	// RSquaredTol selects the smallest candidate within this distance of
	// the best stable adjusted R^2 (default: 1e-3).
	RSquaredTol float64
	// ConditionThreshold is the stability cut on the Jacobian condition
	// number; candidates above it are treated as unstable (default: 1e8,
	// past which covariance diagonals are numerically meaningless).
	ConditionThreshold float64

	RawCentreArea   float64 // central area fraction for the raw window (default: 0.90)
	RawExtraWidth   float64 // raw window expansion fraction (default: 0.20)
	ModelCentreArea float64 // central area fraction for the fitted model (default: 0.95)
	SmoothSigma     float64 // Gaussian smoothing sigma in samples, 0 disables (default: 2)

	Logger zerolog.Logger // candidate tracing, zerolog.Nop() by default
}

// DefaultConfig returns the default search configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxComponents:      5,
		MaxIterations:      fit.DefaultMaxIterations,
		ImprovementTol:     1e-3,
		RSquaredTol:        1e-3,
		ConditionThreshold: 1e8,
		RawCentreArea:      0.90,
		RawExtraWidth:      0.20,
		ModelCentreArea:    0.95,
		SmoothSigma:        2,
		Logger:             zerolog.Nop(),
	}
}

// AutoFit fits candidate component counts 1..MaxComponents to one burst
// record and selects the optimum.
//
// Each candidate is warm-started from the previous successful fit with one
// appended component, so candidates are fitted strictly in sequence. A
// candidate that fails to converge or yields degenerate statistics is
// logged and omitted; the search continues. The whole run fails only on a
// malformed record, an unextractable raw burst range, or when no candidate
// at all survives.
func AutoFit(series *timeseries.Series, cfg *Config) (*Report, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger.With().Str("burst", series.Name).Logger()

	smooth := timeseries.GaussianSmooth(series.Values, cfg.SmoothSigma)
	low, high, err := stats.RawBurstRange(smooth, cfg.RawCentreArea, cfg.RawExtraWidth)
	if err != nil {
		return nil, fmt.Errorf("raw burst range: %w", err)
	}
	xs := series.Times[low:high]
	ys := smooth[low:high]

	report := &Report{
		Range: [2]int{low, high},
		Data:  make(map[int]*Result),
	}

	var prev exgauss.Params
	bestAdj := math.Inf(-1)

	for k := 1; k <= cfg.MaxComponents; k++ {
		var initial exgauss.Params
		if prev == nil {
			initial, err = fit.InitialGuess(xs, ys, k)
			if err != nil {
				log.Warn().Err(err).Int("n", k).Msg("initial guess failed")
				continue
			}
		} else {
			initial = warmStart(xs, ys, prev, k)
		}

		candidate, err := fitCandidate(xs, ys, initial, low, cfg)
		if err != nil {
			log.Warn().Err(err).Int("n", k).Msg("candidate excluded")
			continue
		}
		report.Data[k] = candidate
		prev = candidate.Params
		log.Debug().
			Int("n", k).
			Float64("adjusted_r2", candidate.AdjustedRSquared).
			Float64("condition", candidate.Condition).
			Msg("candidate fitted")

		if candidate.Condition > cfg.ConditionThreshold {
			log.Debug().Int("n", k).Msg("stopping: condition threshold exceeded")
			break
		}
		improvement := candidate.AdjustedRSquared - bestAdj
		bestAdj = math.Max(bestAdj, candidate.AdjustedRSquared)
		if k > 1 && improvement < cfg.ImprovementTol {
			log.Debug().Int("n", k).Msg("stopping: adjusted R^2 plateau")
			break
		}
	}

	optimum, unstable, err := SelectOptimum(report.Data, cfg.RSquaredTol, cfg.ConditionThreshold)
	if err != nil {
		return nil, err
	}
	report.Optimum = optimum
	report.Unstable = unstable
	return report, nil
}

// warmStart grows the last successful fit to k components, appending one
// component at the largest residual peak per step. A failed intermediate
// candidate leaves prev more than one component short of k, so the recorded
// candidate always has the component count its key claims.
func warmStart(xs, ys []float64, prev exgauss.Params, k int) exgauss.Params {
	initial := prev
	for initial.NumComponents() < k {
		initial = fit.ExtendGuess(xs, ys, initial)
	}
	return initial
}

// fitCandidate runs one curve fit and assembles its Result. windowLow is
// the raw window origin, used to report burst bounds in absolute sample
// indices.
func fitCandidate(xs, ys []float64, initial exgauss.Params, windowLow int, cfg *Config) (*Result, error) {
	res, err := fit.Curve(xs, ys, initial, cfg.MaxIterations)
	if err != nil {
		return nil, err
	}

	adj, err := stats.AdjustedRSquared(xs, ys, res.Params)
	if err != nil {
		return nil, err
	}

	mlow, mhigh, err := stats.ModelBurstRange(xs, res.Params, cfg.ModelCentreArea)
	if err != nil {
		return nil, fmt.Errorf("model burst range: %w", err)
	}

	return &Result{
		Params:               res.Params,
		InitialParams:        initial,
		Uncertainty:          res.Uncertainties,
		BurstRange:           [2]int{windowLow + mlow, windowLow + mhigh},
		AdjustedRSquared:     adj,
		Condition:            stats.Condition(res.Jacobian),
		Timescale:            res.Params.Timescale(),
		TimescaleUncertainty: res.Uncertainties[len(res.Uncertainties)-1],
		BurstWidth:           xs[mhigh] - xs[mlow],
	}, nil
}

// SelectOptimum picks the component count from recorded candidates: the
// smallest count whose condition number passes the stability cut and whose
// adjusted R^2 is within rsquaredTol of the best stable value. When no
// candidate is stable it falls back to the best adjusted R^2 overall and
// flags the selection unstable. Selection is a pure function of the
// candidates; rerunning it on the same map yields the same count.
func SelectOptimum(candidates map[int]*Result, rsquaredTol, conditionThreshold float64) (optimum int, unstable bool, err error) {
	if len(candidates) == 0 {
		return 0, false, ErrNoViable
	}

	keys := make([]int, 0, len(candidates))
	for k := range candidates {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	bestStable := math.Inf(-1)
	for _, c := range candidates {
		if c.Condition <= conditionThreshold && c.AdjustedRSquared > bestStable {
			bestStable = c.AdjustedRSquared
		}
	}

	if !math.IsInf(bestStable, -1) {
		for _, k := range keys {
			c := candidates[k]
			if c.Condition <= conditionThreshold && c.AdjustedRSquared >= bestStable-rsquaredTol {
				return k, false, nil
			}
		}
	}

	// Degraded fallback: nothing stable, take the best fit regardless.
	best := 0
	for _, k := range keys {
		if best == 0 || candidates[k].AdjustedRSquared > candidates[best].AdjustedRSquared {
			best = k
		}
	}
	return best, true, nil
}
