package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/goburst/exgauss"
)

// ErrAreaUnreachable reports a burst-range extraction whose cumulative
// area never reaches the requested threshold within array bounds, or a
// signal with no positive total area.
var ErrAreaUnreachable = errors.New("cumulative area never reaches threshold")

// RawBurstRange finds the central index window of ys containing the given
// fraction of the total trapezoid area, then expands both bounds outward
// by extraWidth times the window width, clamped to [0, len(ys)].
//
// Each bound is the smallest prefix length whose trapezoid area reaches
// its threshold; the returned window is [low, high) in sample indices.
func RawBurstRange(ys []float64, area, extraWidth float64) (low, high int, err error) {
	total := trapezoid(ys)
	if total <= 0 {
		return 0, 0, fmt.Errorf("%w: total area %v", ErrAreaUnreachable, total)
	}

	lowArea := (1 - area) / 2 * total
	highArea := (1 + area) / 2 * total

	// cum tracks the trapezoid area of the prefix ys[:i].
	i := 0
	cum := 0.0
	for cum < lowArea {
		if i >= len(ys) {
			return 0, 0, fmt.Errorf("%w: lower bound at %v of %v", ErrAreaUnreachable, cum, lowArea)
		}
		i++
		if i >= 2 {
			cum += (ys[i-2] + ys[i-1]) / 2
		}
	}
	low = i
	for cum < highArea {
		if i >= len(ys) {
			return 0, 0, fmt.Errorf("%w: upper bound at %v of %v", ErrAreaUnreachable, cum, highArea)
		}
		i++
		if i >= 2 {
			cum += (ys[i-2] + ys[i-1]) / 2
		}
	}
	high = i

	width := int(math.Round(float64(high-low) * extraWidth))
	low = max(0, low-width)
	high = min(len(ys), high+width)
	return low, high, nil
}

// ModelBurstRange finds the central coordinate window of a fitted model
// containing the given fraction of its total area, scanning the model
// integral at each sample coordinate. No expansion is applied.
//
// The returned bounds are indices into xs.
func ModelBurstRange(xs []float64, p exgauss.Params, area float64) (low, high int, err error) {
	if len(xs) == 0 {
		return 0, 0, fmt.Errorf("%w: empty coordinates", ErrAreaUnreachable)
	}
	total := exgauss.Integral(xs[len(xs)-1], p)
	if total <= 0 {
		return 0, 0, fmt.Errorf("%w: total area %v", ErrAreaUnreachable, total)
	}

	lowArea := (1 - area) / 2 * total
	highArea := (1 + area) / 2 * total

	i := 0
	for exgauss.Integral(xs[i], p) < lowArea {
		i++
		if i >= len(xs) {
			return 0, 0, fmt.Errorf("%w: lower bound", ErrAreaUnreachable)
		}
	}
	low = i
	for exgauss.Integral(xs[i], p) < highArea {
		i++
		if i >= len(xs) {
			return 0, 0, fmt.Errorf("%w: upper bound", ErrAreaUnreachable)
		}
	}
	if i == low {
		// A pulse narrower than the sample spacing crosses both
		// thresholds at one coordinate; keep the window non-empty.
		i++
		if i >= len(xs) {
			return 0, 0, fmt.Errorf("%w: upper bound", ErrAreaUnreachable)
		}
	}
	return low, i, nil
}

// trapezoid returns the trapezoid-rule area under ys at unit spacing.
func trapezoid(ys []float64) float64 {
	total := 0.0
	for i := 1; i < len(ys); i++ {
		total += (ys[i-1] + ys[i]) / 2
	}
	return total
}
