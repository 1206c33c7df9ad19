package fit

import (
	"fmt"
	"math"

	"github.com/sartorproj/goburst/exgauss"
	"github.com/sartorproj/goburst/stats"
	"github.com/sartorproj/goburst/timeseries"
)

// guessWindow is the moving-average width used to suppress noise before
// locating peaks for initial guesses.
const guessWindow = 5

// InitialGuess builds a heuristic starting vector for k components: the k
// highest well-separated peaks of the smoothed signal, with amplitudes
// converted from peak height to pulse area. All amplitudes and scales are
// positive by construction, as is the shared timescale.
func InitialGuess(xs, ys []float64, k int) (exgauss.Params, error) {
	if k < 1 || len(xs) < 2 || len(xs) != len(ys) {
		return nil, fmt.Errorf("cannot build initial guess for k=%d over %d samples", k, len(xs))
	}

	smooth := timeseries.MovingAverage(ys, guessWindow)
	span := xs[len(xs)-1] - xs[0]
	dx := span / float64(len(xs)-1)
	sd := math.Max(dx, span/(10*float64(k)))

	peaks := topPeaks(smooth, k)
	params := make(exgauss.Params, 0, 3*k+1)
	for _, idx := range peaks {
		params = append(params, positiveAmp(smooth[idx], sd), xs[idx], sd)
	}
	params = append(params, sd) // shared timescale

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// ExtendGuess appends one component to a previously fitted vector at the
// largest positive residual peak, keeping every fitted value as the warm
// start for the next candidate count.
func ExtendGuess(xs, ys []float64, prev exgauss.Params) exgauss.Params {
	res := timeseries.MovingAverage(stats.Residuals(xs, ys, prev), guessWindow)

	idx := 0
	for i, r := range res {
		if r > res[idx] {
			idx = i
		}
	}

	// Reuse the mean fitted scale for the new pulse.
	sd := 0.0
	for i := 0; i < prev.NumComponents(); i++ {
		_, _, scale := prev.Component(i)
		sd += math.Abs(scale)
	}
	sd /= float64(prev.NumComponents())
	if sd == 0 {
		sd = math.Abs(prev.Timescale())
	}
	if sd == 0 {
		sd = 1
	}

	return prev.Extend(positiveAmp(res[idx], sd), xs[idx], sd)
}

// topPeaks returns the indices of the k largest values of ys, forcing a
// minimum separation so components start on distinct pulses.
func topPeaks(ys []float64, k int) []int {
	sep := max(2, len(ys)/(4*k))
	work := make([]float64, len(ys))
	copy(work, ys)

	peaks := make([]int, 0, k)
	for len(peaks) < k {
		idx := 0
		for i, v := range work {
			if v > work[idx] {
				idx = i
			}
		}
		if math.IsInf(work[idx], -1) {
			// Everything is blanked; spread the remaining components evenly.
			idx = (len(ys) * (2*len(peaks) + 1)) / (2 * k)
		}
		peaks = append(peaks, idx)
		for i := max(0, idx-sep); i < min(len(work), idx+sep+1); i++ {
			work[i] = math.Inf(-1)
		}
	}
	return peaks
}

// positiveAmp converts a peak height to a pulse-area amplitude, floored
// so the guess always satisfies amplitude > 0.
func positiveAmp(height, sd float64) float64 {
	amp := height * sd * math.Sqrt(2*math.Pi)
	if amp <= 0 {
		return 1e-6
	}
	return amp
}
