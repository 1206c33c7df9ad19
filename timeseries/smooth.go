package timeseries

import "math"

// MovingAverage returns a centred moving average of values with the given
// window, same length as the input. Windows are truncated at the edges.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		return append([]float64(nil), values...)
	}

	half := window / 2
	out := make([]float64, len(values))
	for i := range values {
		lo := max(0, i-half)
		hi := min(len(values), i+half+1)
		sum := 0.0
		for j := lo; j < hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

// GaussianSmooth convolves values with a truncated Gaussian kernel of the
// given standard deviation in samples. The kernel is renormalized where it
// overhangs the array, which preserves signal mass away from the boundaries
// but not at them. sigma <= 0 returns a copy.
func GaussianSmooth(values []float64, sigma float64) []float64 {
	if sigma <= 0 || len(values) == 0 {
		return append([]float64(nil), values...)
	}

	// Truncate at 4 sigma, matching the usual filter convention.
	radius := int(math.Ceil(4 * sigma))
	kernel := make([]float64, 2*radius+1)
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
	}

	out := make([]float64, len(values))
	for i := range values {
		sum, weight := 0.0, 0.0
		for k, w := range kernel {
			j := i + k - radius
			if j < 0 || j >= len(values) {
				continue
			}
			sum += w * values[j]
			weight += w
		}
		out[i] = sum / weight
	}
	return out
}
