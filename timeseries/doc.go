// Package timeseries provides burst record data structures and loading.
//
// A Series is one burst profile: equally spaced time coordinates (ms),
// intensity samples, optional per-sample time resolution, and an off-burst
// noise RMS estimate.
//
// # Creating a Series
//
//	series, err := timeseries.New(times, intensities)
//
// New and Validate enforce the record shape: a non-empty intensity array
// and matching array lengths. Malformed records are rejected before any
// fitting happens (ErrEmpty, ErrLengthMismatch).
//
// # Loading Records
//
// Burst records are stored as JSON:
//
//	series, err := timeseries.LoadJSON("data/FRB180924.json")
//
// CSV loading is available for time/intensity column dumps:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.RMS = 0.42
//	series, err := timeseries.LoadCSV("burst.csv", opts)
//
// # Smoothing
//
// Intensity arrays can be denoised before range extraction and peak
// finding:
//
//	smooth := timeseries.GaussianSmooth(series.Values, 2.0)
//	coarse := timeseries.MovingAverage(series.Values, 5)
package timeseries
