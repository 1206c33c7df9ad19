package timeseries

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrLengthMismatch reports a record whose sample arrays disagree in length.
	ErrLengthMismatch = errors.New("time and intensity arrays must have the same length")

	// ErrEmpty reports a record with no samples.
	ErrEmpty = errors.New("series has no samples")
)

// Series is one burst record: equally spaced time coordinates with
// intensity samples, per-sample time resolution, and a noise RMS estimate.
// It is not mutated by the fitting pipeline.
type Series struct {
	Name    string
	Times   []float64 // milliseconds
	Values  []float64
	TimeRes []float64 // per-sample time resolution, milliseconds
	RMS     float64   // off-burst noise RMS
}

// New creates a series from time coordinates and intensities, validating
// the record shape.
func New(times, values []float64) (*Series, error) {
	s := &Series{Times: times, Values: values}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the malformed-input conditions: empty record or
// mismatched array lengths.
func (s *Series) Validate() error {
	if len(s.Values) == 0 {
		return ErrEmpty
	}
	if len(s.Times) != len(s.Values) {
		return fmt.Errorf("%w: %d times, %d intensities", ErrLengthMismatch, len(s.Times), len(s.Values))
	}
	if len(s.TimeRes) != 0 && len(s.TimeRes) != len(s.Values) {
		return fmt.Errorf("%w: %d resolutions, %d intensities", ErrLengthMismatch, len(s.TimeRes), len(s.Values))
	}
	return nil
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the intensities.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Std calculates the sample standard deviation of the intensities.
func (s *Series) Std() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(s.Values)-1))
}

// Min returns the minimum intensity.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum intensity.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// ArgMax returns the index of the maximum intensity.
func (s *Series) ArgMax() int {
	idx := 0
	for i, v := range s.Values {
		if v > s.Values[idx] {
			idx = i
		}
	}
	return idx
}

// Slice returns a copy of the series restricted to [start, end).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Name: s.Name, RMS: s.RMS}
	}

	out := &Series{
		Name:   s.Name,
		Times:  append([]float64(nil), s.Times[start:end]...),
		Values: append([]float64(nil), s.Values[start:end]...),
		RMS:    s.RMS,
	}
	if len(s.TimeRes) >= end {
		out.TimeRes = append([]float64(nil), s.TimeRes[start:end]...)
	}
	return out
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	return &Series{
		Name:    s.Name,
		Times:   append([]float64(nil), s.Times...),
		Values:  append([]float64(nil), s.Values...),
		TimeRes: append([]float64(nil), s.TimeRes...),
		RMS:     s.RMS,
	}
}
