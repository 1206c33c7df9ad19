package timeseries

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	s, err := New([]float64{0, 1, 2}, []float64{5, 6, 7})
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	_, err = New([]float64{0, 1}, []float64{5, 6, 7})
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = New(nil, nil)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestValidateTimeResolution(t *testing.T) {
	s := &Series{
		Times:   []float64{0, 1, 2},
		Values:  []float64{5, 6, 7},
		TimeRes: []float64{0.1},
	}
	require.ErrorIs(t, s.Validate(), ErrLengthMismatch)

	s.TimeRes = []float64{0.1, 0.1, 0.1}
	require.NoError(t, s.Validate())
}

func TestSummaryStatistics(t *testing.T) {
	s, err := New([]float64{0, 1, 2, 3}, []float64{1, 3, 5, 7})
	require.NoError(t, err)

	require.InDelta(t, 4.0, s.Mean(), 1e-12)
	require.InDelta(t, 1.0, s.Min(), 1e-12)
	require.InDelta(t, 7.0, s.Max(), 1e-12)
	require.Equal(t, 3, s.ArgMax())
	require.InDelta(t, math.Sqrt(20.0/3), s.Std(), 1e-12)
}

func TestSliceAndCopy(t *testing.T) {
	s := &Series{
		Name:    "test",
		Times:   []float64{0, 1, 2, 3, 4},
		Values:  []float64{1, 2, 3, 4, 5},
		TimeRes: []float64{.1, .1, .1, .1, .1},
		RMS:     0.5,
	}

	sub := s.Slice(1, 3)
	require.Equal(t, []float64{1, 2}, sub.Times)
	require.Equal(t, []float64{2, 3}, sub.Values)
	require.Equal(t, 0.5, sub.RMS)
	require.Equal(t, "test", sub.Name)

	// Out-of-bounds indices clamp.
	require.Equal(t, 5, s.Slice(-2, 99).Len())
	require.Equal(t, 0, s.Slice(3, 1).Len())

	dup := s.Copy()
	dup.Values[0] = -1
	require.Equal(t, 1.0, s.Values[0])
}

func TestMovingAverage(t *testing.T) {
	constant := []float64{3, 3, 3, 3, 3, 3}
	out := MovingAverage(constant, 5)
	require.Len(t, out, len(constant))
	for _, v := range out {
		require.InDelta(t, 3.0, v, 1e-12)
	}

	// window <= 1 is a copy
	vals := []float64{1, 2, 3}
	require.Equal(t, vals, MovingAverage(vals, 1))
}

func TestGaussianSmooth(t *testing.T) {
	// A spike spreads out but keeps its mass away from the edges.
	vals := make([]float64, 101)
	vals[50] = 10

	out := GaussianSmooth(vals, 2)
	require.Len(t, out, len(vals))
	require.Less(t, out[50], 10.0)
	require.Greater(t, out[48], 0.0)

	sum := 0.0
	for _, v := range out {
		sum += v
	}
	require.InDelta(t, 10.0, sum, 1e-9)

	require.Equal(t, vals, GaussianSmooth(vals, 0))
}

func TestJSONRoundTrip(t *testing.T) {
	s := &Series{
		Name:    "FRB000000",
		Times:   []float64{0, 0.1, 0.2},
		Values:  []float64{1, 5, 2},
		TimeRes: []float64{0.1, 0.1, 0.1},
		RMS:     0.3,
	}

	path := t.TempDir() + "/burst.json"
	require.NoError(t, SaveJSON(s, path))

	loaded, err := LoadJSON(path)
	require.NoError(t, err)
	require.Equal(t, s, loaded)
}

func TestReadJSONMalformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(
		`{"name":"x","times_ms":[0,1],"intensity":[1,2,3],"rms":0.1}`))
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = ReadJSON(strings.NewReader(`{"name":"x","rms":0.1}`))
	require.ErrorIs(t, err, ErrEmpty)

	_, err = ReadJSON(strings.NewReader(`{not json`))
	require.Error(t, err)
}

func TestLoadCSVFromReader(t *testing.T) {
	csvData := "time_ms,intensity,tres_ms\n0.0,1.5,0.1\n0.1,2.5,0.1\n0.2,1.0,0.1\n"

	opts := DefaultCSVOptions()
	opts.ResColumn = "tres_ms"
	opts.RMS = 0.2

	s, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0.1, 0.2}, s.Times)
	require.Equal(t, []float64{1.5, 2.5, 1.0}, s.Values)
	require.Equal(t, []float64{0.1, 0.1, 0.1}, s.TimeRes)
	require.Equal(t, 0.2, s.RMS)
}

func TestLoadCSVSynthesizesTimes(t *testing.T) {
	csvData := "intensity\n1.5\n2.5\n1.0\n"

	s, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2}, s.Times)
	require.Equal(t, []float64{1.5, 2.5, 1.0}, s.Values)
}
