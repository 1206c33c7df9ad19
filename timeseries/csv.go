package timeseries

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	TimeColumn  string  // Column name for time coordinates (default: "time_ms")
	ValueColumn string  // Column name for intensities (default: "intensity")
	ResColumn   string  // Column name for time resolution (optional)
	RMS         float64 // Noise RMS to attach to the record
	HasHeader   bool    // Whether CSV has a header row (default: true)
	Delimiter   rune    // Field delimiter (default: ',')
	SkipRows    int     // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		TimeColumn:  "time_ms",
		ValueColumn: "intensity",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// LoadCSV loads a burst record from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a burst record from an io.Reader. Rows with
// unparseable intensities are skipped; a missing time column synthesizes
// unit-spaced coordinates.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	timeIdx, valueIdx, resIdx := -1, -1, -1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		for i, h := range header {
			switch strings.TrimSpace(strings.Trim(h, "\"")) {
			case opts.TimeColumn:
				timeIdx = i
			case opts.ValueColumn:
				valueIdx = i
			case opts.ResColumn:
				if opts.ResColumn != "" {
					resIdx = i
				}
			}
		}
		if valueIdx == -1 {
			// Default to the last column when the header does not match.
			valueIdx = len(header) - 1
		}
	} else {
		timeIdx = 0
		valueIdx = 1
	}

	var times, values, res []float64
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if valueIdx < 0 || valueIdx >= len(rec) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[valueIdx]), 64)
		if err != nil {
			continue
		}
		values = append(values, v)

		if timeIdx >= 0 && timeIdx < len(rec) {
			if t, err := strconv.ParseFloat(strings.TrimSpace(rec[timeIdx]), 64); err == nil {
				times = append(times, t)
			}
		}
		if resIdx >= 0 && resIdx < len(rec) {
			if tr, err := strconv.ParseFloat(strings.TrimSpace(rec[resIdx]), 64); err == nil {
				res = append(res, tr)
			}
		}
	}

	if len(times) != len(values) {
		times = make([]float64, len(values))
		for i := range times {
			times[i] = float64(i)
		}
	}

	s := &Series{Times: times, Values: values, RMS: opts.RMS}
	if len(res) == len(values) {
		s.TimeRes = res
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
