package timeseries

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// record is the on-disk JSON projection of a burst series.
type record struct {
	Name      string    `json:"name"`
	Times     []float64 `json:"times_ms"`
	Intensity []float64 `json:"intensity"`
	TimeRes   []float64 `json:"tres_ms,omitempty"`
	RMS       float64   `json:"rms"`
}

// ReadJSON decodes one burst record and validates its shape.
func ReadJSON(r io.Reader) (*Series, error) {
	var rec record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	s := &Series{
		Name:    rec.Name,
		Times:   rec.Times,
		Values:  rec.Intensity,
		TimeRes: rec.TimeRes,
		RMS:     rec.RMS,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadJSON reads one burst record from a file.
func LoadJSON(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// SaveJSON writes the series as a burst record file.
func SaveJSON(s *Series, path string) error {
	data, err := json.MarshalIndent(record{
		Name:      s.Name,
		Times:     s.Times,
		Intensity: s.Values,
		TimeRes:   s.TimeRes,
		RMS:       s.RMS,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
