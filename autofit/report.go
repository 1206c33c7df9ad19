package autofit

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sartorproj/goburst/exgauss"
)

// Result records one candidate component count: the fitted and initial
// parameter vectors, per-parameter uncertainties, fit statistics, and the
// derived burst quantities. Immutable once recorded.
//
// The JSON field names are the persisted report format consumed by the
// plotting tools.
type Result struct {
	Params               exgauss.Params `json:"Params"`
	InitialParams        exgauss.Params `json:"Initial params"`
	Uncertainty          []float64      `json:"Uncertainty"`
	BurstRange           [2]int         `json:"Burst range"` // absolute sample indices
	AdjustedRSquared     float64        `json:"adjusted_R^2"`
	Condition            float64        `json:"condition"`
	Timescale            float64        `json:"timescale"`
	TimescaleUncertainty float64        `json:"timescale_uncertainty"`
	BurstWidth           float64        `json:"burst_width"`
}

// Report maps each candidate component count to its Result, together with
// the selected optimum and the raw data window every candidate was fitted
// on.
type Report struct {
	Range    [2]int          `json:"range"` // raw-mode window, sample indices
	Optimum  int             `json:"optimum"`
	Unstable bool            `json:"unstable,omitempty"`
	Data     map[int]*Result `json:"data"`
}

// Summary is the read projection of a report's selected fit.
type Summary struct {
	OptimumK             int
	AdjustedRSquared     float64
	Condition            float64
	Timescale            float64
	TimescaleUncertainty float64
	BurstWidth           float64
	Unstable             bool
}

// Summary returns the selected candidate's headline quantities. A report
// whose optimum key is missing from Data, possible after loading an edited
// or truncated file, yields the zero Summary.
func (r *Report) Summary() Summary {
	opt, ok := r.Data[r.Optimum]
	if !ok {
		return Summary{}
	}
	return Summary{
		OptimumK:             r.Optimum,
		AdjustedRSquared:     opt.AdjustedRSquared,
		Condition:            opt.Condition,
		Timescale:            opt.Timescale,
		TimescaleUncertainty: opt.TimescaleUncertainty,
		BurstWidth:           opt.BurstWidth,
		Unstable:             r.Unstable,
	}
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadReport reads a previously saved report.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &r, nil
}
