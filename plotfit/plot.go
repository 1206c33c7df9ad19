// Package plotfit renders diagnostic figures for fitted burst profiles.
package plotfit

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/sartorproj/goburst/autofit"
	"github.com/sartorproj/goburst/exgauss"
	"github.com/sartorproj/goburst/stats"
	"github.com/sartorproj/goburst/timeseries"
)

var (
	rawColor       = color.RGBA{R: 0xcc, A: 0xff}
	fitColor       = color.RGBA{A: 0xff}
	componentColor = color.RGBA{B: 0xcc, A: 0xff}
	boundColor     = color.RGBA{G: 0xa0, A: 0xff}
	residualColor  = color.RGBA{A: 0x60}
)

// Fitted writes the diagnostic figure for candidate k of a report: a
// residuals-over-RMS scatter above the raw signal, the total fitted curve,
// each component as a dotted line, and vertical markers at the burst
// bounds. The figure is saved as PNG.
func Fitted(series *timeseries.Series, report *autofit.Report, k int, path string) error {
	d, ok := report.Data[k]
	if !ok {
		return fmt.Errorf("no candidate N=%d in report", k)
	}
	low, high := report.Range[0], report.Range[1]
	xs := series.Times[low:high]
	ys := series.Values[low:high]

	resPlot, err := residualPlot(xs, ys, d.Params, series.RMS)
	if err != nil {
		return err
	}
	mainPlot, err := fitPlot(xs, ys, d, k, low)
	if err != nil {
		return err
	}
	return writeStack(resPlot, mainPlot, path)
}

// InitialOverlay writes a figure of the smoothed signal against the curve
// produced by candidate k's initial parameter guess.
func InitialOverlay(series *timeseries.Series, report *autofit.Report, k int, path string) error {
	d, ok := report.Data[k]
	if !ok {
		return fmt.Errorf("no candidate N=%d in report", k)
	}
	low, high := report.Range[0], report.Range[1]
	xs := series.Times[low:high]
	ys := series.Values[low:high]

	p := plot.New()
	p.Title.Text = "Estimated Parameters"
	p.X.Label.Text = "Time (ms)"
	p.Y.Label.Text = "Intensity"

	raw, err := line(xs, ys, rawColor, nil)
	if err != nil {
		return err
	}
	guess, err := line(xs, exgauss.EvaluateAll(xs, d.InitialParams), fitColor, nil)
	if err != nil {
		return err
	}
	p.Add(raw, guess)
	p.Legend.Add("Smoothed FRB", raw)
	p.Legend.Add("Estimated params", guess)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// residualPlot builds the residuals/RMS scatter subplot.
func residualPlot(xs, ys []float64, params exgauss.Params, rms float64) (*plot.Plot, error) {
	if rms == 0 {
		rms = 1
	}
	res := stats.Residuals(xs, ys, params)

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = res[i] / rms
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = residualColor
	scatter.GlyphStyle.Radius = vg.Points(1.5)

	p := plot.New()
	p.Y.Label.Text = "Residuals / RMS"
	p.Add(scatter)
	return p, nil
}

// fitPlot builds the main subplot: raw signal, total fit, dotted
// components, and burst-bound markers. windowLow converts the absolute
// burst-range indices back into the plotted window.
func fitPlot(xs, ys []float64, d *autofit.Result, k, windowLow int) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Time (ms)"
	p.Y.Label.Text = "Intensity"

	raw, err := line(xs, ys, rawColor, nil)
	if err != nil {
		return nil, err
	}
	fitted, err := line(xs, exgauss.EvaluateAll(xs, d.Params), fitColor, nil)
	if err != nil {
		return nil, err
	}
	p.Add(raw, fitted)
	p.Legend.Add("FRB", raw)
	p.Legend.Add(fmt.Sprintf("N=%d", k), fitted)

	dotted := []vg.Length{vg.Points(1), vg.Points(3)}
	for i := 0; i < d.Params.NumComponents(); i++ {
		comp, err := line(xs, exgauss.EvaluateAll(xs, d.Params.ComponentParams(i)), componentColor, dotted)
		if err != nil {
			return nil, err
		}
		p.Add(comp)
	}

	ymin, ymax := minMax(ys)
	for _, bound := range d.BurstRange {
		idx := bound - windowLow
		if idx < 0 || idx >= len(xs) {
			continue
		}
		marker, err := line([]float64{xs[idx], xs[idx]}, []float64{ymin, ymax}, boundColor, nil)
		if err != nil {
			return nil, err
		}
		p.Add(marker)
	}
	return p, nil
}

// writeStack draws two x-aligned subplots stacked vertically into one PNG.
func writeStack(top, bottom *plot.Plot, path string) error {
	bottom.X.Min, bottom.X.Max = top.X.Min, top.X.Max

	img := vgimg.New(6*vg.Inch, 6*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Millimeter}

	plots := [][]*plot.Plot{{top}, {bottom}}
	canvases := plot.Align(plots, tiles, dc)
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}
	return nil
}

func line(xs, ys []float64, c color.Color, dashes []vg.Length) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.Color = c
	l.Dashes = dashes
	return l, nil
}

func minMax(ys []float64) (lo, hi float64) {
	lo, hi = ys[0], ys[0]
	for _, y := range ys[1:] {
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	return lo, hi
}
