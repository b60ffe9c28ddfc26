package render

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"jobsight/internal/core/domain"
)

// chart dimensions for exported PNGs.
const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// Histogram renders the experience distribution as a PNG bar chart, one
// bar per bin labelled with the bin's lower bound.
func Histogram(bins []domain.HistogramBin, title string) ([]byte, error) {
	values := make(plotter.Values, len(bins))
	labels := make([]string, len(bins))
	for i, b := range bins {
		values[i] = float64(b.Count)
		labels[i] = fmt.Sprintf("%.1f", b.Low)
	}
	return barPNG(values, labels, title, "Experience (years)")
}

// BarChart renders (label, count) pairs as a PNG bar chart. When limit is
// positive only the first limit categories are drawn; the input is already
// ordered by descending count.
func BarChart(counts []domain.CategoryCount, title, xLabel string, limit int) ([]byte, error) {
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, cc := range counts {
		values[i] = float64(cc.Count)
		labels[i] = cc.Label
	}
	return barPNG(values, labels, title, xLabel)
}

func barPNG(values plotter.Values, labels []string, title, xLabel string) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Count"
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = -0.9

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)

	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write png: %w", err)
	}
	return buf.Bytes(), nil
}
