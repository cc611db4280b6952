package report

import (
	"fmt"
	"image/color"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"RateSpread/internal/domain/models"
	"RateSpread/internal/services/regression"
	"RateSpread/pkg/config"
)

var (
	lineBlue   = color.NRGBA{R: 0x1f, G: 0x4e, B: 0xd8, A: 0xff}
	fillBlue   = color.NRGBA{R: 0x1f, G: 0x4e, B: 0xd8, A: 0x40}
	meanRed    = color.NRGBA{R: 0xd6, G: 0x2b, B: 0x2b, A: 0xff}
	bandGray   = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x33}
	fitColors  = []color.NRGBA{meanRed, {R: 0x18, G: 0x8a, B: 0x3c, A: 0xff}, {R: 0x8a, G: 0x2b, B: 0xb8, A: 0xff}}
	scatterDot = color.NRGBA{R: 0x1f, G: 0x4e, B: 0xd8, A: 0x60}
)

// PlotSpread renders the spread history line chart with a dashed mean
// reference line and gray bands over the stress windows that fall fully
// inside the chart's own date range.
func PlotSpread(path string, sp *models.SpreadSeries, title, ylabel string, stress []config.StressPeriod) error {
	if sp.Len() == 0 {
		return fmt.Errorf("plot %s: empty spread series", path)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = ylabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, sp.Len())
	lo, hi := sp.Rows[0].Spread, sp.Rows[0].Spread
	for i, r := range sp.Rows {
		xys[i].X = float64(r.Date.Unix())
		xys[i].Y = r.Spread
		if r.Spread < lo {
			lo = r.Spread
		}
		if r.Spread > hi {
			hi = r.Spread
		}
	}
	first, last := sp.Rows[0].Date, sp.Rows[sp.Len()-1].Date

	// Stress bands go in first so the series draws on top.
	for _, sw := range stress {
		r, err := sw.Range()
		if err != nil {
			continue
		}
		if r[0].Before(first) || r[1].After(last) {
			continue
		}
		band, err := plotter.NewPolygon(plotter.XYs{
			{X: float64(r[0].Unix()), Y: lo},
			{X: float64(r[1].Unix()), Y: lo},
			{X: float64(r[1].Unix()), Y: hi},
			{X: float64(r[0].Unix()), Y: hi},
		})
		if err != nil {
			return fmt.Errorf("stress band %s: %w", sw.Name, err)
		}
		band.Color = bandGray
		band.LineStyle.Width = 0
		p.Add(band)
	}

	// Shaded area under the series.
	fill := make(plotter.XYs, 0, sp.Len()+2)
	fill = append(fill, plotter.XY{X: xys[0].X, Y: 0})
	fill = append(fill, xys...)
	fill = append(fill, plotter.XY{X: xys[len(xys)-1].X, Y: 0})
	area, err := plotter.NewPolygon(fill)
	if err != nil {
		return fmt.Errorf("fill area: %w", err)
	}
	area.Color = fillBlue
	area.LineStyle.Width = 0
	p.Add(area)

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("spread line: %w", err)
	}
	line.Color = lineBlue
	line.Width = vg.Points(0.8)
	p.Add(line)

	mean := Describe(sp.Spreads()).Mean
	meanLine, err := plotter.NewLine(plotter.XYs{
		{X: xys[0].X, Y: mean},
		{X: xys[len(xys)-1].X, Y: mean},
	})
	if err != nil {
		return fmt.Errorf("mean line: %w", err)
	}
	meanLine.Color = meanRed
	meanLine.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(meanLine)
	p.Legend.Add(fmt.Sprintf("Mean: %.1f bps", mean), meanLine)
	p.Legend.Top = true

	return p.Save(14*vg.Inch, 7*vg.Inch, path)
}

// PlotRates renders both input rate columns of a spread series on one
// chart for comparison.
func PlotRates(path string, sp *models.SpreadSeries, title string) error {
	if sp.Len() == 0 {
		return fmt.Errorf("plot %s: empty spread series", path)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Rate (%)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())

	a := make(plotter.XYs, sp.Len())
	b := make(plotter.XYs, sp.Len())
	for i, r := range sp.Rows {
		x := float64(r.Date.Unix())
		a[i] = plotter.XY{X: x, Y: r.A}
		b[i] = plotter.XY{X: x, Y: r.B}
	}

	lineA, err := plotter.NewLine(a)
	if err != nil {
		return fmt.Errorf("rate line %s: %w", sp.LabelA, err)
	}
	lineA.Color = lineBlue
	p.Add(lineA)
	p.Legend.Add(sp.LabelA, lineA)

	lineB, err := plotter.NewLine(b)
	if err != nil {
		return fmt.Errorf("rate line %s: %w", sp.LabelB, err)
	}
	lineB.Color = meanRed
	p.Add(lineB)
	p.Legend.Add(sp.LabelB, lineB)
	p.Legend.Top = true

	return p.Save(14*vg.Inch, 7*vg.Inch, path)
}

// PlotRegression renders one scatter-plus-fit panel per fit, side by
// side. Fit lines are evaluated over x sorted ascending so they render
// as curves rather than zigzags.
func PlotRegression(path string, x, y []float64, fits []*models.RegressionFit, xLabel, yLabel string) error {
	if len(fits) == 0 {
		return fmt.Errorf("plot %s: no fits", path)
	}

	sortedX := make([]float64, len(x))
	copy(sortedX, x)
	sort.Float64s(sortedX)

	scatter := make(plotter.XYs, len(x))
	for i := range x {
		scatter[i] = plotter.XY{X: x[i], Y: y[i]}
	}

	panels := make([]*plot.Plot, len(fits))
	for i, fit := range fits {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("Degree %d (R² = %.4f)", fit.Degree, fit.R2)
		p.X.Label.Text = xLabel
		p.Y.Label.Text = yLabel
		p.Add(plotter.NewGrid())

		dots, err := plotter.NewScatter(scatter)
		if err != nil {
			return fmt.Errorf("scatter: %w", err)
		}
		dots.GlyphStyle = draw.GlyphStyle{Color: scatterDot, Radius: vg.Points(1.5), Shape: draw.CircleGlyph{}}
		p.Add(dots)
		p.Legend.Add("Actual", dots)

		curve := make(plotter.XYs, len(sortedX))
		for j, v := range sortedX {
			curve[j] = plotter.XY{X: v, Y: regression.Predict(fit, v)}
		}
		fitLine, err := plotter.NewLine(curve)
		if err != nil {
			return fmt.Errorf("fit line degree %d: %w", fit.Degree, err)
		}
		fitLine.Color = fitColors[i%len(fitColors)]
		fitLine.Width = vg.Points(2)
		p.Add(fitLine)
		p.Legend.Add(fmt.Sprintf("Degree %d fit", fit.Degree), fitLine)
		p.Legend.Top = true

		panels[i] = p
	}

	img := vgimg.New(vg.Length(len(fits))*6*vg.Inch, 5*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(fits),
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{panels}, tiles, dc)
	for i, p := range panels {
		p.Draw(canvases[0][i])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
