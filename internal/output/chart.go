package output

import (
	"math"
	"strconv"
	"strings"

	"github.com/rpgo/fire-projector/internal/domain"
)

// Chart is a precomputed SVG line chart of the projection, so reports need
// no client-side scripting.
type Chart struct {
	Width, Height            int
	Left, Top, Right, Bottom float64
	YLabelX, XLabelY         float64
	Series                   []ChartSeries
	XTicks                   []ChartTick
	YTicks                   []ChartTick
}

// ChartSeries is one polyline.
type ChartSeries struct {
	Name   string
	Color  string
	Points string
}

// ChartTick is an axis label at a pixel position.
type ChartTick struct {
	Pos   float64
	Label string
}

const (
	chartMarginLeft   = 90.0
	chartMarginRight  = 20.0
	chartMarginTop    = 20.0
	chartMarginBottom = 40.0
	chartYTicks       = 5
	chartMaxXTicks    = 10
)

// BuildChart lays out portfolio, income and expenses against the year axis.
// Non-finite values are left out of the lines.
func BuildChart(report *domain.ProjectionReport, width, height int) Chart {
	c := Chart{
		Width:  width,
		Height: height,
		Left:   chartMarginLeft,
		Top:    chartMarginTop,
		Right:  float64(width) - chartMarginRight,
		Bottom: float64(height) - chartMarginBottom,
	}
	c.YLabelX = c.Left - 6
	c.XLabelY = c.Bottom + 16
	snapshots := report.Result.Snapshots
	if len(snapshots) == 0 {
		return c
	}

	lo, hi := 0.0, 0.0
	for _, s := range snapshots {
		for _, v := range []float64{s.Portfolio, s.Income, s.Expenses} {
			if isFinite(v) {
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	lastYear := snapshots[len(snapshots)-1].Year
	x := func(year int) float64 {
		if lastYear == 0 {
			return c.Left
		}
		return c.Left + (c.Right-c.Left)*float64(year)/float64(lastYear)
	}
	y := func(v float64) float64 {
		return c.Bottom - (c.Bottom-c.Top)*(v-lo)/(hi-lo)
	}

	series := []struct {
		name  string
		color string
		value func(domain.YearSnapshot) float64
	}{
		{"Portfolio", "#1f77b4", func(s domain.YearSnapshot) float64 { return s.Portfolio }},
		{"Post-tax income", "#2ca02c", func(s domain.YearSnapshot) float64 { return s.Income }},
		{"Expenses", "#d62728", func(s domain.YearSnapshot) float64 { return s.Expenses }},
	}
	for _, sr := range series {
		pts := make([]string, 0, len(snapshots))
		for _, s := range snapshots {
			v := sr.value(s)
			if !isFinite(v) {
				continue
			}
			pts = append(pts, formatPoint(x(s.Year), y(v)))
		}
		c.Series = append(c.Series, ChartSeries{Name: sr.name, Color: sr.color, Points: strings.Join(pts, " ")})
	}

	for i := 0; i <= chartYTicks; i++ {
		v := lo + (hi-lo)*float64(i)/chartYTicks
		c.YTicks = append(c.YTicks, ChartTick{Pos: y(v), Label: FormatAmount(v, report.Display)})
	}

	step := 1
	if lastYear > chartMaxXTicks {
		step = int(math.Ceil(float64(lastYear) / chartMaxXTicks))
	}
	for year := 0; year <= lastYear; year += step {
		c.XTicks = append(c.XTicks, ChartTick{Pos: x(year), Label: intToString(year)})
	}
	return c
}

func formatPoint(x, y float64) string {
	return strconv.FormatFloat(x, 'f', 1, 64) + "," + strconv.FormatFloat(y, 'f', 1, 64)
}
