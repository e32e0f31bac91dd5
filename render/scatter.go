package render

import (
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"spacex-dashboard/models"
)

const (
	failureY = 0
	successY = 1
)

// emptyRangePad widens a degenerate payload range so the x axis has extent.
const emptyRangePad = 500

// pointStyle renders points only, with no connecting line.
func pointStyle(hex string) chart.Style {
	c := color(hex)
	return chart.Style{
		StrokeWidth: chart.Disabled,
		StrokeColor: c,
		DotWidth:    5,
		DotColor:    c,
	}
}

func resultY(result string) float64 {
	if result == models.ResultFailure {
		return failureY
	}
	return successY
}

// xBounds orders the requested range and widens it when it has no extent.
func xBounds(r models.PayloadRange) (float64, float64) {
	lo, hi := r.Low, r.High
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi-lo == 0 {
		lo, hi = lo-emptyRangePad, hi+emptyRangePad
	}
	return lo, hi
}

// Scatter draws s with payload on x and Failure/Success on y. An empty
// scatter still renders its axes.
func Scatter(w io.Writer, s *models.ScatterChart, f Format, opts Options) error {
	width, height := opts.size()
	xMin, xMax := xBounds(s.Range)

	series := make([]chart.Series, 0, len(s.Series)+1)
	for _, ss := range s.Series {
		xs := make([]float64, len(ss.Points))
		ys := make([]float64, len(ss.Points))
		for i, p := range ss.Points {
			xs[i] = p.PayloadMass
			ys[i] = resultY(p.Result)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    ss.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(ss.Color),
		})
	}
	if len(series) == 0 {
		// invisible anchor so the chart has a series to lay its axes out against
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{xMin, xMax},
			YValues: []float64{failureY, successY},
			Style:   chart.Style{StrokeWidth: chart.Disabled},
		})
	}

	c := chart.Chart{
		Title:      s.Title,
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  s.XLabel,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  s.YLabel,
			// outer blank ticks keep a half-step margin around the two rows
			Ticks: []chart.Tick{
				{Value: failureY - 0.5},
				{Value: failureY, Label: models.ResultFailure},
				{Value: successY, Label: models.ResultSuccess},
				{Value: successY + 0.5},
			},
		},
		Series: series,
	}
	if len(s.Series) > 0 {
		c.Elements = []chart.Renderable{chart.Legend(&c)}
	}

	return writeTo(w, f, c.Render)
}
