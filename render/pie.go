package render

import (
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"spacex-dashboard/models"
)

const noDataLabel = "No data"

// Pie draws p. Zero-valued slices are skipped; a pie without any positive
// value is drawn as a single grey "No data" disc.
func Pie(w io.Writer, p *models.PieChart, f Format, opts Options) error {
	width, height := opts.size()

	values := make([]chart.Value, 0, len(p.Slices))
	for _, s := range p.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: s.Label,
			Value: s.Value,
			Style: chart.Style{
				FillColor:   color(s.Color),
				StrokeColor: chart.ColorWhite,
				StrokeWidth: 1,
			},
		})
	}
	if len(values) == 0 {
		values = append(values, chart.Value{
			Label: noDataLabel,
			Value: 1,
			Style: chart.Style{FillColor: chart.ColorAlternateGray},
		})
	}

	pie := chart.PieChart{
		Title:      p.Title,
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Values:     values,
	}
	if len(values) == 1 {
		// a lone value is drawn as a full disc using the slice style, not its own
		pie.SliceStyle = values[0].Style
	}

	return writeTo(w, f, pie.Render)
}
