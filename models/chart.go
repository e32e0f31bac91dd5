package models

// PieSlice is one category of a pie chart.
type PieSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// PieChart is the figure returned for the site dropdown.
type PieChart struct {
	Title  string     `json:"title"`
	Site   string     `json:"site"`
	Slices []PieSlice `json:"slices"`
}

// Total returns the sum of all slice values.
func (p *PieChart) Total() float64 {
	var total float64
	for _, s := range p.Slices {
		total += s.Value
	}
	return total
}

// ScatterPoint is one plotted launch.
type ScatterPoint struct {
	PayloadMass float64 `json:"x"`
	Result      string  `json:"y"`
	LaunchSite  string  `json:"launch_site"`
}

// ScatterSeries groups the points of one booster version category.
type ScatterSeries struct {
	Name   string         `json:"name"`
	Color  string         `json:"color"`
	Points []ScatterPoint `json:"points"`
}

// ScatterChart is the figure returned for the site dropdown plus payload slider.
type ScatterChart struct {
	Title  string          `json:"title"`
	Site   string          `json:"site"`
	Range  PayloadRange    `json:"range"`
	XLabel string          `json:"x_label"`
	YLabel string          `json:"y_label"`
	Series []ScatterSeries `json:"series"`
}

// Len returns the number of plotted points across all series.
func (s *ScatterChart) Len() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Points)
	}
	return n
}

// SiteSummary aggregates the launches of one site.
type SiteSummary struct {
	Site        string  `json:"site"`
	Launches    int     `json:"launches"`
	Successes   int     `json:"successes"`
	Failures    int     `json:"failures"`
	SuccessRate float64 `json:"success_rate"`
	MinPayload  float64 `json:"min_payload_kg"`
	MaxPayload  float64 `json:"max_payload_kg"`
}

// SummaryReport holds per-site summaries in first-appearance order plus a dataset-wide total.
type SummaryReport struct {
	Sites []SiteSummary `json:"sites"`
	Total SiteSummary   `json:"total"`
}
