package services

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"spacex-dashboard/models"
	"spacex-dashboard/utils"
)

const (
	scatterXLabel = "Payload Mass (kg)"
	scatterYLabel = "Result"
)

// ChartService computes the dashboard figures from a Dataset. Every method is
// a pure function of its arguments.
type ChartService struct {
	dataset *Dataset
	logger  *utils.Logger
}

// NewChartService wraps a loaded dataset.
func NewChartService(dataset *Dataset, logger *utils.Logger) *ChartService {
	return &ChartService{dataset: dataset, logger: logger}
}

// Dataset returns the underlying launch table.
func (s *ChartService) Dataset() *Dataset {
	return s.dataset
}

// Pie returns the success distribution across sites for ALL, or the
// Success/Failure split for a single site.
func (s *ChartService) Pie(site string) *models.PieChart {
	if site == models.AllSites {
		return s.pieAllSites()
	}

	chart := &models.PieChart{
		Title:  "Launch results from site " + site,
		Site:   site,
		Slices: []models.PieSlice{},
	}

	index := make(map[string]int)
	for _, r := range s.dataset.Filter(site, nil) {
		i, ok := index[r.Result]
		if !ok {
			i = len(chart.Slices)
			index[r.Result] = i
			chart.Slices = append(chart.Slices, models.PieSlice{
				Label: r.Result,
				Color: paletteColor(Light24, i),
			})
		}
		chart.Slices[i].Value++
	}

	s.logger.Debug("[charts] pie site=%q slices=%d", site, len(chart.Slices))
	return chart
}

// pieAllSites sums the outcome flag per site, i.e. counts successes.
func (s *ChartService) pieAllSites() *models.PieChart {
	chart := &models.PieChart{
		Title:  "Overall launch results from all sites",
		Site:   models.AllSites,
		Slices: make([]models.PieSlice, 0, len(s.dataset.sites)),
	}

	index := make(map[string]int, len(s.dataset.sites))
	for i, site := range s.dataset.sites {
		index[site] = i
		chart.Slices = append(chart.Slices, models.PieSlice{
			Label: site,
			Color: paletteColor(Plotly, i),
		})
	}
	for _, r := range s.dataset.records {
		chart.Slices[index[r.LaunchSite]].Value += float64(r.Class)
	}

	s.logger.Debug("[charts] pie site=ALL slices=%d", len(chart.Slices))
	return chart
}

// Filter returns the launches of site whose payload lies in rng inclusive.
func (s *ChartService) Filter(site string, rng models.PayloadRange) []*models.LaunchRecord {
	return s.dataset.Filter(site, &rng)
}

// Scatter plots payload mass against Result for the launches matching site
// and rng, one series per booster version category.
func (s *ChartService) Scatter(site string, rng models.PayloadRange) *models.ScatterChart {
	title := "Launch results from site " + site + " depending on Payload Mass"
	if site == models.AllSites {
		title = "Overall launch results from all sites depending on Payload Mass"
	}

	chart := &models.ScatterChart{
		Title:  title,
		Site:   site,
		Range:  rng,
		XLabel: scatterXLabel,
		YLabel: scatterYLabel,
		Series: []models.ScatterSeries{},
	}

	index := make(map[string]int)
	for _, r := range s.Filter(site, rng) {
		i, ok := index[r.BoosterCategory]
		if !ok {
			i = len(chart.Series)
			index[r.BoosterCategory] = i
			chart.Series = append(chart.Series, models.ScatterSeries{
				Name:  r.BoosterCategory,
				Color: paletteColor(Plotly, i),
			})
		}
		chart.Series[i].Points = append(chart.Series[i].Points, models.ScatterPoint{
			PayloadMass: r.PayloadMass,
			Result:      r.Result,
			LaunchSite:  r.LaunchSite,
		})
	}

	s.logger.Debug("[charts] scatter site=%q range=[%g, %g] points=%d",
		site, rng.Low, rng.High, chart.Len())
	return chart
}

// Summary aggregates launches per site in first-appearance order, plus a
// dataset-wide total.
func (s *ChartService) Summary() *models.SummaryReport {
	report := &models.SummaryReport{Sites: make([]models.SiteSummary, 0, len(s.dataset.sites))}
	index := make(map[string]int, len(s.dataset.sites))
	for i, site := range s.dataset.sites {
		index[site] = i
		report.Sites = append(report.Sites, models.SiteSummary{Site: site})
	}
	report.Total.Site = "Total"

	for _, r := range s.dataset.records {
		addToSummary(&report.Sites[index[r.LaunchSite]], r)
		addToSummary(&report.Total, r)
	}

	for i := range report.Sites {
		finishSummary(&report.Sites[i])
	}
	finishSummary(&report.Total)
	return report
}

func addToSummary(sum *models.SiteSummary, r models.LaunchRecord) {
	if sum.Launches == 0 || r.PayloadMass < sum.MinPayload {
		sum.MinPayload = r.PayloadMass
	}
	if sum.Launches == 0 || r.PayloadMass > sum.MaxPayload {
		sum.MaxPayload = r.PayloadMass
	}
	sum.Launches++
	if r.Class == 0 {
		sum.Failures++
	} else {
		sum.Successes++
	}
}

func finishSummary(sum *models.SiteSummary) {
	if sum.Launches > 0 {
		sum.SuccessRate = round2(100 * float64(sum.Successes) / float64(sum.Launches))
	}
}

// PrintSummary renders the report as a table.
func (s *ChartService) PrintSummary(w io.Writer, r *models.SummaryReport) error {
	table := tablewriter.NewWriter(w)
	table.Append([]string{"Launch Site", "Launches", "Successes", "Failures", "Success %", "Min Payload (kg)", "Max Payload (kg)"})

	rows := append(append([]models.SiteSummary{}, r.Sites...), r.Total)
	for _, sum := range rows {
		table.Append([]string{
			sum.Site,
			fmt.Sprintf("%d", sum.Launches),
			fmt.Sprintf("%d", sum.Successes),
			fmt.Sprintf("%d", sum.Failures),
			fmt.Sprintf("%.2f", sum.SuccessRate),
			fmt.Sprintf("%.0f", sum.MinPayload),
			fmt.Sprintf("%.0f", sum.MaxPayload),
		})
	}

	return table.Render()
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
