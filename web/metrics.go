package web

import (
	"github.com/prometheus/client_golang/prometheus"

	"spacex-dashboard/services"
)

// Metrics holds the dashboard's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal *prometheus.CounterVec
	renderSeconds *prometheus.HistogramVec
}

// NewMetrics registers request, render and dataset metrics for charts.
func NewMetrics(charts *services.ChartService) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spacex_dashboard_http_requests_total",
				Help: "HTTP requests by route pattern and status code",
			},
			[]string{"route", "code"},
		),
		renderSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spacex_dashboard_render_seconds",
				Help:    "Time spent rendering chart images",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"chart", "format"},
		),
	}

	m.registry.MustRegister(m.requestsTotal, m.renderSeconds, newDatasetCollector(charts))
	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest counts one served request.
func (m *Metrics) ObserveRequest(route, code string) {
	m.requestsTotal.WithLabelValues(route, code).Inc()
}

// ObserveRender records how long one chart image took to draw.
func (m *Metrics) ObserveRender(chart, format string, seconds float64) {
	m.renderSeconds.WithLabelValues(chart, format).Observe(seconds)
}

// datasetCollector reports the loaded dataset's per-site totals on every scrape.
type datasetCollector struct {
	charts *services.ChartService

	launches  *prometheus.GaugeVec
	successes *prometheus.GaugeVec
	payload   *prometheus.GaugeVec
}

func newDatasetCollector(charts *services.ChartService) *datasetCollector {
	return &datasetCollector{
		charts: charts,
		launches: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "spacex_dashboard_launches",
				Help: "Launch records loaded, by launch site",
			},
			[]string{"site"},
		),
		successes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "spacex_dashboard_successful_launches",
				Help: "Successful launches loaded, by launch site",
			},
			[]string{"site"},
		),
		payload: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "spacex_dashboard_payload_bound_kg",
				Help: "Global payload mass bounds of the dataset",
			},
			[]string{"bound"},
		),
	}
}

// Describe implements prometheus.Collector.
func (c *datasetCollector) Describe(ch chan<- *prometheus.Desc) {
	c.launches.Describe(ch)
	c.successes.Describe(ch)
	c.payload.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *datasetCollector) Collect(ch chan<- prometheus.Metric) {
	report := c.charts.Summary()

	c.launches.Reset()
	c.successes.Reset()
	for _, s := range report.Sites {
		c.launches.WithLabelValues(s.Site).Set(float64(s.Launches))
		c.successes.WithLabelValues(s.Site).Set(float64(s.Successes))
	}
	c.payload.WithLabelValues("min").Set(report.Total.MinPayload)
	c.payload.WithLabelValues("max").Set(report.Total.MaxPayload)

	c.launches.Collect(ch)
	c.successes.Collect(ch)
	c.payload.Collect(ch)
}
