package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"spacex-dashboard/models"
	"spacex-dashboard/services"
	"spacex-dashboard/utils"
)

func quietLogger() *utils.Logger {
	return utils.NewLoggerTo(io.Discard, io.Discard)
}

func testCharts(t *testing.T) *services.ChartService {
	t.Helper()
	records := []*models.LaunchRecord{
		{LaunchSite: "CCAFS LC-40", PayloadMass: 0, BoosterCategory: "v1.0", Class: 0},
		{LaunchSite: "CCAFS LC-40", PayloadMass: 525, BoosterCategory: "v1.0", Class: 0},
		{LaunchSite: "VAFB SLC-4E", PayloadMass: 500, BoosterCategory: "v1.1", Class: 0},
		{LaunchSite: "KSC LC-39A", PayloadMass: 2490, BoosterCategory: "FT", Class: 1},
		{LaunchSite: "CCAFS SLC-40", PayloadMass: 3170, BoosterCategory: "FT", Class: 1},
		{LaunchSite: "KSC LC-39A", PayloadMass: 9600, BoosterCategory: "B4", Class: 1},
	}
	ds, err := services.NewDataset(records)
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	return services.NewChartService(ds, quietLogger())
}

func testServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(ServerConfig{
		Addr:   "127.0.0.1:0",
		Charts: testCharts(t),
		Logger: quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestNewServerRequiresCharts(t *testing.T) {
	if _, err := NewServer(ServerConfig{Logger: quietLogger()}); err == nil {
		t.Fatal("NewServer() without charts should fail")
	}
}

func TestIndex(t *testing.T) {
	s := testServer(t)
	w := get(t, s, "/")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	body := w.Body.String()
	for _, want := range []string{
		"SpaceX Launch Records Dashboard",
		`id="site-dropdown"`,
		`id="success-pie-chart"`,
		`id="payload-slider"`,
		`id="success-payload-scatter-chart"`,
		"All Sites",
		"Select a launch site",
		`data-low="0"`,
		`data-high="9600"`,
		`step="500"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	s := testServer(t)
	for _, path := range []string{"/static/dashboard.js", "/static/dashboard.css"} {
		if w := get(t, s, path); w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, w.Code)
		}
	}
}

func TestSliderScriptKeepsUntouchedBound(t *testing.T) {
	js := get(t, testServer(t), "/static/dashboard.js").Body.String()

	// Each handle's change must read its own input and reuse the stored value
	// for the other bound, which may not sit on a slider step.
	for _, want := range []string{
		"Number(this.value)",
		"Number(range[0])",
		"Number(range[1])",
		"slider.dataset.low",
		"slider.dataset.high",
	} {
		if !strings.Contains(js, want) {
			t.Errorf("dashboard.js missing %q", want)
		}
	}
	for _, stale := range []string{"Number(lowInput.value)", "Number(highInput.value)"} {
		if strings.Contains(js, stale) {
			t.Errorf("dashboard.js reads both handles via %q", stale)
		}
	}
}

func TestPieAPI(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name      string
		target    string
		wantTitle string
		want      map[string]float64
	}{
		{
			name:      "default is all sites",
			target:    "/api/pie",
			wantTitle: "Overall launch results from all sites",
			want:      map[string]float64{"CCAFS LC-40": 0, "VAFB SLC-4E": 0, "KSC LC-39A": 2, "CCAFS SLC-40": 1},
		},
		{
			name:      "single site",
			target:    "/api/pie?site=CCAFS+LC-40",
			wantTitle: "Launch results from site CCAFS LC-40",
			want:      map[string]float64{"Failure": 2},
		},
		{
			name:      "unknown site",
			target:    "/api/pie?site=Boca+Chica",
			wantTitle: "Launch results from site Boca Chica",
			want:      map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, s, tt.target)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}

			var pie models.PieChart
			if err := json.NewDecoder(w.Body).Decode(&pie); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if pie.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", pie.Title, tt.wantTitle)
			}
			got := make(map[string]float64, len(pie.Slices))
			for _, sl := range pie.Slices {
				got[sl.Label] = sl.Value
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("slices mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScatterAPI(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantPoints int
		wantRange  models.PayloadRange
	}{
		{"defaults to dataset bounds", "/api/scatter", http.StatusOK, 6, models.PayloadRange{Low: 0, High: 9600}},
		{"inclusive range", "/api/scatter?site=ALL&low=500&high=3170", http.StatusOK, 4, models.PayloadRange{Low: 500, High: 3170}},
		{"single site", "/api/scatter?site=KSC+LC-39A&low=0&high=10000", http.StatusOK, 2, models.PayloadRange{Low: 0, High: 10000}},
		{"low above high", "/api/scatter?low=5000&high=1000", http.StatusOK, 0, models.PayloadRange{Low: 5000, High: 1000}},
		{"only high given", "/api/scatter?high=500", http.StatusOK, 2, models.PayloadRange{Low: 0, High: 500}},
		{"bad low", "/api/scatter?low=abc", http.StatusBadRequest, 0, models.PayloadRange{}},
		{"bad high", "/api/scatter?high=1e", http.StatusBadRequest, 0, models.PayloadRange{}},
		{"NaN low", "/api/scatter?low=NaN", http.StatusBadRequest, 0, models.PayloadRange{}},
		{"infinite high", "/api/scatter?high=Inf", http.StatusBadRequest, 0, models.PayloadRange{}},
		{"infinite both", "/api/scatter?low=-Inf&high=Inf", http.StatusBadRequest, 0, models.PayloadRange{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, s, tt.target)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantStatus != http.StatusOK {
				var body map[string]string
				if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
					t.Fatalf("decode error body: %v", err)
				}
				if body["error"] == "" {
					t.Error("error body has no message")
				}
				return
			}

			var sc models.ScatterChart
			if err := json.NewDecoder(w.Body).Decode(&sc); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if sc.Len() != tt.wantPoints {
				t.Errorf("points = %d, want %d", sc.Len(), tt.wantPoints)
			}
			if sc.Range != tt.wantRange {
				t.Errorf("Range = %+v, want %+v", sc.Range, tt.wantRange)
			}
		})
	}
}

func TestScatterCSV(t *testing.T) {
	s := testServer(t)
	w := get(t, s, "/api/scatter.csv?site=KSC+LC-39A")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), w.Body.String())
	}
	if !strings.HasPrefix(lines[0], "Flight Number,Launch Site,class") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "KSC LC-39A") || !strings.HasSuffix(lines[1], "Success") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestSummaryAPI(t *testing.T) {
	s := testServer(t)
	w := get(t, s, "/api/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var report models.SummaryReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.Sites) != 4 {
		t.Errorf("sites = %d, want 4", len(report.Sites))
	}
	if report.Total.Launches != 6 || report.Total.Successes != 3 {
		t.Errorf("Total = %+v, want 6 launches / 3 successes", report.Total)
	}
}

func TestChartImages(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		target     string
		wantStatus int
		wantType   string
		wantPrefix []byte
	}{
		{"/charts/pie.svg", http.StatusOK, "image/svg+xml", nil},
		{"/charts/pie.png?site=VAFB+SLC-4E", http.StatusOK, "image/png", []byte("\x89PNG")},
		{"/charts/scatter.svg?low=0&high=10000", http.StatusOK, "image/svg+xml", nil},
		{"/charts/scatter.png?site=Nowhere", http.StatusOK, "image/png", []byte("\x89PNG")},
		{"/charts/scatter.svg?low=x", http.StatusBadRequest, "application/json", nil},
		{"/charts/scatter.svg?low=NaN&high=5000", http.StatusBadRequest, "application/json", nil},
		{"/charts/pie.gif", http.StatusNotFound, "application/json", nil},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := get(t, s, tt.target)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); ct != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.wantType)
			}
			if tt.wantType == "image/svg+xml" && !strings.Contains(w.Body.String(), "<svg") {
				t.Error("body is not an SVG document")
			}
			if tt.wantPrefix != nil && !bytes.HasPrefix(w.Body.Bytes(), tt.wantPrefix) {
				t.Errorf("body does not start with %q", tt.wantPrefix)
			}
		})
	}
}

func TestWriteJSONReportsEncodingFailure(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusOK, models.PayloadRange{Low: math.NaN(), High: 1})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("error body has no message")
	}
}

func TestHealthz(t *testing.T) {
	s := testServer(t)
	w := get(t, s, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"launches":6`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestMetrics(t *testing.T) {
	s := testServer(t)
	get(t, s, "/api/pie")
	get(t, s, "/api/pie?site=KSC+LC-39A")
	get(t, s, "/api/scatter?low=bad")
	get(t, s, "/charts/pie.svg")
	get(t, s, "/does-not-exist")

	m := s.Metrics()
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/pie", "200")); got != 2 {
		t.Errorf("/api/pie 200 count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/scatter", "400")); got != 1 {
		t.Errorf("/api/scatter 400 count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("unmatched", "404")); got != 1 {
		t.Errorf("unmatched 404 count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.renderSeconds); got != 1 {
		t.Errorf("render histogram series = %d, want 1", got)
	}

	w := get(t, s, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"spacex_dashboard_http_requests_total",
		`spacex_dashboard_launches{site="KSC LC-39A"} 2`,
		`spacex_dashboard_successful_launches{site="CCAFS SLC-40"} 1`,
		`spacex_dashboard_payload_bound_kg{bound="max"} 9600`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("/metrics missing %q", want)
		}
	}
}

func TestStartShutsDownOnCancel(t *testing.T) {
	s := testServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}

func TestStartReportsListenError(t *testing.T) {
	s, err := NewServer(ServerConfig{Addr: "127.0.0.1:99999", Charts: testCharts(t), Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("Start() on an invalid address should fail")
	}
}
