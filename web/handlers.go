package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"spacex-dashboard/models"
	"spacex-dashboard/render"
	"spacex-dashboard/storage"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "dashboard.html", s.layout); err != nil {
		s.logger.Error("[web] render page: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"launches": s.charts.Dataset().Len(),
	})
}

func (s *Server) handlePie(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.charts.Pie(parseSite(r.URL.Query())))
}

func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	site, rng, ok := s.scatterInputs(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.charts.Scatter(site, rng))
}

func (s *Server) handleScatterCSV(w http.ResponseWriter, r *http.Request) {
	site, rng, ok := s.scatterInputs(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	cw, err := storage.NewCSVWriter(&buf)
	if err == nil {
		err = cw.WriteRecords(s.charts.Filter(site, rng))
	}
	if err != nil {
		s.logger.Error("[web] export csv: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to export csv")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="launches.csv"`)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.charts.Summary())
}

func (s *Server) handlePieImage(w http.ResponseWriter, r *http.Request) {
	format, ok := imageFormat(w, r)
	if !ok {
		return
	}
	pie := s.charts.Pie(parseSite(r.URL.Query()))
	s.writeImage(w, "pie", format, func(buf *bytes.Buffer) error {
		return render.Pie(buf, pie, format, s.render)
	})
}

func (s *Server) handleScatterImage(w http.ResponseWriter, r *http.Request) {
	format, ok := imageFormat(w, r)
	if !ok {
		return
	}
	site, rng, ok := s.scatterInputs(w, r)
	if !ok {
		return
	}
	scatter := s.charts.Scatter(site, rng)
	s.writeImage(w, "scatter", format, func(buf *bytes.Buffer) error {
		return render.Scatter(buf, scatter, format, s.render)
	})
}

// scatterInputs parses site and range, answering 400 itself on bad numbers.
func (s *Server) scatterInputs(w http.ResponseWriter, r *http.Request) (string, models.PayloadRange, bool) {
	q := r.URL.Query()
	rng, err := parseRange(q, s.charts.Dataset().Bounds())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return "", rng, false
	}
	return parseSite(q), rng, true
}

func (s *Server) writeImage(w http.ResponseWriter, chart string, format render.Format, draw func(*bytes.Buffer) error) {
	start := time.Now()
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		s.logger.Error("[web] render %s.%s: %v", chart, format, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}
	s.metrics.ObserveRender(chart, string(format), time.Since(start).Seconds())

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func imageFormat(w http.ResponseWriter, r *http.Request) (render.Format, bool) {
	format, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return format, true
}

// writeJSON buffers the encoding of v; an encoding failure becomes a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(map[string]string{"error": "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
