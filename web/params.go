package web

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"spacex-dashboard/models"
)

// parseSite reads the site selector; an absent or blank value means ALL.
func parseSite(q url.Values) string {
	site := strings.TrimSpace(q.Get("site"))
	if site == "" {
		return models.AllSites
	}
	return site
}

// parseRange reads low and high, defaulting each to the matching dataset bound.
func parseRange(q url.Values, bounds models.PayloadRange) (models.PayloadRange, error) {
	rng := bounds

	if raw := strings.TrimSpace(q.Get("low")); raw != "" {
		v, err := parseMass("low", raw)
		if err != nil {
			return rng, err
		}
		rng.Low = v
	}
	if raw := strings.TrimSpace(q.Get("high")); raw != "" {
		v, err := parseMass("high", raw)
		if err != nil {
			return rng, err
		}
		rng.High = v
	}

	return rng, nil
}

// parseMass accepts finite numbers only; NaN and infinities are rejected.
func parseMass(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, raw)
	}
	return v, nil
}
