package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"spacex-dashboard/models"
	"spacex-dashboard/utils"
)

// Cleaner turns raw CSV rows into validated launch records.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses every raw row. The first malformed row aborts the whole load.
func (c *Cleaner) Clean(raw []*models.RawLaunch) ([]*models.LaunchRecord, error) {
	result := make([]*models.LaunchRecord, 0, len(raw))

	for _, r := range raw {
		rec, err := c.parse(r)
		if err != nil {
			return nil, fmt.Errorf("cleaner: line %d: %w", r.Line, err)
		}
		result = append(result, rec)
	}

	c.logger.Debug("[cleaner] Parsed %d launch rows", len(result))
	return result, nil
}

func (c *Cleaner) parse(r *models.RawLaunch) (*models.LaunchRecord, error) {
	site := normaliseText(r.LaunchSite)
	if site == "" {
		return nil, fmt.Errorf("empty launch site")
	}

	category := normaliseText(r.BoosterCategory)
	if category == "" {
		return nil, fmt.Errorf("empty booster version category")
	}

	class, err := parseClass(r.Class)
	if err != nil {
		return nil, err
	}

	payload, err := parsePayload(r.PayloadMass)
	if err != nil {
		return nil, err
	}

	flight, err := parseFlightNumber(r.FlightNumber)
	if err != nil {
		return nil, err
	}

	return &models.LaunchRecord{
		FlightNumber:    flight,
		LaunchSite:      site,
		PayloadMass:     payload,
		BoosterVersion:  normaliseText(r.BoosterVersion),
		BoosterCategory: category,
		Class:           class,
		Result:          models.ResultLabel(class),
	}, nil
}

// parseClass accepts 0 and 1, also written as floats ("1.0").
func parseClass(raw string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("class %q: not a number", raw)
	}
	switch v {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	}
	return 0, fmt.Errorf("class %q: must be 0 or 1", raw)
}

func parsePayload(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("payload mass %q: not a number", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("payload mass %q: must be a non-negative finite number", raw)
	}
	return v, nil
}

// parseFlightNumber returns 0 for an absent flight number.
func parseFlightNumber(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v != math.Trunc(v) {
		return 0, fmt.Errorf("flight number %q: not a non-negative integer", raw)
	}
	return int(v), nil
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
