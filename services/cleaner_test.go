package services

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"spacex-dashboard/models"
)

func TestCleanerParsesRow(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawLaunch{{
		Line:            2,
		FlightNumber:    "21",
		LaunchSite:      "  KSC   LC-39A ",
		Class:           "1",
		PayloadMass:     "2490.0",
		BoosterVersion:  "F9 FT  B1031.1",
		BoosterCategory: " FT",
	}}

	got, err := c.Clean(raw)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	want := []*models.LaunchRecord{{
		FlightNumber:    21,
		LaunchSite:      "KSC LC-39A",
		PayloadMass:     2490,
		BoosterVersion:  "F9 FT B1031.1",
		BoosterCategory: "FT",
		Class:           1,
		Result:          models.ResultSuccess,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Clean() mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanerParseClass(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"1", 1, false},
		{"1.0", 1, false},
		{" 0 ", 0, false},
		{"2", 0, true},
		{"-1", 0, true},
		{"yes", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseClass(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseClass(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseClass(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerParsePayload(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"0.0", 0, false},
		{"525", 525, false},
		{"15,600", 15600, false},
		{" 3669.5 ", 3669.5, false},
		{"-1", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"", 0, true},
		{"heavy", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePayload(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePayload(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePayload(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerParseFlightNumber(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"7", 7, false},
		{"7.0", 7, false},
		{"7.5", 0, true},
		{"-3", 0, true},
		{"seven", 0, true},
	}

	for _, tt := range tests {
		got, err := parseFlightNumber(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFlightNumber(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseFlightNumber(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerRejectsMalformedRow(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawLaunch{
		{Line: 2, LaunchSite: "KSC LC-39A", Class: "1", PayloadMass: "2490", BoosterCategory: "FT"},
		{Line: 3, LaunchSite: "KSC LC-39A", Class: "1", PayloadMass: "lots", BoosterCategory: "FT"},
	}

	_, err := c.Clean(raw)
	if err == nil {
		t.Fatal("expected an error for a malformed payload")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error should name the offending line: %v", err)
	}
}

func TestCleanerRejectsEmptyStrings(t *testing.T) {
	c := NewCleaner(newTestLogger())
	tests := []struct {
		name string
		raw  *models.RawLaunch
	}{
		{"empty site", &models.RawLaunch{LaunchSite: "  ", Class: "1", PayloadMass: "1", BoosterCategory: "FT"}},
		{"empty booster category", &models.RawLaunch{LaunchSite: "KSC LC-39A", Class: "1", PayloadMass: "1", BoosterCategory: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Clean([]*models.RawLaunch{tt.raw}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
