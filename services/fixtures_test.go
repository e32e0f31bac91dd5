package services

import (
	"bytes"
	"testing"

	"spacex-dashboard/models"
	"spacex-dashboard/utils"
)

func newTestLogger() *utils.Logger {
	var buf bytes.Buffer
	return utils.NewLoggerTo(&buf, &buf)
}

func sampleLaunches() []*models.LaunchRecord {
	return []*models.LaunchRecord{
		{FlightNumber: 1, LaunchSite: "CCAFS LC-40", PayloadMass: 0, BoosterCategory: "v1.0", Class: 0},
		{FlightNumber: 2, LaunchSite: "CCAFS LC-40", PayloadMass: 525, BoosterCategory: "v1.0", Class: 0},
		{FlightNumber: 3, LaunchSite: "CCAFS LC-40", PayloadMass: 3170, BoosterCategory: "v1.1", Class: 1},
		{FlightNumber: 4, LaunchSite: "VAFB SLC-4E", PayloadMass: 500, BoosterCategory: "v1.1", Class: 0},
		{FlightNumber: 5, LaunchSite: "KSC LC-39A", PayloadMass: 2490, BoosterCategory: "FT", Class: 1},
		{FlightNumber: 6, LaunchSite: "KSC LC-39A", PayloadMass: 5600, BoosterCategory: "FT", Class: 0},
		{FlightNumber: 7, LaunchSite: "KSC LC-39A", PayloadMass: 5300, BoosterCategory: "FT", Class: 1},
		{FlightNumber: 8, LaunchSite: "CCAFS SLC-40", PayloadMass: 3669, BoosterCategory: "B4", Class: 1},
		{FlightNumber: 9, LaunchSite: "CCAFS LC-40", PayloadMass: 4707, BoosterCategory: "FT", Class: 1},
		{FlightNumber: 10, LaunchSite: "CCAFS SLC-40", PayloadMass: 9600, BoosterCategory: "B5", Class: 1},
	}
}

func sampleDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := NewDataset(sampleLaunches())
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	return ds
}

func sampleService(t *testing.T) *ChartService {
	t.Helper()
	return NewChartService(sampleDataset(t), newTestLogger())
}
