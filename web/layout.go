package web

import (
	"strconv"

	"spacex-dashboard/models"
	"spacex-dashboard/services"
)

// Element ids the page script binds to.
const (
	SiteDropdownID   = "site-dropdown"
	PieChartID       = "success-pie-chart"
	PayloadSliderID  = "payload-slider"
	ScatterChartID   = "success-payload-scatter-chart"
	dashboardHeading = "SpaceX Launch Records Dashboard"
	sitePlaceholder  = "Select a launch site"
)

// SliderMark is one labelled tick of the payload range selector.
type SliderMark struct {
	Value int
	Label string
}

// Layout is the static description of the dashboard page.
type Layout struct {
	Title       string
	Placeholder string
	Options     []models.SiteOption
	DefaultSite string

	SliderMin  int
	SliderMax  int
	SliderStep int
	Marks      []SliderMark

	// Initial slider selection, the dataset's payload bounds.
	Low  float64
	High float64

	DropdownID string
	PieID      string
	SliderID   string
	ScatterID  string
}

// BuildLayout describes the page for ds. It has no side effects.
func BuildLayout(ds *services.Dataset) Layout {
	l := Layout{
		Title:       dashboardHeading,
		Placeholder: sitePlaceholder,
		Options:     append([]models.SiteOption(nil), models.SiteOptions...),
		DefaultSite: models.AllSites,
		SliderMin:   models.SliderMin,
		SliderMax:   models.SliderMax,
		SliderStep:  models.SliderStep,
		Low:         ds.MinPayload(),
		High:        ds.MaxPayload(),
		DropdownID:  SiteDropdownID,
		PieID:       PieChartID,
		SliderID:    PayloadSliderID,
		ScatterID:   ScatterChartID,
	}
	for v := models.SliderMin; v <= models.SliderMax; v += models.SliderMark {
		l.Marks = append(l.Marks, SliderMark{Value: v, Label: strconv.Itoa(v)})
	}
	return l
}
