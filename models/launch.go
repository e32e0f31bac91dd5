package models

// Result labels derived from the outcome flag.
const (
	ResultSuccess = "Success"
	ResultFailure = "Failure"
)

// AllSites is the selector value that disables site filtering.
const AllSites = "ALL"

// Payload slider bounds shown on the dashboard.
const (
	SliderMin  = 0
	SliderMax  = 10000
	SliderStep = 500
	SliderMark = 1000
)

// SiteOption is one entry of the launch-site dropdown.
type SiteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SiteOptions are the fixed dropdown entries, ALL first.
var SiteOptions = []SiteOption{
	{Label: "All Sites", Value: AllSites},
	{Label: "CCAFS LC-40", Value: "CCAFS LC-40"},
	{Label: "VAFB SLC-4E", Value: "VAFB SLC-4E"},
	{Label: "KSC LC-39A", Value: "KSC LC-39A"},
	{Label: "CCAFS SLC-40", Value: "CCAFS SLC-40"},
}

// RawLaunch holds one CSV row as read from disk, before cleaning and parsing.
type RawLaunch struct {
	Line            int
	FlightNumber    string
	LaunchSite      string
	Class           string
	PayloadMass     string
	BoosterVersion  string
	BoosterCategory string
}

// LaunchRecord is one launch attempt.
type LaunchRecord struct {
	FlightNumber    int     `json:"flight_number,omitempty"`
	LaunchSite      string  `json:"launch_site"`
	PayloadMass     float64 `json:"payload_mass_kg"`
	BoosterVersion  string  `json:"booster_version,omitempty"`
	BoosterCategory string  `json:"booster_version_category"`
	Class           int     `json:"class"`
	Result          string  `json:"result"`
}

// ResultLabel maps an outcome flag to its label: 0 is a failure, anything else a success.
func ResultLabel(class int) string {
	if class == 0 {
		return ResultFailure
	}
	return ResultSuccess
}

// PayloadRange is an inclusive payload mass interval in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether mass lies within [Low, High].
func (r PayloadRange) Contains(mass float64) bool {
	return r.Low <= mass && mass <= r.High
}
