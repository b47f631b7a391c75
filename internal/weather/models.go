package weather

import (
	"encoding/json"
	"fmt"
)

// Location represents a named coordinate pair we build a yearly report for.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Key returns a canonical string key for logging.
func (l Location) Key() string {
	return fmt.Sprintf("%s(%g,%g)", l.Name, l.Latitude, l.Longitude)
}

// Series is an ordered list of daily values. A JSON null series decodes as empty,
// a null element inside the series is rejected.
type Series []float64

func (s *Series) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Series, 0, len(raw))
	for i, v := range raw {
		if v == nil {
			return fmt.Errorf("null value at index %d", i)
		}
		out = append(out, *v)
	}
	*s = out
	return nil
}

// DailyWeather holds the daily arrays returned by the archive API.
// The series are expected to have one entry per day but this is not enforced.
type DailyWeather struct {
	Time             []string `json:"time"`
	PrecipitationSum Series   `json:"precipitation_sum"`
	Temperature2mMax Series   `json:"temperature_2m_max"`
	Temperature2mMin Series   `json:"temperature_2m_min"`
}

// LocationResult is the per-location figure used for ranking.
type LocationResult struct {
	Name               string  `json:"name"`
	TotalRain          float64 `json:"totalRainMm"`
	AverageTemperature float64 `json:"averageTemperatureC"`
}

// LocationSummary is the full per-location block of a report.
// Pointer fields are nil when the value is absent.
type LocationSummary struct {
	Name               string   `json:"name"`
	Days               int      `json:"days"`
	TotalRain          float64  `json:"totalRainMm"`
	AverageMax         float64  `json:"averageMaxC"`
	AverageMin         float64  `json:"averageMinC"`
	AverageTemperature *float64 `json:"averageTemperatureC"`
	HottestDay         *float64 `json:"hottestDayC"`
	ColdestDay         *float64 `json:"coldestDayC"`
}

// FetchFailure records a location that contributed no data.
type FetchFailure struct {
	Location Location `json:"location"`
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
}

// LocationWeather pairs a location with its successfully fetched data.
type LocationWeather struct {
	Location Location
	Daily    DailyWeather
}

// Report is the outcome of one run over a set of locations.
type Report struct {
	RunID     string            `json:"runId,omitempty"`
	Locations []LocationSummary `json:"locations"`
	Rainiest  *LocationResult   `json:"rainiest"`
	Hottest   *LocationResult   `json:"hottest"`
	Failures  []FetchFailure    `json:"failures,omitempty"`
}

// Empty reports whether no location contributed data.
func (r Report) Empty() bool {
	return len(r.Locations) == 0
}
