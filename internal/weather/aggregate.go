package weather

import "fmt"

// AveragePolicy decides how the average temperature is computed when one of the
// max/min series is empty.
type AveragePolicy int

const (
	// AverageZeroFill uses 0.0 for an empty side, which biases the result.
	AverageZeroFill AveragePolicy = iota
	// AverageSkipIncomplete leaves the average undefined when either side is
	// empty and excludes the location from the hottest ranking.
	AverageSkipIncomplete
)

func (p AveragePolicy) String() string {
	switch p {
	case AverageSkipIncomplete:
		return "skip"
	default:
		return "zero"
	}
}

// ParseAveragePolicy maps "zero" or "skip" to a policy.
func ParseAveragePolicy(s string) (AveragePolicy, error) {
	switch s {
	case "", "zero":
		return AverageZeroFill, nil
	case "skip":
		return AverageSkipIncomplete, nil
	default:
		return AverageZeroFill, fmt.Errorf("unknown average policy %q", s)
	}
}

// Sum returns the sum of values, 0 for an empty series.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean and false for an empty series.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return Sum(values) / float64(len(values)), true
}

// Max returns the largest value or nil for an empty series.
func Max(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return &m
}

// Min returns the smallest value or nil for an empty series.
func Min(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return &m
}

// SummarizeLocation computes the per-location block.
func SummarizeLocation(name string, daily DailyWeather, policy AveragePolicy) LocationSummary {
	avgMax, hasMax := Mean(daily.Temperature2mMax)
	avgMin, hasMin := Mean(daily.Temperature2mMin)

	summary := LocationSummary{
		Name:       name,
		Days:       len(daily.Time),
		TotalRain:  Sum(daily.PrecipitationSum),
		AverageMax: avgMax,
		AverageMin: avgMin,
		HottestDay: Max(daily.Temperature2mMax),
		ColdestDay: Min(daily.Temperature2mMin),
	}

	if policy == AverageZeroFill || (hasMax && hasMin) {
		avg := (avgMax + avgMin) / 2
		summary.AverageTemperature = &avg
	}
	return summary
}

// Summarize aggregates all successfully fetched locations, in input order, and
// ranks them. Ties go to the location that appears first. An empty input yields
// an empty report with no rankings.
func Summarize(results []LocationWeather, policy AveragePolicy) Report {
	report := Report{Locations: make([]LocationSummary, 0, len(results))}
	if len(results) == 0 {
		return report
	}

	for _, r := range results {
		report.Locations = append(report.Locations, SummarizeLocation(r.Location.Name, r.Daily, policy))
	}

	report.Rainiest, report.Hottest = Rank(report.Locations)
	return report
}

// Rank picks the rainiest and hottest locations. Locations without a defined
// average temperature are never hottest. Either result is nil when nothing is
// eligible.
func Rank(summaries []LocationSummary) (rainiest, hottest *LocationResult) {
	for _, s := range summaries {
		if rainiest == nil || s.TotalRain > rainiest.TotalRain {
			rainiest = toResult(s)
		}
		if s.AverageTemperature == nil {
			continue
		}
		if hottest == nil || *s.AverageTemperature > hottest.AverageTemperature {
			hottest = toResult(s)
		}
	}
	return rainiest, hottest
}

func toResult(s LocationSummary) *LocationResult {
	r := &LocationResult{
		Name:      s.Name,
		TotalRain: s.TotalRain,
	}
	if s.AverageTemperature != nil {
		r.AverageTemperature = *s.AverageTemperature
	}
	return r
}
