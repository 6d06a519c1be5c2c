// Package energy fetches the emissions forecast and the optimal usage
// schedule from the home energy backend.
//
// Both series are plain JSON arrays of numbers, one value per future day.
// The package owns the HTTP contract and the ordering of the two requests.
// Presentation lives in internal/tui.
package energy

// EmissionForecast holds predicted kilograms of CO2 per future day.
// Index i is day i+1.
type EmissionForecast []float64

// Total returns the forecast summed over all days.
func (f EmissionForecast) Total() float64 {
	return sum(f)
}

// UsageSchedule holds recommended kilowatt-hours per future day.
// Index i is day i+1.
type UsageSchedule []float64

// Total returns the schedule summed over all days.
func (u UsageSchedule) Total() float64 {
	return sum(u)
}

// Dashboard is the result of one successful fetch cycle.
type Dashboard struct {
	Forecast EmissionForecast `json:"forecast"`
	Usage    UsageSchedule    `json:"optimal_usage"`
}

// Endpoint names a backend series.
type Endpoint string

const (
	// EndpointForecast is the emissions forecast series.
	EndpointForecast Endpoint = "forecast"
	// EndpointOptimalUsage is the optimal usage schedule series.
	EndpointOptimalUsage Endpoint = "optimal-usage"
)

// Default request paths on the backend.
const (
	DefaultForecastPath = "/api/forecast"
	DefaultUsagePath    = "/api/optimal-usage"
)

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
