package domain

import "time"

// Units selects the measurement system for upstream weather queries.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
	UnitsStandard Units = "standard"
)

// TempSuffix returns the display suffix for temperatures in this system.
func (u Units) TempSuffix() string {
	switch u {
	case UnitsImperial:
		return "°F"
	case UnitsStandard:
		return "K"
	default:
		return "°C"
	}
}

// SpeedSuffix returns the display suffix for wind speeds in this system.
func (u Units) SpeedSuffix() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "m/s"
}

// WeatherSnapshot is a point-in-time weather observation for one place.
type WeatherSnapshot struct {
	Location    string // display label, e.g. "Paris, FR"
	Condition   string // e.g. "scattered clouds"
	Temperature float64
	FeelsLike   float64
	Humidity    int // percent
	Pressure    int // hPa
	WindSpeed   float64
	Units       Units
	ObservedAt  time.Time
}

// ForecastEntry is one 3-hour forecast slice as reported upstream.
type ForecastEntry struct {
	Time      time.Time
	Temp      float64
	Condition string
	Humidity  int // percent
	WindSpeed float64
}

// Forecast is the raw 3-hourly forecast for one place, in chronological
// order, before any daily aggregation.
type Forecast struct {
	Location string
	Units    Units
	Entries  []ForecastEntry
}

// ForecastDay aggregates the slices of one calendar date.
type ForecastDay struct {
	Date      string // YYYY-MM-DD
	TempMin   float64
	TempMax   float64
	Condition string  // dominant condition across the day's slices
	Humidity  int     // mean across slices, rounded
	WindSpeed float64 // mean across slices, one decimal
}

// ForecastSeries is a daily forecast for one place.
type ForecastSeries struct {
	Location string
	Units    Units
	Days     []ForecastDay
}

// PlaceCandidate is one geocoding hit for a free-form place query.
type PlaceCandidate struct {
	Name    string
	State   string
	Country string
	Lat     float64
	Lon     float64
}
