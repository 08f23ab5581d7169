package weather

import (
	"fmt"
	"strings"

	"github.com/voyagetools/voyage-mcp/internal/domain"
)

func formatCurrent(s domain.WeatherSnapshot) string {
	temp := s.Units.TempSuffix()

	var b strings.Builder
	fmt.Fprintf(&b, "Current weather in %s:\n", s.Location)
	fmt.Fprintf(&b, "Conditions: %s\n", s.Condition)
	fmt.Fprintf(&b, "Temperature: %.1f%s (feels like %.1f%s)\n", s.Temperature, temp, s.FeelsLike, temp)
	fmt.Fprintf(&b, "Humidity: %d%%\n", s.Humidity)
	fmt.Fprintf(&b, "Wind: %.1f %s\n", s.WindSpeed, s.Units.SpeedSuffix())
	fmt.Fprintf(&b, "Pressure: %d hPa", s.Pressure)
	if !s.ObservedAt.IsZero() {
		fmt.Fprintf(&b, "\nObserved: %s", s.ObservedAt.Format("2006-01-02 15:04 UTC"))
	}
	return b.String()
}

func formatForecast(s domain.ForecastSeries) string {
	if len(s.Days) == 0 {
		return fmt.Sprintf("No forecast data available for %s.", s.Location)
	}

	temp := s.Units.TempSuffix()

	var b strings.Builder
	fmt.Fprintf(&b, "%d-day forecast for %s:", len(s.Days), s.Location)
	for _, d := range s.Days {
		fmt.Fprintf(&b, "\n\n%s:\n", d.Date)
		fmt.Fprintf(&b, "  Conditions: %s\n", d.Condition)
		fmt.Fprintf(&b, "  High: %.1f%s, Low: %.1f%s\n", d.TempMax, temp, d.TempMin, temp)
		fmt.Fprintf(&b, "  Humidity: %d%%\n", d.Humidity)
		fmt.Fprintf(&b, "  Wind: %.1f %s", d.WindSpeed, s.Units.SpeedSuffix())
	}
	return b.String()
}

func formatPlaces(query string, places []domain.PlaceCandidate) string {
	if len(places) == 0 {
		return fmt.Sprintf("No locations found matching %q.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d location(s) matching %q:", len(places), query)
	for i, p := range places {
		label := p.Name
		if p.State != "" {
			label += ", " + p.State
		}
		if p.Country != "" {
			label += ", " + p.Country
		}
		fmt.Fprintf(&b, "\n\n%d. %s\n", i+1, label)
		fmt.Fprintf(&b, "   Coordinates: %.4f, %.4f", p.Lat, p.Lon)
	}
	return b.String()
}
