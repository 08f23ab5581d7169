// Package weather implements the tool handlers of the weather MCP server:
// current conditions, daily forecasts and place search, all backed by an
// OpenWeatherMap-style provider.
package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/voyagetools/voyage-mcp/internal/adapter/outbound/openweather"
	"github.com/voyagetools/voyage-mcp/internal/domain"
	"github.com/voyagetools/voyage-mcp/internal/usecase"
)

// Provider is the upstream surface the handlers consume. The openweather
// client satisfies it.
type Provider interface {
	CurrentWeather(ctx context.Context, location string, units domain.Units) (domain.WeatherSnapshot, error)
	Forecast(ctx context.Context, location string, units domain.Units) (domain.Forecast, error)
	Geocode(ctx context.Context, query string, limit int) ([]domain.PlaceCandidate, error)
}

// Service implements the weather tool handlers.
type Service struct {
	provider Provider
	logger   *slog.Logger
}

// NewService creates the weather service.
func NewService(provider Provider, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   logger.With("component", "weather_service"),
	}
}

// Register adds the weather tools to the dispatcher.
func (s *Service) Register(d *usecase.Dispatcher) error {
	regs := []usecase.Registration{
		{Spec: currentWeatherSpec, Handler: s.handleCurrentWeather},
		{Spec: forecastSpec, Handler: s.handleForecast},
		{Spec: searchLocationsSpec, Handler: s.handleSearchLocations},
	}
	for _, reg := range regs {
		if err := d.Register(reg); err != nil {
			return fmt.Errorf("failed to register weather tools: %w", err)
		}
	}
	return nil
}

func (s *Service) handleCurrentWeather(ctx context.Context, args domain.Args) (string, error) {
	location := args.String("location")
	units := domain.Units(args.String("units"))

	snap, err := s.provider.CurrentWeather(ctx, location, units)
	if err != nil {
		return "", describeProviderError(location, err)
	}

	s.logger.Info("Current weather fetched.",
		slog.String("location", snap.Location),
		slog.String("units", string(units)))
	return formatCurrent(snap), nil
}

func (s *Service) handleForecast(ctx context.Context, args domain.Args) (string, error) {
	location := args.String("location")
	units := domain.Units(args.String("units"))
	days := args.Int("days")

	fc, err := s.provider.Forecast(ctx, location, units)
	if err != nil {
		return "", describeProviderError(location, err)
	}

	series := aggregateDaily(fc, days)
	s.logger.Info("Forecast fetched.",
		slog.String("location", series.Location),
		slog.Int("days_requested", days),
		slog.Int("days_returned", len(series.Days)))
	return formatForecast(series), nil
}

func (s *Service) handleSearchLocations(ctx context.Context, args domain.Args) (string, error) {
	query := args.String("query")
	limit := args.Int("limit")

	places, err := s.provider.Geocode(ctx, query, limit)
	if err != nil {
		return "", err
	}

	s.logger.Info("Location search complete.",
		slog.String("query", query),
		slog.Int("results", len(places)))
	return formatPlaces(query, places), nil
}

// describeProviderError rewords upstream failures so the tool output names
// the location the caller asked about.
func describeProviderError(location string, err error) error {
	if errors.Is(err, openweather.ErrLocationNotFound) {
		return fmt.Errorf("location %q not found", location)
	}
	return err
}
