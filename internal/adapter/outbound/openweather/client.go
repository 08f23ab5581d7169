package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/voyagetools/voyage-mcp/internal/domain"
)

// DefaultBaseURL is the production OpenWeatherMap endpoint.
const DefaultBaseURL = "https://api.openweathermap.org"

// dtTxtLayout is the timestamp format of the forecast feed's dt_txt field,
// always UTC.
const dtTxtLayout = "2006-01-02 15:04:05"

// Errors surfaced by the client.
var (
	ErrAPIKeyMissing    = errors.New("OpenWeatherMap API key is not configured (set OPENWEATHER_API_KEY)")
	ErrLocationNotFound = errors.New("location not found")
)

// StatusError reports a non-2xx upstream response other than a plain
// not-found.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("weather provider returned status %d", e.Code)
}

// Client calls the OpenWeatherMap HTTP API. The API key precondition is
// checked before any request goes out, so a missing key never costs a
// network round trip.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

// New creates a Client. An empty baseURL selects DefaultBaseURL; a nil
// httpClient falls back to a 10 second timeout default.
func New(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpClient,
		logger:  logger.With("component", "openweather"),
	}
}

// CurrentWeather fetches current conditions for a free-form location query.
func (c *Client) CurrentWeather(ctx context.Context, location string, units domain.Units) (domain.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("q", location)
	params.Set("units", string(units))

	var wire currentResponse
	if err := c.get(ctx, "/data/2.5/weather", params, &wire); err != nil {
		return domain.WeatherSnapshot{}, err
	}

	snap := domain.WeatherSnapshot{
		Location:    placeLabel(wire.Name, wire.Sys.Country, location),
		Temperature: wire.Main.Temp,
		FeelsLike:   wire.Main.FeelsLike,
		Humidity:    wire.Main.Humidity,
		Pressure:    wire.Main.Pressure,
		WindSpeed:   wire.Wind.Speed,
		Units:       units,
	}
	if len(wire.Weather) > 0 {
		snap.Condition = wire.Weather[0].Description
	}
	if wire.Dt > 0 {
		snap.ObservedAt = time.Unix(wire.Dt, 0).UTC()
	}
	return snap, nil
}

// Forecast fetches the 3-hourly forecast feed (up to 5 days) for a location.
func (c *Client) Forecast(ctx context.Context, location string, units domain.Units) (domain.Forecast, error) {
	params := url.Values{}
	params.Set("q", location)
	params.Set("units", string(units))

	var wire forecastResponse
	if err := c.get(ctx, "/data/2.5/forecast", params, &wire); err != nil {
		return domain.Forecast{}, err
	}

	fc := domain.Forecast{
		Location: placeLabel(wire.City.Name, wire.City.Country, location),
		Units:    units,
		Entries:  make([]domain.ForecastEntry, 0, len(wire.List)),
	}
	for _, s := range wire.List {
		entry := domain.ForecastEntry{
			Temp:      s.Main.Temp,
			Humidity:  s.Main.Humidity,
			WindSpeed: s.Wind.Speed,
		}
		if len(s.Weather) > 0 {
			entry.Condition = s.Weather[0].Description
		}
		ts, err := time.Parse(dtTxtLayout, s.DtTxt)
		if err != nil {
			ts = time.Unix(s.Dt, 0).UTC()
		}
		entry.Time = ts
		fc.Entries = append(fc.Entries, entry)
	}
	return fc, nil
}

// Geocode resolves a free-form place query to candidate locations. An
// unmatched query yields an empty slice, not an error.
func (c *Client) Geocode(ctx context.Context, query string, limit int) ([]domain.PlaceCandidate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var wire []geoHit
	if err := c.get(ctx, "/geo/1.0/direct", params, &wire); err != nil {
		return nil, err
	}

	places := make([]domain.PlaceCandidate, 0, len(wire))
	for _, h := range wire {
		places = append(places, domain.PlaceCandidate{
			Name:    h.Name,
			State:   h.State,
			Country: h.Country,
			Lat:     h.Lat,
			Lon:     h.Lon,
		})
	}
	return places, nil
}

// get performs one GET round trip and decodes a 2xx body into out. Status
// codes are translated here so callers only see domain-shaped failures.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return ErrAPIKeyMissing
	}
	params.Set("appid", c.apiKey)

	log := c.logger.With(slog.String("path", path))

	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error("HTTP request failed.", slog.Any("error", err))
		return fmt.Errorf("request execution failed: %w", err)
	}
	defer resp.Body.Close()

	log.Debug("Received upstream response.", slog.Int("status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrLocationNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn("Upstream returned non-success status.",
			slog.Int("status_code", resp.StatusCode),
			slog.String("response_body", string(body)))
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("Failed to decode response body.", slog.Any("error", err))
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// placeLabel builds the "City, CC" display label, falling back to the query
// text when the provider omits a name.
func placeLabel(name, country, query string) string {
	if name == "" {
		return query
	}
	if country == "" {
		return name
	}
	return name + ", " + country
}
