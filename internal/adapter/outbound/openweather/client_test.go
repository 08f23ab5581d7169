package openweather_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagetools/voyage-mcp/internal/adapter/outbound/openweather"
	"github.com/voyagetools/voyage-mcp/internal/domain"
)

func newTestClient(t *testing.T, apiKey string, handler http.Handler) *openweather.Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return openweather.New(server.URL, apiKey, server.Client(), logger)
}

func TestClient_MissingAPIKey(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	requests := 0
	client := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := client.CurrentWeather(ctx, "Paris", domain.UnitsMetric)
	assert.ErrorIs(err, openweather.ErrAPIKeyMissing)

	_, err = client.Forecast(ctx, "Paris", domain.UnitsMetric)
	assert.ErrorIs(err, openweather.ErrAPIKeyMissing)

	_, err = client.Geocode(ctx, "Paris", 5)
	assert.ErrorIs(err, openweather.ErrAPIKeyMissing)

	assert.Zero(requests, "no request may leave the client without an API key")
}

func TestClient_CurrentWeather(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	client := newTestClient(t, "test-key", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/data/2.5/weather", r.URL.Path)
		assert.Equal("Paris", r.URL.Query().Get("q"))
		assert.Equal("metric", r.URL.Query().Get("units"))
		assert.Equal("test-key", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Paris",
			"sys": {"country": "FR"},
			"weather": [{"description": "light rain"}],
			"main": {"temp": 14.3, "feels_like": 13.1, "humidity": 82, "pressure": 1011},
			"wind": {"speed": 4.6},
			"dt": 1712345678
		}`))
	}))

	snap, err := client.CurrentWeather(ctx, "Paris", domain.UnitsMetric)
	require.NoError(err)

	assert.Equal("Paris, FR", snap.Location)
	assert.Equal("light rain", snap.Condition)
	assert.Equal(14.3, snap.Temperature)
	assert.Equal(13.1, snap.FeelsLike)
	assert.Equal(82, snap.Humidity)
	assert.Equal(1011, snap.Pressure)
	assert.Equal(4.6, snap.WindSpeed)
	assert.Equal(domain.UnitsMetric, snap.Units)
	assert.Equal(time.Unix(1712345678, 0).UTC(), snap.ObservedAt)
}

func TestClient_StatusMapping(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		status     int
		body       string
		checkError func(t *testing.T, err error)
	}{
		{
			name:   "404 maps to ErrLocationNotFound",
			status: http.StatusNotFound,
			body:   `{"cod":"404","message":"city not found"}`,
			checkError: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, openweather.ErrLocationNotFound)
			},
		},
		{
			name:   "500 maps to StatusError",
			status: http.StatusInternalServerError,
			body:   `oops`,
			checkError: func(t *testing.T, err error) {
				var statusErr *openweather.StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
				assert.Equal(t, "weather provider returned status 500", statusErr.Error())
			},
		},
		{
			name:   "401 maps to StatusError",
			status: http.StatusUnauthorized,
			body:   `{"cod":401,"message":"Invalid API key"}`,
			checkError: func(t *testing.T, err error) {
				var statusErr *openweather.StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, "test-key", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, err := client.CurrentWeather(ctx, "Nowhere", domain.UnitsMetric)
			require.Error(t, err)
			tt.checkError(t, err)
		})
	}
}

func TestClient_Forecast(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	client := newTestClient(t, "test-key", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/data/2.5/forecast", r.URL.Path)
		assert.Equal("imperial", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"city": {"name": "London", "country": "GB"},
			"list": [
				{
					"dt": 1712340000,
					"main": {"temp": 51.2, "humidity": 70},
					"weather": [{"description": "overcast clouds"}],
					"wind": {"speed": 8.1},
					"dt_txt": "2024-04-05 12:00:00"
				},
				{
					"dt": 1712350800,
					"main": {"temp": 53.6, "humidity": 64},
					"weather": [{"description": "light rain"}],
					"wind": {"speed": 9.4},
					"dt_txt": "2024-04-05 15:00:00"
				}
			]
		}`))
	}))

	fc, err := client.Forecast(ctx, "London", domain.UnitsImperial)
	require.NoError(err)

	assert.Equal("London, GB", fc.Location)
	assert.Equal(domain.UnitsImperial, fc.Units)
	require.Len(fc.Entries, 2)

	first := fc.Entries[0]
	assert.Equal(51.2, first.Temp)
	assert.Equal(70, first.Humidity)
	assert.Equal(8.1, first.WindSpeed)
	assert.Equal("overcast clouds", first.Condition)
	assert.Equal(time.Date(2024, 4, 5, 12, 0, 0, 0, time.UTC), first.Time)
}

func TestClient_Geocode(t *testing.T) {
	ctx := context.Background()

	t.Run("hits mapped to candidates", func(t *testing.T) {
		assert := assert.New(t)
		require := require.New(t)

		client := newTestClient(t, "test-key", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal("/geo/1.0/direct", r.URL.Path)
			assert.Equal("Springfield", r.URL.Query().Get("q"))
			assert.Equal("2", r.URL.Query().Get("limit"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"name": "Springfield", "lat": 39.7817, "lon": -89.6501, "country": "US", "state": "Illinois"},
				{"name": "Springfield", "lat": 42.1015, "lon": -72.5898, "country": "US", "state": "Massachusetts"}
			]`))
		}))

		places, err := client.Geocode(ctx, "Springfield", 2)
		require.NoError(err)
		require.Len(places, 2)
		assert.Equal(domain.PlaceCandidate{
			Name:    "Springfield",
			State:   "Illinois",
			Country: "US",
			Lat:     39.7817,
			Lon:     -89.6501,
		}, places[0])
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		client := newTestClient(t, "test-key", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		}))

		places, err := client.Geocode(ctx, "xyzzy", 5)
		require.NoError(t, err)
		assert.Empty(t, places)
	})
}

func TestClient_NetworkError(t *testing.T) {
	assert := assert.New(t)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := openweather.New("http://127.0.0.1:1", "test-key", &http.Client{Timeout: 200 * time.Millisecond}, logger)

	_, err := client.CurrentWeather(context.Background(), "Paris", domain.UnitsMetric)
	assert.Error(err)
	assert.NotErrorIs(err, openweather.ErrLocationNotFound)

	var statusErr *openweather.StatusError
	assert.False(errors.As(err, &statusErr))
}
