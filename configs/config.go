package configs

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// WeatherConfig holds the weather server configuration, loaded from
// environment variables.
type WeatherConfig struct {
	// APIKey authenticates against OpenWeatherMap. Left empty, the server
	// still starts but every weather tool call reports the missing key.
	APIKey  string `envconfig:"OPENWEATHER_API_KEY"`
	BaseURL string `envconfig:"OPENWEATHER_BASE_URL"`

	ListenAddr        string        `envconfig:"LISTEN_ADDR" default:":8080"`
	OpsAddr           string        `envconfig:"OPS_ADDR" default:":8081"`
	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"10s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// LogFile receives logs in stdio mode, where stdout carries the
	// protocol and must stay clean.
	LogFile string `envconfig:"LOG_FILE" default:"/tmp/weather-mcp.log"`

	OtelExporterOtlpEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// AirbnbConfig holds the accommodation server configuration, loaded from
// environment variables.
type AirbnbConfig struct {
	// GeocodingAPIKey enables live place resolution. Left empty, searches
	// resolve against the embedded gazetteer only.
	GeocodingAPIKey  string `envconfig:"GEOCODING_API_KEY"`
	GeocodingBaseURL string `envconfig:"GEOCODING_BASE_URL"`

	ListenAddr        string        `envconfig:"LISTEN_ADDR" default:":8082"`
	OpsAddr           string        `envconfig:"OPS_ADDR" default:":8083"`
	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"10s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE" default:"/tmp/airbnb-mcp.log"`

	OtelExporterOtlpEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// LoadWeather loads the weather server configuration from the environment.
func LoadWeather() (*WeatherConfig, error) {
	var cfg WeatherConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// LoadAirbnb loads the accommodation server configuration from the
// environment.
func LoadAirbnb() (*AirbnbConfig, error) {
	var cfg AirbnbConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *WeatherConfig) ParsedLogLevel() slog.Level {
	return parseLogLevel(c.LogLevel)
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *AirbnbConfig) ParsedLogLevel() slog.Level {
	return parseLogLevel(c.LogLevel)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}
