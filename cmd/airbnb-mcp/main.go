package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	mcpGoServer "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/voyagetools/voyage-mcp/configs"
	"github.com/voyagetools/voyage-mcp/internal/adapter/inbound/ops"
	"github.com/voyagetools/voyage-mcp/internal/adapter/outbound/openweather"
	"github.com/voyagetools/voyage-mcp/internal/airbnb"
	"github.com/voyagetools/voyage-mcp/internal/usecase"
)

const serviceName = "voyage-airbnb"

func main() {
	var transport string
	flag.StringVar(&transport, "transport", "stdio", "Transport mode: stdio or sse")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === Configuration ===
	cfg, err := configs.LoadAirbnb()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// === Logging ===
	logger := newLogger(transport, cfg)
	slog.SetDefault(logger)
	logger.Info("Logger initialized.",
		slog.String("level", cfg.ParsedLogLevel().String()),
		slog.String("transport", transport))

	// === OpenTelemetry ===
	shutdownOtel, err := initOtelProvider(cfg.OtelExporterOtlpEndpoint, cfg.OtelExporterOtlpInsecure)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry.", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			logger.Error("Failed to shutdown OpenTelemetry TracerProvider.", slog.Any("error", err))
		}
	}()

	// === MCP Server ===
	mcpSrv := mcpGoServer.NewMCPServer(
		serviceName,
		"0.1.0",
		mcpGoServer.WithToolCapabilities(false),
		mcpGoServer.WithRecovery(),
	)

	// === Dependency Injection ===
	cities, err := airbnb.LoadGazetteer()
	if err != nil {
		logger.Error("Failed to load gazetteer.", slog.Any("error", err))
		os.Exit(1)
	}

	// Live geocoding is optional; without a key the resolver works from the
	// embedded gazetteer alone.
	var geocoder airbnb.Geocoder
	if cfg.GeocodingAPIKey != "" {
		httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
		geocoder = openweather.New(cfg.GeocodingBaseURL, cfg.GeocodingAPIKey, httpClient, logger)
		logger.Info("Live geocoding enabled.")
	} else {
		logger.Info("GEOCODING_API_KEY not set, resolving locations offline.")
	}

	resolver := airbnb.NewResolver(geocoder, cities, logger)
	gen := airbnb.NewGenerator(cities, logger)

	dispatcher := usecase.NewDispatcher(logger)
	svc := airbnb.NewService(resolver, gen, logger)
	if err := svc.Register(dispatcher); err != nil {
		logger.Error("Failed to register tools.", slog.Any("error", err))
		os.Exit(1)
	}
	dispatcher.Attach(mcpSrv)
	logger.Info("Accommodation tools registered.", slog.Int("count", len(dispatcher.Specs())))

	// === Transport Mode Selection ===
	switch transport {
	case "stdio":
		logger.Info("Starting in STDIO mode.")
		stdioServer := mcpGoServer.NewStdioServer(mcpSrv)
		if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil {
			logger.Error("STDIO server error.", slog.Any("error", err))
			os.Exit(1)
		}

	case "sse":
		logger.Info("Starting in SSE mode.")
		sseServer := mcpGoServer.NewSSEServer(mcpSrv, mcpGoServer.WithBaseURL("http://"+cfg.ListenAddr))
		opsServer := ops.New(cfg.OpsAddr, serviceName, dispatcher.Tools(), logger)

		go func() {
			logger.Info("Ops HTTP server starting.", slog.String("address", cfg.OpsAddr))
			if err := opsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Ops HTTP server failed.", slog.Any("error", err))
			}
		}()
		go func() {
			logger.Info("MCP SSE server starting.", slog.String("address", cfg.ListenAddr))
			if err := sseServer.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("MCP SSE server failed.", slog.Any("error", err))
				stop()
			}
		}()

		<-ctx.Done()

		logger.Info("Shutting down servers...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := opsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Ops HTTP server graceful shutdown failed.", slog.Any("error", err))
		}
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("MCP SSE server graceful shutdown failed.", slog.Any("error", err))
		}
		logger.Info("Servers shut down gracefully.")

	default:
		logger.Error("Invalid transport mode.", slog.String("transport", transport))
		os.Exit(1)
	}
}

// newLogger builds the process logger. In stdio mode stdout carries the
// protocol, so logs go to the configured file; any other mode logs to
// stderr.
func newLogger(transport string, cfg *configs.AirbnbConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.ParsedLogLevel()}
	if transport == "stdio" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return slog.New(slog.NewTextHandler(io.Discard, opts))
		}
		return slog.New(slog.NewTextHandler(logFile, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// initOtelProvider sets up the OTLP trace exporter when an endpoint is
// configured. The returned shutdown function flushes and closes the
// provider.
func initOtelProvider(endpoint string, allowInsecure bool) (func(context.Context) error, error) {
	ctx := context.Background()

	if endpoint == "" {
		slog.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, OpenTelemetry tracing disabled.")
		return func(context.Context) error { return nil }, nil
	}

	grpcOpts := []grpc.DialOption{}
	if allowInsecure {
		grpcOpts = append(grpcOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		slog.Warn("Using insecure connection for OTLP exporter.")
	}

	conn, err := grpc.NewClient(endpoint, grpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTLP endpoint: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		_ = traceExporter.Shutdown(ctx)
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) error {
		providerErr := tp.Shutdown(ctx)
		connErr := conn.Close()
		return errors.Join(providerErr, connErr)
	}, nil
}
