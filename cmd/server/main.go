// Command server runs the sample gateway: it loads the profile's config,
// wires the graph in a samber/do injector and serves until SIGINT or
// SIGTERM, then drains requests and flushes telemetry.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/go-sample-gateway/internal/adapters/http"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/config"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/logging"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/telemetry"
)

const otelShutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is only present on developer machines.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, prod)")
	}

	cfg, err := config.Load(profile, config.WithOverrideFile(os.Getenv("CONFIG_FILE")))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otel, err := startTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("starting telemetry: %w", err)
	}
	defer flushTelemetry(otel, logger)

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.Metrics)
	provideOutbound(injector)
	provideApp(injector)
	provideInbound(injector)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// startTelemetry returns zero Providers when telemetry is disabled, leaving
// the no-op global providers in place.
func startTelemetry(ctx context.Context, tc config.TelemetryConfig) (*telemetry.Providers, error) {
	if !tc.Enabled {
		return &telemetry.Providers{}, nil
	}
	return telemetry.Start(ctx, telemetry.Settings{
		ServiceName: tc.ServiceName,
		Exporter:    tc.Exporter,
		Endpoint:    tc.Endpoint,
	})
}

func flushTelemetry(otel *telemetry.Providers, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer cancel()
	if err := otel.Shutdown(ctx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}
}
