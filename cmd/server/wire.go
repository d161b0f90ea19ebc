package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/clients/restapi"
	adapthttp "github.com/jsamuelsen11/go-sample-gateway/internal/adapters/http"
	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/go-sample-gateway/internal/app"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/clientinfo"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/config"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/health"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/token"
	"github.com/jsamuelsen11/go-sample-gateway/internal/ports"
)

const downstreamName = "sample-api"

// provideOutbound registers the sample-api transport, the token source and
// the REST builder with its client-info hooks.
func provideOutbound(i do.Injector) {
	do.Provide(i, func(i do.Injector) (*httpclient.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return httpclient.New(&cfg.Client, downstreamName,
			do.MustInvoke[*telemetry.Metrics](i), do.MustInvoke[*slog.Logger](i)), nil
	})

	do.Provide(i, func(i do.Injector) (clientinfo.Resolver, error) {
		resolver := clientinfo.ContextResolver{}
		if def := defaultClientInfo(do.MustInvoke[*config.Config](i).ClientInfo); !def.IsZero() {
			resolver.Default = &def
		}
		return resolver, nil
	})

	do.Provide(i, func(i do.Injector) (*clientinfo.Populater, error) {
		return clientinfo.NewPopulater(do.MustInvoke[clientinfo.Resolver](i), do.MustInvoke[*slog.Logger](i)), nil
	})

	do.Provide(i, func(i do.Injector) (*restapi.API, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)

		opts := []restapi.Option{
			restapi.WithResolver(do.MustInvoke[clientinfo.Resolver](i)),
			restapi.WithPopulater(do.MustInvoke[*clientinfo.Populater](i)),
			restapi.WithMetrics(do.MustInvoke[*telemetry.Metrics](i)),
			restapi.WithMaxBodyLog(cfg.Client.MaxBodyLog),
		}
		if cfg.Auth.Enabled {
			src, err := token.NewJWTSource(&cfg.Auth, logger)
			if err != nil {
				return nil, fmt.Errorf("creating token source: %w", err)
			}
			opts = append(opts, restapi.WithTokenSource(src))
		}
		return restapi.New(do.MustInvoke[*httpclient.Client](i), logger, opts...), nil
	})

	do.Provide(i, func(i do.Injector) (*acl.SampleClient, error) {
		return acl.NewSampleClient(
			do.MustInvoke[*restapi.API](i),
			do.MustInvoke[*config.Config](i).Client.BaseURL,
			do.MustInvoke[*httpclient.Client](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})
}

func provideApp(i do.Injector) {
	do.Provide(i, func(i do.Injector) (ports.SampleService, error) {
		limits := do.MustInvoke[*config.Config](i).Samples
		return app.NewSampleService(
			do.MustInvoke[*acl.SampleClient](i),
			do.MustInvoke[*clientinfo.Populater](i),
			do.MustInvoke[*slog.Logger](i),
			app.WithBatchLimits(limits.MaxBatch, limits.Workers),
		), nil
	})

	// Readiness follows the sample-api breaker only.
	do.Provide(i, func(i do.Injector) (ports.HealthRegistry, error) {
		timeout := do.MustInvoke[*config.Config](i).Server.HealthCheckTimeout
		registry := health.New(health.WithCheckTimeout(timeout))
		registry.Register(do.MustInvoke[*acl.SampleClient](i))
		return registry, nil
	})
}

// provideInbound registers the handlers, the middleware chain and the server.
// Middleware order matters: Recovery must be outermost, and AppContext must
// sit inside Timeout so memoized fetches see the handler deadline.
func provideInbound(i do.Injector) {
	do.Provide(i, func(i do.Injector) (*handlers.SampleHandler, error) {
		return handlers.NewSampleHandler(do.MustInvoke[ports.SampleService](i)), nil
	})

	do.Provide(i, func(i do.Injector) (*handlers.HealthHandler, error) {
		return handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)), nil
	})

	do.Provide(i, func(i do.Injector) (nethttp.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)

		return adapthttp.NewRouter(
			do.MustInvoke[*handlers.SampleHandler](i),
			do.MustInvoke[*handlers.HealthHandler](i),
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.CORS(cfg.CORS),
			middleware.OpenTelemetry(do.MustInvoke[*telemetry.Metrics](i)),
			middleware.Logging(logger),
			middleware.ClientInfo(defaultClientInfo(cfg.ClientInfo)),
			middleware.Timeout(cfg.Server.WriteTimeout),
			middleware.AppContext(),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*adapthttp.Server, error) {
		return adapthttp.NewServer(
			do.MustInvoke[*config.Config](i).Server,
			do.MustInvoke[nethttp.Handler](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})
}

func defaultClientInfo(c config.ClientInfoConfig) clientinfo.ClientInfo {
	return clientinfo.ClientInfo{
		DBLocaleLanguage: c.DBLocaleLanguage,
		DBTimeZone:       c.DBTimeZone,
		TimeZone:         c.TimeZone,
	}
}
