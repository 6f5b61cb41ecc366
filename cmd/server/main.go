// Package main boots the e-signature service: it loads configuration,
// wires the dependency graph with samber/do v2, runs the HTTP server, and
// drains everything in order on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/betterdayenergy/esign-service/internal/adapters/http"
	"github.com/betterdayenergy/esign-service/internal/adapters/http/handlers"
	"github.com/betterdayenergy/esign-service/internal/adapters/http/middleware"

	"github.com/betterdayenergy/esign-service/internal/adapters/clients/acl"
	"github.com/betterdayenergy/esign-service/internal/adapters/mail"
	"github.com/betterdayenergy/esign-service/internal/app"
	"github.com/betterdayenergy/esign-service/internal/app/notify"
	"github.com/betterdayenergy/esign-service/internal/platform/config"
	"github.com/betterdayenergy/esign-service/internal/platform/health"
	"github.com/betterdayenergy/esign-service/internal/platform/httpclient"
	"github.com/betterdayenergy/esign-service/internal/platform/logging"
	"github.com/betterdayenergy/esign-service/internal/platform/telemetry"
	"github.com/betterdayenergy/esign-service/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "esign-service"

// Shutdown drains in order: HTTP first so no new work arrives, then the
// notification queue, then telemetry flush.
const (
	serverDrainTimeout   = 15 * time.Second
	notifyDrainTimeout   = 10 * time.Second
	telemetryFlushBudget = 5 * time.Second
	startupCheckTimeout  = 5 * time.Second
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	tel, err := newTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, tel.metrics)
	registerDependencies(injector, cfg, logger)

	// Invoking the server eagerly wires the whole graph, so any
	// construction error surfaces here rather than on the first request.
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*httpclient.Client](injector))
	registry.Register(do.MustInvoke[*mail.Mailer](injector))

	dispatcher := do.MustInvoke[*notify.Dispatcher](injector)
	dispatcher.Start()

	// One readiness pass up front so degraded dependencies show in the log
	// before traffic arrives.
	logStartupHealth(ctx, registry, logger)

	logger.Info("starting service",
		slog.String("service", serviceName),
		slog.String("version", version),
		slog.String("profile", profile),
	)

	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdown(server, serverErr, dispatcher, tel, logger)
	return nil
}

// shutdown drains the server, the notification dispatcher, and the
// telemetry providers, logging rather than aborting on individual failures.
func shutdown(server *adapthttp.Server, serverErr <-chan error, dispatcher *notify.Dispatcher, tel *telemetrySet, logger *slog.Logger) {
	srvCtx, cancelSrv := context.WithTimeout(context.Background(), serverDrainTimeout)
	defer cancelSrv()
	if err := server.Shutdown(srvCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	<-serverErr

	notifyCtx, cancelNotify := context.WithTimeout(context.Background(), notifyDrainTimeout)
	defer cancelNotify()
	if err := dispatcher.Stop(notifyCtx); err != nil {
		logger.Error("dispatcher shutdown error", slog.Any("error", err))
	}

	telCtx, cancelTel := context.WithTimeout(context.Background(), telemetryFlushBudget)
	defer cancelTel()
	if err := tel.Shutdown(telCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
}

// logStartupHealth runs the dependency checks once and logs failures at
// WARN. A degraded dependency never blocks startup; readiness keeps
// reporting it until it recovers.
func logStartupHealth(ctx context.Context, registry ports.HealthRegistry, logger *slog.Logger) {
	checkCtx, cancel := context.WithTimeout(ctx, startupCheckTimeout)
	defer cancel()

	for name, err := range registry.CheckAll(checkCtx) {
		if err != nil {
			logger.Warn("dependency degraded at startup",
				slog.String("component", name),
				slog.Any("error", err),
			)
		}
	}
}

// telemetrySet bundles the OpenTelemetry provider lifecycle. Every field
// stays nil when telemetry is disabled.
type telemetrySet struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (s *telemetrySet) Shutdown(ctx context.Context) error {
	var errs []error
	if s.tracer != nil {
		if err := s.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if s.meter != nil {
		if err := s.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func newTelemetry(ctx context.Context, cfg *config.Config) (*telemetrySet, error) {
	if !cfg.Telemetry.Enabled {
		return &telemetrySet{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &telemetrySet{tracer: tp, meter: mp, metrics: metrics}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.DocuSeal, "docuseal", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.SigningClient, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return acl.NewSigningClient(client, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*mail.Mailer, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return mail.New(&cfg.SMTP, metrics, logger)
	})

	do.Provide(injector, func(i do.Injector) (ports.Mailer, error) {
		return do.MustInvoke[*mail.Mailer](i), nil
	})

	do.Provide(injector, func(_ do.Injector) (*notify.Dispatcher, error) {
		return notify.New(cfg.Notify.Workers, cfg.Notify.QueueSize, cfg.Notify.TaskTimeout, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.SigningService, error) {
		client := do.MustInvoke[ports.SigningClient](i)
		mailer := do.MustInvoke[ports.Mailer](i)
		return app.NewSigningService(client, mailer, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.WebhookService, error) {
		client := do.MustInvoke[ports.SigningClient](i)
		mailer := do.MustInvoke[ports.Mailer](i)
		dispatcher := do.MustInvoke[*notify.Dispatcher](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewWebhookService(client, mailer, dispatcher, metrics, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.SigningHandler, error) {
		svc := do.MustInvoke[ports.SigningService](i)
		return handlers.NewSigningHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TemplateHandler, error) {
		svc := do.MustInvoke[ports.SigningService](i)
		return handlers.NewTemplateHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.WebhookHandler, error) {
		svc := do.MustInvoke[ports.WebhookService](i)
		return handlers.NewWebhookHandler(svc, cfg.Webhook.Secret), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(_ do.Injector) (*handlers.InfoHandler, error) {
		return handlers.NewInfoHandler(serviceName, version), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		signingH := do.MustInvoke[*handlers.SigningHandler](i)
		templateH := do.MustInvoke[*handlers.TemplateHandler](i)
		webhookH := do.MustInvoke[*handlers.WebhookHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		infoH := do.MustInvoke[*handlers.InfoHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(signingH, templateH, webhookH, healthH, infoH,
			middleware.Chain(
				middleware.Recovery(logger),
				middleware.RequestID(),
				middleware.CorrelationID(),
				middleware.OpenTelemetry(metrics),
				middleware.Logging(logger),
				middleware.Timeout(cfg.Server.WriteTimeout),
			),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
