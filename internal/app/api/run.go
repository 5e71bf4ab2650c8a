package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	cataloghttp "github.com/Apurer/go-gin-order-server/internal/domains/catalog/adapters/http"
	catalogpostgres "github.com/Apurer/go-gin-order-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-gin-order-server/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-order-server/internal/domains/catalog/ports"
	orderinghttp "github.com/Apurer/go-gin-order-server/internal/domains/ordering/adapters/http"
	orderingobs "github.com/Apurer/go-gin-order-server/internal/domains/ordering/adapters/observability"
	orderingpostgres "github.com/Apurer/go-gin-order-server/internal/domains/ordering/adapters/persistence/postgres"
	orderingapp "github.com/Apurer/go-gin-order-server/internal/domains/ordering/application"
	orderingports "github.com/Apurer/go-gin-order-server/internal/domains/ordering/ports"
	reportinghttp "github.com/Apurer/go-gin-order-server/internal/domains/reporting/adapters/http"
	reportingobs "github.com/Apurer/go-gin-order-server/internal/domains/reporting/adapters/observability"
	reportingpostgres "github.com/Apurer/go-gin-order-server/internal/domains/reporting/adapters/persistence/postgres"
	reportingapp "github.com/Apurer/go-gin-order-server/internal/domains/reporting/application"
	reportingports "github.com/Apurer/go-gin-order-server/internal/domains/reporting/ports"
	"github.com/Apurer/go-gin-order-server/internal/platform/memstore"
	"github.com/Apurer/go-gin-order-server/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-order-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-order-server/internal/platform/postgres"
)

// Run boots the order-management HTTP API with observability and repositories wired.
func Run(ctx context.Context) error {
	const serviceName = "order-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	catalogRepo, orderingRepo, reportingRepo, cleanupRepos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupRepos()

	catalogService := catalogapp.NewService(catalogRepo)
	orderingService := orderingobs.New(
		orderingapp.NewService(orderingRepo),
		orderingobs.WithLogger(logger),
		orderingobs.WithTracer(instruments.Tracer("internal.ordering.application")),
		orderingobs.WithMeter(instruments.Meter("internal.ordering.application")),
	)
	reportingService := reportingobs.New(
		reportingapp.NewService(reportingRepo),
		reportingobs.WithLogger(logger),
		reportingobs.WithTracer(instruments.Tracer("internal.reporting.application")),
		reportingobs.WithMeter(instruments.Meter("internal.reporting.application")),
	)

	handlers := Handlers{
		Catalog:   cataloghttp.NewAPI(catalogService),
		Ordering:  orderinghttp.NewAPI(orderingService),
		Reporting: reportinghttp.NewAPI(reportingService, cfg.StatsWindowDays, cfg.StatsTopLimit),
	}

	router := NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("order API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildRepositories wires the persistence ports against postgres when a DSN
// is configured and reachable, otherwise against the shared in-memory store.
func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (
	catalogports.Repository, orderingports.Repository, reportingports.Repository, func(), error) {
	db, cleanup := platformpostgres.ConnectWithCleanup(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		store := memstore.New(logger)
		return store, store, store, func() {}, nil
	}
	if err := migrations.Run(db); err != nil {
		cleanup()
		return nil, nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("repositories configured with postgres")
	return catalogpostgres.NewRepository(db, logger),
		orderingpostgres.NewRepository(db),
		reportingpostgres.NewRepository(db),
		cleanup, nil
}
