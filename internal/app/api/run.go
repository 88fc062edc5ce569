package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	storeserver "github.com/Apurer/go-gin-store-api/go"

	catalogobs "github.com/Apurer/go-gin-store-api/internal/domains/catalog/adapters/observability"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/adapters/persistence/relational"
	catalogworkflows "github.com/Apurer/go-gin-store-api/internal/domains/catalog/adapters/workflows"
	catalogapp "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
	platformdb "github.com/Apurer/go-gin-store-api/internal/platform/database"
	"github.com/Apurer/go-gin-store-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-store-api/internal/platform/observability"
)

// Catalog bundles the decorated catalog services built on one database handle.
type Catalog struct {
	Stores catalogports.StoreService
	Items  catalogports.ItemService
}

// NewCatalog wires repositories, core services and observability decorators.
func NewCatalog(db *gorm.DB, instruments *platformobservability.Instruments) Catalog {
	const scope = "internal.catalog.application"
	opts := []catalogobs.Option{
		catalogobs.WithLogger(instruments.EffectiveLogger()),
		catalogobs.WithTracer(instruments.Tracer(scope)),
		catalogobs.WithMeter(instruments.Meter(scope)),
	}
	stores := catalogapp.NewStoreService(relational.NewStoreRepository(db))
	items := catalogapp.NewItemService(
		relational.NewItemRepository(db),
		catalogapp.WithIdempotencyStore(relational.NewIdempotencyStore(db)),
	)
	return Catalog{
		Stores: catalogobs.NewStoreService(stores, opts...),
		Items:  catalogobs.NewItemService(items, opts...),
	}
}

// OpenDatabase connects to the configured backend and applies the schema.
func OpenDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func(), error) {
	db, cleanup, err := platformdb.Open(ctx, cfg.DatabaseConfig(), logger)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Run(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, cleanup, nil
}

// NewHandler builds the gin engine with middleware attached before the routes.
func NewHandler(serviceName string, catalog Catalog, workflows catalogports.ItemWorkflows) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	return storeserver.NewRouterWithGinEngine(router, storeserver.ApiHandleFunctions{
		StoreAPI: storeserver.NewStoreAPI(catalog.Stores),
		ItemAPI:  storeserver.NewItemAPI(catalog.Items, workflows),
	})
}

// Run boots the Store API with observability, repositories, and workflows wired. It returns when ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.ServiceName)
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

	db, cleanupDB, err := OpenDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupDB()
	catalog := NewCatalog(db, instruments)

	var itemWorkflows catalogports.ItemWorkflows = catalogworkflows.NewInlineItemWorkflows(catalog.Items)
	if temporalClient, err := ConnectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline item creation", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		itemWorkflows = catalogworkflows.NewTemporalItemWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewHandler(cfg.ServiceName, catalog, itemWorkflows),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Store API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Store API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("Store API shutting down")
	return server.Shutdown(shutdownCtx)
}

// ConnectTemporalClient dials Temporal with tracing and structured logging, unless disabled.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.Temporal.Disabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:     cfg.Temporal.Address,
		Namespace:    cfg.Temporal.Namespace,
		Logger:       workerlog.NewStructuredLogger(instruments.EffectiveLogger()),
		Interceptors: []interceptor.ClientInterceptor{tracingInterceptor},
	}
	return client.Dial(options)
}
