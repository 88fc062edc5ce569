package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-store-api/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-store-api/internal/platform/observability"
	catalogactivities "github.com/Apurer/go-gin-store-api/internal/platform/temporal/activities/catalog"
	catalogworkflows "github.com/Apurer/go-gin-store-api/internal/platform/temporal/workflows/catalog"
)

func main() {
	ctx := context.Background()
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.ServiceName+"-worker")
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB, err := api.OpenDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Error("worker failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanupDB()
	catalog := api.NewCatalog(db, instruments)
	itemActivities := catalogactivities.NewActivities(catalog.Items)

	temporalClient, err := api.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, catalogworkflows.ItemCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(catalogworkflows.ItemCreationWorkflow, workflow.RegisterOptions{Name: catalogworkflows.ItemCreationWorkflowName})
	w.RegisterActivityWithOptions(itemActivities.PersistItem, activity.RegisterOptions{Name: catalogactivities.PersistItemActivityName})

	logger.Info("worker listening", slog.String("taskQueue", catalogworkflows.ItemCreationTaskQueue), slog.String("namespace", cfg.Temporal.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
