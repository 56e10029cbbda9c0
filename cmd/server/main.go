package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/config"
	"github.com/mamadbah2/vertical-farm/internal/repository/mongodb"
	"github.com/mamadbah2/vertical-farm/internal/repository/sheets"
	"github.com/mamadbah2/vertical-farm/internal/repository/sqlstore"
	"github.com/mamadbah2/vertical-farm/internal/scheduler"
	"github.com/mamadbah2/vertical-farm/internal/server/handlers"
	"github.com/mamadbah2/vertical-farm/internal/server/router"
	containersvc "github.com/mamadbah2/vertical-farm/internal/service/containers"
	inventorysvc "github.com/mamadbah2/vertical-farm/internal/service/inventory"
	reportingsvc "github.com/mamadbah2/vertical-farm/internal/service/reporting"
	"github.com/mamadbah2/vertical-farm/pkg/clients/alerts"
	"github.com/mamadbah2/vertical-farm/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Development))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := sqlstore.Open(cfg.Database.Path, logger.Named(baseLogger, "repo.sql"))
	if err != nil {
		baseLogger.Fatal("failed to open inventory database", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			baseLogger.Error("failed to close inventory database", zap.Error(err))
		}
	}()

	var snapshots reportingsvc.SnapshotStore = store
	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		snapshots = mongoRepo
		baseLogger.Info("snapshots archived in mongodb", zap.String("db", cfg.MongoDB.DBName))
	}

	opts := []reportingsvc.Option{reportingsvc.WithLocation(cfg.Reporting.Location())}
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		opts = append(opts, reportingsvc.WithExporter(sheets.NewSnapshotExporter(sheetsRepo)))
	} else {
		baseLogger.Warn("google sheets not configured, snapshot export disabled")
	}
	if cfg.Alerts.Enabled() {
		opts = append(opts, reportingsvc.WithAlerts(alerts.NewClient(cfg.Alerts), cfg.Alerts.Threshold))
		baseLogger.Info("utilization alerts enabled", zap.Int("threshold", cfg.Alerts.Threshold))
	}

	inventorySvc := inventorysvc.NewService(store, logger.Named(baseLogger, "svc.inventory"))
	containerSvc := containersvc.NewService(store, logger.Named(baseLogger, "svc.containers"))
	reportingSvc := reportingsvc.NewService(store, inventorySvc, snapshots, logger.Named(baseLogger, "svc.reporting"), opts...)

	engine := router.New(
		handlers.NewContainerHandler(containerSvc, logger.Named(baseLogger, "handlers.containers")),
		handlers.NewInventoryHandler(inventorySvc, reportingSvc, logger.Named(baseLogger, "handlers.inventory")),
		logger.Named(baseLogger, "router"),
	)

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
