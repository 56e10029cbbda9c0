package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/config"
	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
	"github.com/mamadbah2/vertical-farm/internal/repository/mongodb"
	"github.com/mamadbah2/vertical-farm/internal/repository/sqlstore"
	"github.com/mamadbah2/vertical-farm/internal/synthetic"
	"github.com/mamadbah2/vertical-farm/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Development))
	defer func() { _ = baseLogger.Sync() }()
	seedLogger := logger.Named(baseLogger, "seed")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := sqlstore.Open(cfg.Database.Path, logger.Named(baseLogger, "repo.sql"))
	if err != nil {
		seedLogger.Fatal("failed to open inventory database", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	var mongoRepo *mongodb.MongoDBRepository
	if cfg.MongoDB.Enabled() {
		mongoRepo, err = mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			seedLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() { _ = mongoRepo.Close(context.Background()) }()
	}

	gen := synthetic.NewGenerator(cfg.Seed.Value, time.Now().In(cfg.Reporting.Location()))
	for _, f := range gen.Fixtures(cfg.Seed.ContainerCount, cfg.Seed.HistoryDays) {
		// One transaction per container. Mongo snapshots are upserts.
		err := store.Transaction(ctx, func(tx *sqlstore.Store) error {
			var snapshots synthetic.SnapshotWriter = tx
			if mongoRepo != nil {
				snapshots = mongoRepo
			}
			return synthetic.Load(ctx, tx, snapshots, f)
		})
		switch {
		case errs.IsConflict(err):
			seedLogger.Warn("container already seeded, skipping", zap.String("name", f.Container.Name))
		case err != nil:
			seedLogger.Fatal("failed to seed container", zap.String("name", f.Container.Name), zap.Error(err))
		default:
			seedLogger.Info("container seeded",
				zap.String("id", f.Container.ID),
				zap.String("name", f.Container.Name),
				zap.Int("trays", len(f.Trays)),
				zap.Int("panels", len(f.Panels)),
				zap.Int("crops", len(f.Crops)),
				zap.Int("snapshots", len(f.Snapshots)))
		}
	}
}
