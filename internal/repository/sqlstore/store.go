package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
)

// Store is the relational persistence layer for containers, storage units,
// placements, crops and utilization snapshots.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open connects to the SQLite database at path and migrates the schema.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		return nil, errors.New("database path must not be empty")
	}

	db, err := gorm.Open(sqlite.Open(withForeignKeys(path)), &gorm.Config{
		Logger:         newGormLogger(logger, 200*time.Millisecond),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql pool: %w", err)
	}
	// SQLite serializes writers; a single connection avoids "database is locked".
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&containerRecord{},
		&trayRecord{},
		&trayLocationRecord{},
		&panelRecord{},
		&panelLocationRecord{},
		&cropRecord{},
		&snapshotRecord{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	logger.Info("sql store ready", zap.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

// Transaction runs fn against a store bound to one database transaction.
// fn must use the store it is given; returning an error rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, logger: s.logger})
	})
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withForeignKeys(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// translate maps driver errors onto application errors.
func translate(err error, conflictDetail string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Conflict("%s", conflictDetail)
	}
	return err
}
