package database

import (
	"errors"
	"fmt"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/posterdesk/backend/internal/briefs"
	"github.com/posterdesk/backend/internal/settings"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrOpenFailed indicates the datastore could not be opened or created. This
// is fatal to the application; there is no degraded mode.
var ErrOpenFailed = errors.New("database: open failed")

// Open establishes the SQLite connection, ensures both tables exist, and
// seeds the default settings. The connection pool is pinned to a single
// connection; the datastore is a single-writer resource.
func Open(path string, logger *zap.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path is required", ErrOpenFailed)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&briefs.Submission{}, &settings.Setting{}, &migrationRecord{}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}

	if err := settings.Seed(db, time.Now); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}

	if err := applyMigrations(db, logger); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}

	if logger != nil {
		logger.Info("database initialized", zap.String("path", path))
	}

	return db, nil
}
