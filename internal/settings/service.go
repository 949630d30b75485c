package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting stores one persistent key/value pair.
type Setting struct {
	Key              string `gorm:"column:key;primaryKey;size:128;not null"`
	Value            string `gorm:"column:value;type:text"`
	UpdatedAtSeconds int64  `gorm:"column:updated_at;not null"`
}

// TableName provides the explicit table binding for GORM.
func (Setting) TableName() string {
	return "settings"
}

// Well-known setting keys.
const (
	KeyTheme         = "theme"
	KeyAutoSave      = "auto_save"
	KeyNotifications = "notifications"
)

// Defaults returns the settings seeded on first run, in seed order.
func Defaults() []Setting {
	return []Setting{
		{Key: KeyTheme, Value: "system"},
		{Key: KeyAutoSave, Value: "true"},
		{Key: KeyNotifications, Value: "true"},
	}
}

var errMissingDatabase = errors.New("settings: database handle is required")

// ServiceConfig describes the dependencies of the settings service.
type ServiceConfig struct {
	Database *gorm.DB
	Clock    func() time.Time
	Logger   *zap.Logger
}

// Service performs point lookups and upserts over the settings table.
type Service struct {
	db     *gorm.DB
	clock  func() time.Time
	logger *zap.Logger
}

// NewService constructs the settings service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, errMissingDatabase
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{db: cfg.Database, clock: clock, logger: logger}, nil
}

// Get returns the value for a key. An unknown key is reported through the
// boolean, not as an error.
func (s *Service) Get(ctx context.Context, key string) (string, bool, error) {
	var setting Setting
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("setting lookup failed", zap.String("key", key), zap.Error(err))
		return "", false, fmt.Errorf("settings: get %q: %w", key, err)
	}
	return setting.Value, true, nil
}

// Update upserts a key/value pair, refreshing its updated_at timestamp.
func (s *Service) Update(ctx context.Context, key, value string) error {
	setting := Setting{
		Key:              key,
		Value:            value,
		UpdatedAtSeconds: s.clock().UTC().Unix(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
	if err != nil {
		s.logger.Error("setting update failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("settings: update %q: %w", key, err)
	}
	return nil
}

// Seed inserts the default settings, leaving already-present keys untouched.
// It runs on every startup so a fresh datastore always carries the documented
// defaults.
func Seed(db *gorm.DB, clock func() time.Time) error {
	if clock == nil {
		clock = time.Now
	}
	now := clock().UTC().Unix()
	for _, setting := range Defaults() {
		setting.UpdatedAtSeconds = now
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&setting).Error
		if err != nil {
			return fmt.Errorf("settings: seed %q: %w", setting.Key, err)
		}
	}
	return nil
}
