package database

import (
	"errors"
	"time"

	"github.com/posterdesk/backend/internal/briefs"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const migrationBackfillProgress = "2026-07-18_backfill_submission_progress"

type migrationRecord struct {
	Name             string `gorm:"column:name;primaryKey;size:190;not null"`
	AppliedAtSeconds int64  `gorm:"column:applied_at_s;not null"`
}

func (migrationRecord) TableName() string {
	return "db_migrations"
}

type migrationDefinition struct {
	name  string
	apply func(*gorm.DB) error
}

func applyMigrations(db *gorm.DB, logger *zap.Logger) error {
	migrations := []migrationDefinition{
		{name: migrationBackfillProgress, apply: backfillSubmissionProgress},
	}

	for _, migration := range migrations {
		var record migrationRecord
		err := db.Where("name = ?", migration.name).Take(&record).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := migration.apply(db); err != nil {
			return err
		}
		appliedAt := time.Now().UTC().Unix()
		if err := db.Create(&migrationRecord{Name: migration.name, AppliedAtSeconds: appliedAt}).Error; err != nil {
			return err
		}
		if logger != nil {
			logger.Info("database migration applied", zap.String("migration", migration.name))
		}
	}
	return nil
}

// backfillSubmissionProgress recomputes stored progress for rows written by
// builds that stamped it lazily. updated_at is left alone; this is a repair,
// not an edit.
func backfillSubmissionProgress(db *gorm.DB) error {
	var submissions []briefs.Submission
	if err := db.Find(&submissions).Error; err != nil {
		return err
	}
	for _, submission := range submissions {
		computed := briefs.ComputeProgress(submission.FormData())
		if computed == submission.Progress {
			continue
		}
		err := db.Model(&briefs.Submission{}).
			Where("id = ?", submission.ID).
			UpdateColumn("progress", computed).Error
		if err != nil {
			return err
		}
	}
	return nil
}
