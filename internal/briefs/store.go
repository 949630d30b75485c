package briefs

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errMissingDatabase = errors.New("database handle is required")
	noOpLogger         = zap.NewNop()
)

// Default column values applied when a brand-new record leaves them unset.
var (
	defaultRevisionRounds = "2"
	defaultFileFormats    = StringList{"PDF", "JPG"}
	defaultUsagePlatforms = StringList{"Social Media"}
)

// StoreConfig describes the dependencies of the record store.
type StoreConfig struct {
	Database *gorm.DB
	Clock    func() time.Time
	Logger   *zap.Logger
}

// Store owns all reads and writes against the submissions table. Other
// components receive copies of the stored rows, never the handle itself.
type Store struct {
	db     *gorm.DB
	clock  func() time.Time
	logger *zap.Logger
}

// NewStore constructs the record store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Database == nil {
		return nil, newStoreError(opStoreNew, "missing_database", errMissingDatabase)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	return &Store{db: cfg.Database, clock: clock, logger: logger}, nil
}

// SaveSubmission persists form state, recomputing progress first so the
// stored value always reflects the stored content. A zero form ID inserts a
// new row and returns its identifier; otherwise every column of the existing
// row is overwritten except id and created_at. The status column follows
// asDraft.
func (s *Store) SaveSubmission(ctx context.Context, form FormData, asDraft bool) (uint, error) {
	now := s.clock().UTC().Unix()
	record := newRecord(form, asDraft, now)

	if form.ID == 0 {
		if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
			s.logError(opSaveSubmission, "insert_failed", err)
			return 0, newStoreError(opSaveSubmission, "insert_failed", err)
		}
		return record.ID, nil
	}

	result := s.db.WithContext(ctx).
		Model(&Submission{}).
		Where("id = ?", form.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(record)
	if result.Error != nil {
		s.logError(opSaveSubmission, "update_failed", result.Error, zap.Uint("submission_id", form.ID))
		return 0, newStoreError(opSaveSubmission, "update_failed", result.Error)
	}
	if result.RowsAffected == 0 {
		s.logError(opSaveSubmission, "missing_row", nil, zap.Uint("submission_id", form.ID))
		return 0, newStoreError(opSaveSubmission, "missing_row", gorm.ErrRecordNotFound)
	}
	return form.ID, nil
}

// ListSubmissions returns stored submissions ordered most recently touched
// first. An empty status lists every record; no matches yield an empty slice,
// never an error.
func (s *Store) ListSubmissions(ctx context.Context, status Status) ([]Submission, error) {
	query := s.db.WithContext(ctx).Order("updated_at DESC, id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var submissions []Submission
	if err := query.Find(&submissions).Error; err != nil {
		s.logError(opListSubmissions, "query_failed", err, zap.String("status", string(status)))
		return nil, newStoreError(opListSubmissions, "query_failed", err)
	}
	return submissions, nil
}

// GetSubmission returns the record for a previously issued identifier, or nil
// when no row exists.
func (s *Store) GetSubmission(ctx context.Context, id uint) (*Submission, error) {
	var submission Submission
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logError(opGetSubmission, "query_failed", err, zap.Uint("submission_id", id))
		return nil, newStoreError(opGetSubmission, "query_failed", err)
	}
	return &submission, nil
}

// DeleteSubmission removes the row. Deleting an unknown identifier is not an
// error; the returned flag reports whether a row was actually removed.
func (s *Store) DeleteSubmission(ctx context.Context, id uint) (bool, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Submission{})
	if result.Error != nil {
		s.logError(opDeleteSubmission, "delete_failed", result.Error, zap.Uint("submission_id", id))
		return false, newStoreError(opDeleteSubmission, "delete_failed", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ClearAll deletes every submission and compacts the underlying file.
// Settings are untouched.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("DELETE FROM submissions").Error; err != nil {
		s.logError(opClearAll, "delete_failed", err)
		return newStoreError(opClearAll, "delete_failed", err)
	}
	if err := s.db.WithContext(ctx).Exec("VACUUM").Error; err != nil {
		s.logError(opClearAll, "vacuum_failed", err)
		return newStoreError(opClearAll, "vacuum_failed", err)
	}
	return nil
}

func newRecord(form FormData, asDraft bool, nowSeconds int64) Submission {
	status := StatusSubmitted
	if asDraft {
		status = StatusDraft
	}

	record := Submission{
		ID:                     form.ID,
		ProjectName:            form.ProjectName,
		Tagline:                form.Tagline,
		EventDate:              form.EventDate,
		EventTime:              form.EventTime,
		VenueLink:              form.VenueLink,
		PrimaryGoal:            form.PrimaryGoal,
		TargetAudience:         form.TargetAudience,
		DesignMood:             form.DesignMood,
		CTAText:                form.CTAText,
		BrandColors:            form.BrandColors,
		BrandFonts:             form.BrandFonts,
		PosterDimensions:       form.PosterDimensions,
		FinalDeadline:          form.FinalDeadline,
		ContactPerson:          form.ContactPerson,
		RevisionRounds:         form.RevisionRounds,
		Hashtags:               form.Hashtags,
		QRCodeURL:              form.QRCodeURL,
		PrintingResponsibility: form.PrintingResponsibility,
		EventType:              form.EventType,
		BudgetRange:            form.BudgetRange,
		InspirationLinks:       form.InspirationLinks,
		FileFormats:            form.FileFormats,
		UsagePlatforms:         form.UsagePlatforms,
		LogoFile:               form.LogoFile,
		SponsorLogos:           form.SponsorLogos,
		Progress:               ComputeProgress(form),
		Status:                 status,
		CreatedAtSeconds:       nowSeconds,
		UpdatedAtSeconds:       nowSeconds,
	}

	if form.ID == 0 {
		if strings.TrimSpace(record.RevisionRounds) == "" {
			record.RevisionRounds = defaultRevisionRounds
		}
		if record.FileFormats == nil {
			record.FileFormats = append(StringList(nil), defaultFileFormats...)
		}
		if record.UsagePlatforms == nil {
			record.UsagePlatforms = append(StringList(nil), defaultUsagePlatforms...)
		}
	}

	return record
}

func (s *Store) logError(operation, reason string, err error, fields ...zap.Field) {
	attrs := []zap.Field{
		zap.String("operation", operation),
		zap.String("reason", reason),
	}
	if err != nil {
		attrs = append(attrs, zap.Error(err))
	}
	attrs = append(attrs, fields...)
	s.logger.Error("record store error", attrs...)
}
