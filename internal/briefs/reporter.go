package briefs

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ErrNoSubmissions indicates an export was requested against an empty store.
var ErrNoSubmissions = errors.New("briefs: no submissions to export")

// Statistics aggregates the stored submissions.
type Statistics struct {
	Total       int64 `json:"total"`
	Submitted   int64 `json:"submitted"`
	Drafts      int64 `json:"drafts"`
	AvgProgress int   `json:"avg_progress"`
}

// ReporterConfig describes the dependencies of the export/stats reporter.
type ReporterConfig struct {
	Store  *Store
	Logger *zap.Logger
}

// Reporter produces aggregate statistics and flat CSV serialization of the
// stored submissions. It only ever reads through the record store.
type Reporter struct {
	store  *Store
	logger *zap.Logger
}

// NewReporter constructs the reporter.
func NewReporter(cfg ReporterConfig) (*Reporter, error) {
	if cfg.Store == nil {
		return nil, newStoreError(opStatistics, "missing_store", errMissingStore)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}
	return &Reporter{store: cfg.Store, logger: logger}, nil
}

// GetStatistics returns totals per status and the average progress across all
// rows, rounded to the nearest integer. An empty store yields zeros.
func (r *Reporter) GetStatistics(ctx context.Context) (Statistics, error) {
	var row struct {
		Total       int64
		Submitted   sql.NullInt64
		Drafts      sql.NullInt64
		AvgProgress sql.NullFloat64
	}

	err := r.store.db.WithContext(ctx).
		Model(&Submission{}).
		Select(
			"COUNT(*) AS total, " +
				"SUM(CASE WHEN status = 'submitted' THEN 1 ELSE 0 END) AS submitted, " +
				"SUM(CASE WHEN status = 'draft' THEN 1 ELSE 0 END) AS drafts, " +
				"AVG(progress) AS avg_progress").
		Scan(&row).Error
	if err != nil {
		r.logger.Error("statistics query failed", zap.String("operation", opStatistics), zap.Error(err))
		return Statistics{}, newStoreError(opStatistics, "query_failed", err)
	}

	return Statistics{
		Total:       row.Total,
		Submitted:   row.Submitted.Int64,
		Drafts:      row.Drafts.Int64,
		AvgProgress: int(math.Round(row.AvgProgress.Float64)),
	}, nil
}

// exportColumns is the header row, in store-column order.
var exportColumns = []string{
	"id", "project_name", "tagline", "event_date", "event_time", "venue_link",
	"primary_goal", "target_audience", "design_mood", "cta_text",
	"brand_colors", "brand_fonts", "poster_dimensions", "final_deadline",
	"contact_person", "revision_rounds", "hashtags", "qr_code_url",
	"printing_responsibility", "event_type", "budget_range",
	"inspiration_links", "file_formats", "usage_platforms", "logo_file",
	"sponsor_logos", "progress", "status", "created_at", "updated_at",
}

// ExportCSV serializes every stored submission as CSV text: a header row of
// column names, then one row per submission with text cells quoted and
// internal quotes doubled. Numeric cells stay bare. An empty store returns
// ErrNoSubmissions.
func (r *Reporter) ExportCSV(ctx context.Context) (string, error) {
	submissions, err := r.store.ListSubmissions(ctx, "")
	if err != nil {
		return "", err
	}
	if len(submissions) == 0 {
		return "", ErrNoSubmissions
	}

	var builder strings.Builder
	builder.WriteString(strings.Join(exportColumns, ","))
	for _, submission := range submissions {
		builder.WriteByte('\n')
		builder.WriteString(strings.Join(exportRow(submission), ","))
	}
	return builder.String(), nil
}

func exportRow(s Submission) []string {
	return []string{
		strconv.FormatUint(uint64(s.ID), 10),
		quoteCell(s.ProjectName),
		quoteCell(s.Tagline),
		quoteCell(s.EventDate),
		quoteCell(s.EventTime),
		quoteCell(s.VenueLink),
		quoteCell(string(s.PrimaryGoal)),
		quoteCell(s.TargetAudience),
		quoteCell(string(s.DesignMood)),
		quoteCell(s.CTAText),
		quoteCell(s.BrandColors),
		quoteCell(s.BrandFonts),
		quoteCell(string(s.PosterDimensions)),
		quoteCell(s.FinalDeadline),
		quoteCell(s.ContactPerson),
		quoteCell(s.RevisionRounds),
		quoteCell(s.Hashtags),
		quoteCell(s.QRCodeURL),
		quoteCell(s.PrintingResponsibility),
		quoteCell(s.EventType),
		quoteCell(s.BudgetRange),
		quoteCell(s.InspirationLinks),
		quoteCell(strings.Join(s.FileFormats, ",")),
		quoteCell(strings.Join(s.UsagePlatforms, ",")),
		quoteCell(s.LogoFile),
		quoteCell(s.SponsorLogos),
		strconv.Itoa(s.Progress),
		quoteCell(string(s.Status)),
		strconv.FormatInt(s.CreatedAtSeconds, 10),
		strconv.FormatInt(s.UpdatedAtSeconds, 10),
	}
}

func quoteCell(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
