package briefs

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// Status enumerates submission lifecycle states.
type Status string

const (
	// StatusDraft marks a submission that has not been finalized.
	StatusDraft Status = "draft"
	// StatusSubmitted marks a submission the user explicitly finalized.
	StatusSubmitted Status = "submitted"
)

// PrimaryGoal enumerates the supported campaign goals.
type PrimaryGoal string

const (
	GoalSellTickets        PrimaryGoal = "sell_tickets"
	GoalDriveRegistrations PrimaryGoal = "drive_registrations"
	GoalBuildAwareness     PrimaryGoal = "build_awareness"
	GoalProductLaunch      PrimaryGoal = "product_launch"
	GoalBrandPromotion     PrimaryGoal = "brand_promotion"
)

// DesignMood enumerates the supported poster moods.
type DesignMood string

const (
	MoodElegantFormal    DesignMood = "elegant_formal"
	MoodEnergeticPlayful DesignMood = "energetic_playful"
	MoodModernMinimal    DesignMood = "modern_minimal"
	MoodVintageRetro     DesignMood = "vintage_retro"
	MoodBoldEdgy         DesignMood = "bold_edgy"
	MoodFriendlyWarm     DesignMood = "friendly_warm"
)

// PosterDimensions enumerates the supported output sizes.
type PosterDimensions string

const (
	Dimensions18x24     PosterDimensions = "18x24"
	Dimensions24x36     PosterDimensions = "24x36"
	Dimensions1080x1350 PosterDimensions = "1080x1350"
	Dimensions1200x628  PosterDimensions = "1200x628"
	DimensionsCustom    PosterDimensions = "custom"
)

const setFieldSeparator = ","

// ErrSeparatorInValue indicates a set-field element contains the storage
// separator and cannot round-trip through the comma-joined column.
var ErrSeparatorInValue = errors.New("briefs: set value contains separator")

// StringList is an ordered set of strings stored as a comma-joined text column.
type StringList []string

// Value joins the list for storage. Elements containing the separator are
// rejected so the stored value always splits back to the original sequence.
func (l StringList) Value() (driver.Value, error) {
	for _, element := range l {
		if strings.Contains(element, setFieldSeparator) {
			return nil, fmt.Errorf("%w: %q", ErrSeparatorInValue, element)
		}
	}
	return strings.Join(l, setFieldSeparator), nil
}

// Scan splits the stored column back into the ordered sequence.
func (l *StringList) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*l = nil
	case string:
		*l = splitList(value)
	case []byte:
		*l = splitList(string(value))
	default:
		return fmt.Errorf("briefs: cannot scan %T into StringList", src)
	}
	return nil
}

func splitList(joined string) StringList {
	if joined == "" {
		return nil
	}
	return StringList(strings.Split(joined, setFieldSeparator))
}

// Submission models one persisted poster intake record.
type Submission struct {
	ID                     uint             `gorm:"column:id;primaryKey"`
	ProjectName            string           `gorm:"column:project_name"`
	Tagline                string           `gorm:"column:tagline"`
	EventDate              string           `gorm:"column:event_date"`
	EventTime              string           `gorm:"column:event_time"`
	VenueLink              string           `gorm:"column:venue_link"`
	PrimaryGoal            PrimaryGoal      `gorm:"column:primary_goal"`
	TargetAudience         string           `gorm:"column:target_audience"`
	DesignMood             DesignMood       `gorm:"column:design_mood"`
	CTAText                string           `gorm:"column:cta_text"`
	BrandColors            string           `gorm:"column:brand_colors"`
	BrandFonts             string           `gorm:"column:brand_fonts"`
	PosterDimensions       PosterDimensions `gorm:"column:poster_dimensions"`
	FinalDeadline          string           `gorm:"column:final_deadline"`
	ContactPerson          string           `gorm:"column:contact_person"`
	RevisionRounds         string           `gorm:"column:revision_rounds;default:'2'"`
	Hashtags               string           `gorm:"column:hashtags"`
	QRCodeURL              string           `gorm:"column:qr_code_url"`
	PrintingResponsibility string           `gorm:"column:printing_responsibility"`
	EventType              string           `gorm:"column:event_type"`
	BudgetRange            string           `gorm:"column:budget_range"`
	InspirationLinks       string           `gorm:"column:inspiration_links"`
	FileFormats            StringList       `gorm:"column:file_formats;type:text"`
	UsagePlatforms         StringList       `gorm:"column:usage_platforms;type:text"`
	LogoFile               string           `gorm:"column:logo_file"`
	SponsorLogos           string           `gorm:"column:sponsor_logos"`
	Progress               int              `gorm:"column:progress;not null;default:0"`
	Status                 Status           `gorm:"column:status;size:16;not null;default:'draft'"`
	CreatedAtSeconds       int64            `gorm:"column:created_at;not null"`
	UpdatedAtSeconds       int64            `gorm:"column:updated_at;not null"`
}

// TableName provides the explicit table binding for GORM.
func (Submission) TableName() string {
	return "submissions"
}

// FormData carries the transient form state handed over by the UI. A zero ID
// means the record has never been persisted.
type FormData struct {
	ID                     uint
	ProjectName            string
	Tagline                string
	EventDate              string
	EventTime              string
	VenueLink              string
	PrimaryGoal            PrimaryGoal
	TargetAudience         string
	DesignMood             DesignMood
	CTAText                string
	BrandColors            string
	BrandFonts             string
	PosterDimensions       PosterDimensions
	FinalDeadline          string
	ContactPerson          string
	RevisionRounds         string
	Hashtags               string
	QRCodeURL              string
	PrintingResponsibility string
	EventType              string
	BudgetRange            string
	InspirationLinks       string
	FileFormats            StringList
	UsagePlatforms         StringList
	LogoFile               string
	SponsorLogos           string
}

// FormData converts a stored submission back into editable form state, as the
// lifecycle controller hands records to the UI by value.
func (s Submission) FormData() FormData {
	return FormData{
		ID:                     s.ID,
		ProjectName:            s.ProjectName,
		Tagline:                s.Tagline,
		EventDate:              s.EventDate,
		EventTime:              s.EventTime,
		VenueLink:              s.VenueLink,
		PrimaryGoal:            s.PrimaryGoal,
		TargetAudience:         s.TargetAudience,
		DesignMood:             s.DesignMood,
		CTAText:                s.CTAText,
		BrandColors:            s.BrandColors,
		BrandFonts:             s.BrandFonts,
		PosterDimensions:       s.PosterDimensions,
		FinalDeadline:          s.FinalDeadline,
		ContactPerson:          s.ContactPerson,
		RevisionRounds:         s.RevisionRounds,
		Hashtags:               s.Hashtags,
		QRCodeURL:              s.QRCodeURL,
		PrintingResponsibility: s.PrintingResponsibility,
		EventType:              s.EventType,
		BudgetRange:            s.BudgetRange,
		InspirationLinks:       s.InspirationLinks,
		FileFormats:            append(StringList(nil), s.FileFormats...),
		UsagePlatforms:         append(StringList(nil), s.UsagePlatforms...),
		LogoFile:               s.LogoFile,
		SponsorLogos:           s.SponsorLogos,
	}
}
