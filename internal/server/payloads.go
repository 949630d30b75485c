package server

import "github.com/posterdesk/backend/internal/briefs"

// briefPayload mirrors the form fields the wizard UI submits. Field names
// match the store columns.
type briefPayload struct {
	ID                     uint     `json:"id"`
	ProjectName            string   `json:"project_name"`
	Tagline                string   `json:"tagline"`
	EventDate              string   `json:"event_date"`
	EventTime              string   `json:"event_time"`
	VenueLink              string   `json:"venue_link"`
	PrimaryGoal            string   `json:"primary_goal"`
	TargetAudience         string   `json:"target_audience"`
	DesignMood             string   `json:"design_mood"`
	CTAText                string   `json:"cta_text"`
	BrandColors            string   `json:"brand_colors"`
	BrandFonts             string   `json:"brand_fonts"`
	PosterDimensions       string   `json:"poster_dimensions"`
	FinalDeadline          string   `json:"final_deadline"`
	ContactPerson          string   `json:"contact_person"`
	RevisionRounds         string   `json:"revision_rounds"`
	Hashtags               string   `json:"hashtags"`
	QRCodeURL              string   `json:"qr_code_url"`
	PrintingResponsibility string   `json:"printing_responsibility"`
	EventType              string   `json:"event_type"`
	BudgetRange            string   `json:"budget_range"`
	InspirationLinks       string   `json:"inspiration_links"`
	FileFormats            []string `json:"file_formats"`
	UsagePlatforms         []string `json:"usage_platforms"`
	LogoFile               string   `json:"logo_file"`
	SponsorLogos           string   `json:"sponsor_logos"`
}

func (p briefPayload) formData() briefs.FormData {
	return briefs.FormData{
		ID:                     p.ID,
		ProjectName:            p.ProjectName,
		Tagline:                p.Tagline,
		EventDate:              p.EventDate,
		EventTime:              p.EventTime,
		VenueLink:              p.VenueLink,
		PrimaryGoal:            briefs.PrimaryGoal(p.PrimaryGoal),
		TargetAudience:         p.TargetAudience,
		DesignMood:             briefs.DesignMood(p.DesignMood),
		CTAText:                p.CTAText,
		BrandColors:            p.BrandColors,
		BrandFonts:             p.BrandFonts,
		PosterDimensions:       briefs.PosterDimensions(p.PosterDimensions),
		FinalDeadline:          p.FinalDeadline,
		ContactPerson:          p.ContactPerson,
		RevisionRounds:         p.RevisionRounds,
		Hashtags:               p.Hashtags,
		QRCodeURL:              p.QRCodeURL,
		PrintingResponsibility: p.PrintingResponsibility,
		EventType:              p.EventType,
		BudgetRange:            p.BudgetRange,
		InspirationLinks:       p.InspirationLinks,
		FileFormats:            briefs.StringList(p.FileFormats),
		UsagePlatforms:         briefs.StringList(p.UsagePlatforms),
		LogoFile:               p.LogoFile,
		SponsorLogos:           p.SponsorLogos,
	}
}

type saveRequestPayload struct {
	Confirmed bool         `json:"confirmed"`
	Brief     briefPayload `json:"brief"`
}

type confirmPayload struct {
	Confirmed bool `json:"confirmed"`
}

type loadRequestPayload struct {
	ID uint `json:"id"`
}

type settingPayload struct {
	Value string `json:"value"`
}

// submissionPayload is the wire form of a stored submission.
type submissionPayload struct {
	briefPayload
	Progress         int    `json:"progress"`
	Status           string `json:"status"`
	CreatedAtSeconds int64  `json:"created_at"`
	UpdatedAtSeconds int64  `json:"updated_at"`
}

func submissionPayloadFrom(s briefs.Submission) submissionPayload {
	return submissionPayload{
		briefPayload: briefPayload{
			ID:                     s.ID,
			ProjectName:            s.ProjectName,
			Tagline:                s.Tagline,
			EventDate:              s.EventDate,
			EventTime:              s.EventTime,
			VenueLink:              s.VenueLink,
			PrimaryGoal:            string(s.PrimaryGoal),
			TargetAudience:         s.TargetAudience,
			DesignMood:             string(s.DesignMood),
			CTAText:                s.CTAText,
			BrandColors:            s.BrandColors,
			BrandFonts:             s.BrandFonts,
			PosterDimensions:       string(s.PosterDimensions),
			FinalDeadline:          s.FinalDeadline,
			ContactPerson:          s.ContactPerson,
			RevisionRounds:         s.RevisionRounds,
			Hashtags:               s.Hashtags,
			QRCodeURL:              s.QRCodeURL,
			PrintingResponsibility: s.PrintingResponsibility,
			EventType:              s.EventType,
			BudgetRange:            s.BudgetRange,
			InspirationLinks:       s.InspirationLinks,
			FileFormats:            s.FileFormats,
			UsagePlatforms:         s.UsagePlatforms,
			LogoFile:               s.LogoFile,
			SponsorLogos:           s.SponsorLogos,
		},
		Progress:         s.Progress,
		Status:           string(s.Status),
		CreatedAtSeconds: s.CreatedAtSeconds,
		UpdatedAtSeconds: s.UpdatedAtSeconds,
	}
}
