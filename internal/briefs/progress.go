package briefs

import (
	"math"
	"strings"
)

// scoredFieldCount is the progress denominator: thirteen text fields plus the
// two set-valued fields.
const scoredFieldCount = 13 + 2

// ComputeProgress maps form state to a completion percentage in [0,100]. A
// text field counts as filled when it is non-blank after trimming; a
// set-valued field counts when it holds at least one element. Fields outside
// the scored list (contact person, hashtags, logo uploads and the rest) never
// affect the result.
func ComputeProgress(form FormData) int {
	scoredTexts := []string{
		form.ProjectName,
		form.Tagline,
		form.EventDate,
		form.EventTime,
		form.VenueLink,
		string(form.PrimaryGoal),
		form.TargetAudience,
		string(form.DesignMood),
		form.CTAText,
		form.BrandColors,
		form.BrandFonts,
		string(form.PosterDimensions),
		form.FinalDeadline,
	}

	filled := 0
	for _, value := range scoredTexts {
		if strings.TrimSpace(value) != "" {
			filled++
		}
	}
	if len(form.FileFormats) > 0 {
		filled++
	}
	if len(form.UsagePlatforms) > 0 {
		filled++
	}

	return int(math.Round(float64(filled) / float64(scoredFieldCount) * 100))
}
