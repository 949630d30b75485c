package briefs

import "testing"

func TestComputeProgressEmptyFormIsZero(testContext *testing.T) {
	if got := ComputeProgress(FormData{}); got != 0 {
		testContext.Fatalf("expected 0 for empty form, got %d", got)
	}
}

func TestComputeProgressFullFormIsHundred(testContext *testing.T) {
	if got := ComputeProgress(fullForm()); got != 100 {
		testContext.Fatalf("expected 100 for full form, got %d", got)
	}
}

func TestComputeProgressRoundsFilledRatio(testContext *testing.T) {
	tests := []struct {
		name     string
		form     FormData
		expected int
	}{
		{name: "five-of-fifteen", form: sparseForm(), expected: 33},
		{
			name:     "one-of-fifteen",
			form:     FormData{ProjectName: "Solo"},
			expected: 7,
		},
		{
			name: "sets-only",
			form: FormData{
				FileFormats:    StringList{"PDF"},
				UsagePlatforms: StringList{"Print"},
			},
			expected: 13,
		},
	}

	for _, tt := range tests {
		testContext.Run(tt.name, func(testContext *testing.T) {
			if got := ComputeProgress(tt.form); got != tt.expected {
				testContext.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestComputeProgressIgnoresUnscoredFields(testContext *testing.T) {
	form := sparseForm()
	base := ComputeProgress(form)

	form.ContactPerson = "Dana Reyes"
	form.Hashtags = "#springgala"
	form.QRCodeURL = "https://example.com/qr"
	form.LogoFile = "logo.png"
	form.SponsorLogos = "sponsors.zip"
	form.RevisionRounds = "4"
	form.EventType = "gala"
	form.BudgetRange = "$500-$1000"
	form.InspirationLinks = "https://example.com/board"
	form.PrintingResponsibility = "client"

	if got := ComputeProgress(form); got != base {
		testContext.Fatalf("unscored fields changed progress: %d vs %d", got, base)
	}
}

func TestComputeProgressTreatsBlankAndWhitespaceAsUnfilled(testContext *testing.T) {
	form := sparseForm()
	form.Tagline = "   "
	if got := ComputeProgress(form); got != 27 {
		testContext.Fatalf("expected whitespace tagline to be unfilled, got %d", got)
	}
}

func TestComputeProgressTreatsEmptySetAsUnfilled(testContext *testing.T) {
	form := fullForm()
	form.FileFormats = StringList{}
	form.UsagePlatforms = nil
	if got := ComputeProgress(form); got != 87 {
		testContext.Fatalf("expected 87 with both sets empty, got %d", got)
	}
}
