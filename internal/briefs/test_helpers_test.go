package briefs

import (
	"context"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// fakeClock hands out a controllable time so updated_at assertions are exact.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(startSeconds int64) *fakeClock {
	return &fakeClock{now: time.Unix(startSeconds, 0).UTC()}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type scriptedConfirmer struct {
	mu       sync.Mutex
	answers  []bool
	messages []string
}

func (c *scriptedConfirmer) Confirm(_ context.Context, message string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
	if len(c.answers) == 0 {
		return false, nil
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}

func (c *scriptedConfirmer) asked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string, _ Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func newTestDB(testContext *testing.T) *gorm.DB {
	testContext.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		testContext.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Submission{}); err != nil {
		testContext.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func newTestStore(testContext *testing.T, clock *fakeClock) (*Store, *gorm.DB) {
	testContext.Helper()
	db := newTestDB(testContext)
	store, err := NewStore(StoreConfig{Database: db, Clock: clock.Now})
	if err != nil {
		testContext.Fatalf("failed to build store: %v", err)
	}
	return store, db
}

// fullForm fills every scored field plus both set fields.
func fullForm() FormData {
	return FormData{
		ProjectName:      "Spring Gala",
		Tagline:          "A night to remember",
		EventDate:        "2026-04-18",
		EventTime:        "19:00",
		VenueLink:        "https://springgala.example.com",
		PrimaryGoal:      GoalSellTickets,
		TargetAudience:   "Young professionals",
		DesignMood:       MoodElegantFormal,
		CTAText:          "Get your tickets now",
		BrandColors:      "#1a1a2e, #e94560",
		BrandFonts:       "Playfair Display, Lato",
		PosterDimensions: Dimensions18x24,
		FinalDeadline:    "2026-04-01",
		FileFormats:      StringList{"PDF", "JPG"},
		UsagePlatforms:   StringList{"Social Media", "Print"},
	}
}

// sparseForm fills exactly five scored fields and leaves both set fields
// deliberately empty.
func sparseForm() FormData {
	return FormData{
		ProjectName:    "Spring Gala",
		Tagline:        "A night to remember",
		EventDate:      "2026-04-18",
		EventTime:      "19:00",
		VenueLink:      "https://springgala.example.com",
		FileFormats:    StringList{},
		UsagePlatforms: StringList{},
	}
}
