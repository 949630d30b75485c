package briefs

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestSaveSubmissionRoundTrip(testContext *testing.T) {
	clock := newFakeClock(1700000000)
	store, _ := newTestStore(testContext, clock)

	form := fullForm()
	id, err := store.SaveSubmission(context.Background(), form, false)
	if err != nil {
		testContext.Fatalf("unexpected save error: %v", err)
	}
	if id == 0 {
		testContext.Fatalf("expected assigned identifier")
	}

	stored, err := store.GetSubmission(context.Background(), id)
	if err != nil {
		testContext.Fatalf("unexpected get error: %v", err)
	}
	if stored == nil {
		testContext.Fatalf("expected stored submission")
	}
	if stored.ProjectName != form.ProjectName {
		testContext.Fatalf("unexpected project name %q", stored.ProjectName)
	}
	if !reflect.DeepEqual(stored.FileFormats, form.FileFormats) {
		testContext.Fatalf("file formats did not round-trip: %#v", stored.FileFormats)
	}
	if !reflect.DeepEqual(stored.UsagePlatforms, form.UsagePlatforms) {
		testContext.Fatalf("usage platforms did not round-trip: %#v", stored.UsagePlatforms)
	}
	if stored.Progress != ComputeProgress(form) {
		testContext.Fatalf("stored progress %d does not match computed %d", stored.Progress, ComputeProgress(form))
	}
	if stored.Status != StatusSubmitted {
		testContext.Fatalf("expected submitted status, got %q", stored.Status)
	}
	if stored.CreatedAtSeconds != 1700000000 || stored.UpdatedAtSeconds != 1700000000 {
		testContext.Fatalf("unexpected timestamps: %d / %d", stored.CreatedAtSeconds, stored.UpdatedAtSeconds)
	}
}

func TestSaveSubmissionAppliesInsertDefaults(testContext *testing.T) {
	clock := newFakeClock(1700000000)
	store, _ := newTestStore(testContext, clock)

	form := FormData{ProjectName: "Defaults"}
	id, err := store.SaveSubmission(context.Background(), form, true)
	if err != nil {
		testContext.Fatalf("unexpected save error: %v", err)
	}

	stored, err := store.GetSubmission(context.Background(), id)
	if err != nil || stored == nil {
		testContext.Fatalf("failed to reload submission: %v", err)
	}
	if stored.RevisionRounds != "2" {
		testContext.Fatalf("expected default revision rounds, got %q", stored.RevisionRounds)
	}
	if !reflect.DeepEqual(stored.FileFormats, StringList{"PDF", "JPG"}) {
		testContext.Fatalf("expected default file formats, got %#v", stored.FileFormats)
	}
	if !reflect.DeepEqual(stored.UsagePlatforms, StringList{"Social Media"}) {
		testContext.Fatalf("expected default usage platforms, got %#v", stored.UsagePlatforms)
	}
	if stored.Status != StatusDraft {
		testContext.Fatalf("expected draft status, got %q", stored.Status)
	}
}

func TestSaveSubmissionUpdatePreservesCreatedAt(testContext *testing.T) {
	clock := newFakeClock(1700000000)
	store, _ := newTestStore(testContext, clock)

	form := sparseForm()
	id, err := store.SaveSubmission(context.Background(), form, true)
	if err != nil {
		testContext.Fatalf("unexpected insert error: %v", err)
	}

	clock.Advance(90 * time.Second)
	form = fullForm()
	form.ID = id
	updatedID, err := store.SaveSubmission(context.Background(), form, false)
	if err != nil {
		testContext.Fatalf("unexpected update error: %v", err)
	}
	if updatedID != id {
		testContext.Fatalf("identifier changed on update: %d vs %d", updatedID, id)
	}

	stored, err := store.GetSubmission(context.Background(), id)
	if err != nil || stored == nil {
		testContext.Fatalf("failed to reload submission: %v", err)
	}
	if stored.CreatedAtSeconds != 1700000000 {
		testContext.Fatalf("created_at changed on update: %d", stored.CreatedAtSeconds)
	}
	if stored.UpdatedAtSeconds != 1700000090 {
		testContext.Fatalf("updated_at not refreshed: %d", stored.UpdatedAtSeconds)
	}
	if stored.Status != StatusSubmitted {
		testContext.Fatalf("expected submitted status after finalize, got %q", stored.Status)
	}
	if stored.Progress != 100 {
		testContext.Fatalf("expected recomputed progress 100, got %d", stored.Progress)
	}
}

func TestSaveSubmissionRejectsUnknownIdentifier(testContext *testing.T) {
	clock := newFakeClock(1700000000)
	store, _ := newTestStore(testContext, clock)

	form := sparseForm()
	form.ID = 42
	if _, err := store.SaveSubmission(context.Background(), form, true); err == nil {
		testContext.Fatalf("expected error updating unknown identifier")
	}
}

func TestSaveSubmissionRejectsSeparatorInSetValues(testContext *testing.T) {
	clock := newFakeClock(1700000000)
	store, _ := newTestStore(testContext, clock)

	form := fullForm()
	form.FileFormats = StringList{"PDF,JPG"}
	_, err := store.SaveSubmission(context.Background(), form, true)
	if !errors.Is(err, ErrSeparatorInValue) {
		testContext.Fatalf("expected ErrSeparatorInValue, got %v", err)
	}

	submissions, err := store.ListSubmissions(context.Background(), "")
	if err != nil {
		testContext.Fatalf("unexpected list error: %v", err)
	}
	if len(submissions) != 0 {
		testContext.Fatalf("rejected save must not persist a row, got %d", len(submissions))
	}
}

func TestListSubmissionsFiltersByStatus(testContext *testing.T) {
	clock := newFakeClock(1700000000)
	store, _ := newTestStore(testContext, clock)

	draftID, err := store.SaveSubmission(context.Background(), sparseForm(), true)
	if err != nil {
		testContext.Fatalf("unexpected draft save error: %v", err)
	}
	clock.Advance(time.Second)
	submittedID, err := store.SaveSubmission(context.Background(), fullForm(), false)
	if err != nil {
		testContext.Fatalf("unexpected submitted save error: %v", err)
	}

	drafts, err := store.ListSubmissions(context.Background(), StatusDraft)
	if err != nil {
		testContext.Fatalf("unexpected list error: %v", err)
	}
	if len(drafts) != 1 || drafts[0].ID != draftID {
		testContext.Fatalf("unexpected draft listing: %#v", drafts)
	}
	for _, submission := range drafts {
		if submission.Status != StatusDraft {
			testContext.Fatalf("draft listing contains status %q", submission.Status)
		}
	}

	submitted, err := store.ListSubmissions(context.Background(), StatusSubmitted)
	if err != nil {
		testContext.Fatalf("unexpected list error: %v", err)
	}
	if len(submitted) != 1 || submitted[0].ID != submittedID {
		testContext.Fatalf("unexpected submitted listing: %#v", submitted)
	}
}

func TestListSubmissionsOrdersByMostRecentlyTouched(testContext *testing.T) {
	clock := newFakeClock(1700000000)
	store, _ := newTestStore(testContext, clock)

	firstID, err := store.SaveSubmission(context.Background(), sparseForm(), true)
	if err != nil {
		testContext.Fatalf("unexpected save error: %v", err)
	}
	clock.Advance(time.Second)
	secondID, err := store.SaveSubmission(context.Background(), sparseForm(), true)
	if err != nil {
		testContext.Fatalf("unexpected save error: %v", err)
	}

	// Touching the first record moves it back to the head of the list.
	clock.Advance(time.Second)
	form := sparseForm()
	form.ID = firstID
	if _, err := store.SaveSubmission(context.Background(), form, true); err != nil {
		testContext.Fatalf("unexpected update error: %v", err)
	}

	submissions, err := store.ListSubmissions(context.Background(), "")
	if err != nil {
		testContext.Fatalf("unexpected list error: %v", err)
	}
	if len(submissions) != 2 {
		testContext.Fatalf("expected 2 submissions, got %d", len(submissions))
	}
	if submissions[0].ID != firstID || submissions[1].ID != secondID {
		testContext.Fatalf("unexpected order: %d then %d", submissions[0].ID, submissions[1].ID)
	}
}

func TestListSubmissionsEmptyStoreReturnsEmptySlice(testContext *testing.T) {
	clock := newFakeClock(1700000000)
	store, _ := newTestStore(testContext, clock)

	submissions, err := store.ListSubmissions(context.Background(), StatusDraft)
	if err != nil {
		testContext.Fatalf("no results must not be an error: %v", err)
	}
	if len(submissions) != 0 {
		testContext.Fatalf("expected empty slice, got %d rows", len(submissions))
	}
}

func TestGetSubmissionUnknownIdentifierReturnsNil(testContext *testing.T) {
	clock := newFakeClock(1700000000)
	store, _ := newTestStore(testContext, clock)

	submission, err := store.GetSubmission(context.Background(), 999)
	if err != nil {
		testContext.Fatalf("not found must not be an error: %v", err)
	}
	if submission != nil {
		testContext.Fatalf("expected nil submission, got %#v", submission)
	}
}

func TestDeleteSubmissionIsIdempotent(testContext *testing.T) {
	clock := newFakeClock(1700000000)
	store, _ := newTestStore(testContext, clock)

	id, err := store.SaveSubmission(context.Background(), sparseForm(), true)
	if err != nil {
		testContext.Fatalf("unexpected save error: %v", err)
	}

	deleted, err := store.DeleteSubmission(context.Background(), id)
	if err != nil || !deleted {
		testContext.Fatalf("expected first delete to succeed: %v %v", deleted, err)
	}

	deleted, err = store.DeleteSubmission(context.Background(), id)
	if err != nil {
		testContext.Fatalf("second delete must not error: %v", err)
	}
	if deleted {
		testContext.Fatalf("expected success-false on missing row")
	}
}

func TestClearAllRemovesEverySubmission(testContext *testing.T) {
	clock := newFakeClock(1700000000)
	store, _ := newTestStore(testContext, clock)

	for i := 0; i < 3; i++ {
		if _, err := store.SaveSubmission(context.Background(), sparseForm(), true); err != nil {
			testContext.Fatalf("unexpected save error: %v", err)
		}
	}

	if err := store.ClearAll(context.Background()); err != nil {
		testContext.Fatalf("unexpected clear error: %v", err)
	}

	submissions, err := store.ListSubmissions(context.Background(), "")
	if err != nil {
		testContext.Fatalf("unexpected list error: %v", err)
	}
	if len(submissions) != 0 {
		testContext.Fatalf("expected empty store after clear, got %d rows", len(submissions))
	}
}
