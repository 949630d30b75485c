package briefs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Severity classifies messages handed to the notification sink.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Confirmer asks the user a yes/no question. It may suspend indefinitely
// waiting on a human decision.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// Notifier delivers fire-and-forget status messages to the user.
type Notifier interface {
	Notify(message string, severity Severity)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(string, Severity) {}

// LogNotifier routes notifications into the structured log, for headless
// deployments without a UI sink.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(message string, severity Severity) {
	if n.Logger == nil {
		return
	}
	n.Logger.Info("user notification",
		zap.String("severity", string(severity)),
		zap.String("message", message))
}

// Manual saves below this completion percentage require user confirmation.
const confirmProgressThreshold = 50

const defaultAutoSaveDebounce = 2 * time.Second

var (
	// ErrSaveDeclined indicates the user rejected the below-threshold save
	// prompt; nothing was written.
	ErrSaveDeclined = errors.New("briefs: save declined by user")

	errMissingStore     = errors.New("record store is required")
	errMissingConfirmer = errors.New("confirmer is required")
)

// LifecycleConfig describes the dependencies of the draft lifecycle
// controller.
type LifecycleConfig struct {
	Store     *Store
	Confirmer Confirmer
	Notifier  Notifier
	Logger    *zap.Logger
	// Debounce is the quiet period after the last edit before an auto-save
	// fires. Zero selects the default.
	Debounce time.Duration
	// AutoSaveEnabled gates the debounce timer, typically bound to the
	// auto_save setting. Nil means always enabled.
	AutoSaveEnabled func(ctx context.Context) bool
}

// Lifecycle mediates between transient form state and the record store. It
// owns the active submission identifier, the dirty flag, and the auto-save
// debounce timer, and serializes writes so the single-writer datastore never
// sees interleaved saves.
type Lifecycle struct {
	store           *Store
	confirmer       Confirmer
	notifier        Notifier
	logger          *zap.Logger
	debounce        time.Duration
	autoSaveEnabled func(ctx context.Context) bool

	mu       sync.Mutex
	activeID uint
	dirty    bool
	pending  FormData
	timer    *time.Timer
}

// NewLifecycle constructs the draft lifecycle controller.
func NewLifecycle(cfg LifecycleConfig) (*Lifecycle, error) {
	if cfg.Store == nil {
		return nil, errMissingStore
	}
	if cfg.Confirmer == nil {
		return nil, errMissingConfirmer
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultAutoSaveDebounce
	}

	return &Lifecycle{
		store:           cfg.Store,
		confirmer:       cfg.Confirmer,
		notifier:        notifier,
		logger:          logger,
		debounce:        debounce,
		autoSaveEnabled: cfg.AutoSaveEnabled,
	}, nil
}

// Touch records the latest form snapshot after an edit, marks the form dirty,
// and resets the auto-save debounce timer. Each edit restarts the quiet
// period.
func (l *Lifecycle) Touch(form FormData) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = form
	l.dirty = true

	if l.timer == nil {
		l.timer = time.AfterFunc(l.debounce, func() {
			l.AutoSave(context.Background())
		})
		return
	}
	l.timer.Reset(l.debounce)
}

// ManualSave persists the supplied form state as a finalized submission. When
// computed progress is below the confirmation threshold the user must approve
// the save first; a declined prompt returns ErrSaveDeclined without writing.
// Store failures are surfaced to the caller and are safe to retry.
func (l *Lifecycle) ManualSave(ctx context.Context, form FormData) (uint, error) {
	progress := ComputeProgress(form)
	if progress < confirmProgressThreshold {
		message := fmt.Sprintf("Form is %d%% complete. Save anyway?", progress)
		confirmed, err := l.confirmer.Confirm(ctx, message)
		if err != nil {
			return 0, err
		}
		if !confirmed {
			return 0, ErrSaveDeclined
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if form.ID == 0 && l.activeID != 0 {
		form.ID = l.activeID
	}

	id, err := l.store.SaveSubmission(ctx, form, false)
	if err != nil {
		l.notifier.Notify("Failed to save submission", SeverityError)
		return 0, err
	}

	l.activeID = id
	l.dirty = false
	l.stopTimerLocked()
	l.notifier.Notify("Submission saved successfully!", SeveritySuccess)
	return id, nil
}

// AutoSave persists the latest snapshot as a draft. It is a no-op when the
// form is clean, when auto-save is disabled, or when another save is already
// in flight. Failures are logged and swallowed; auto-save is a convenience,
// not a user-initiated action.
func (l *Lifecycle) AutoSave(ctx context.Context) {
	if l.autoSaveEnabled != nil && !l.autoSaveEnabled(ctx) {
		return
	}

	if !l.mu.TryLock() {
		l.logger.Debug("auto-save skipped, save in flight")
		return
	}
	defer l.mu.Unlock()

	if !l.dirty {
		return
	}

	form := l.pending
	if form.ID == 0 {
		form.ID = l.activeID
	}

	id, err := l.store.SaveSubmission(ctx, form, true)
	if err != nil {
		l.logger.Warn("auto-save failed", zap.Error(err))
		return
	}

	l.activeID = id
	l.dirty = false
	l.notifier.Notify("Auto-saved", SeverityInfo)
}

// RecoverLatestDraft offers the most recently touched draft for loading. The
// user confirms before it replaces form state; a declined prompt or an empty
// draft list returns nil without changing anything.
func (l *Lifecycle) RecoverLatestDraft(ctx context.Context) (*Submission, error) {
	drafts, err := l.store.ListSubmissions(ctx, StatusDraft)
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		l.notifier.Notify("No drafts found", SeverityInfo)
		return nil, nil
	}

	latest := drafts[0]
	message := fmt.Sprintf("Load draft %q from %s?",
		latest.ProjectName,
		time.Unix(latest.CreatedAtSeconds, 0).UTC().Format("2006-01-02"))
	confirmed, err := l.confirmer.Confirm(ctx, message)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.activeID = latest.ID
	l.dirty = false
	l.pending = latest.FormData()
	l.notifier.Notify("Draft loaded successfully", SeveritySuccess)
	return &latest, nil
}

// LoadSubmission loads any stored record into form state and makes it the
// active submission. Unknown identifiers return nil.
func (l *Lifecycle) LoadSubmission(ctx context.Context, id uint) (*Submission, error) {
	submission, err := l.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.activeID = submission.ID
	l.dirty = false
	l.pending = submission.FormData()
	l.notifier.Notify("Submission loaded", SeveritySuccess)
	return submission, nil
}

// ClearForm drops the active submission association and pending edits.
func (l *Lifecycle) ClearForm() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.activeID = 0
	l.dirty = false
	l.pending = FormData{}
	l.stopTimerLocked()
}

// ActiveID reports the identifier associated with the form being edited.
func (l *Lifecycle) ActiveID() (uint, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.activeID, l.activeID != 0
}

// Dirty reports whether the form has unsaved edits.
func (l *Lifecycle) Dirty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

// Close cancels the pending auto-save timer.
func (l *Lifecycle) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopTimerLocked()
}

func (l *Lifecycle) stopTimerLocked() {
	if l.timer != nil {
		l.timer.Stop()
	}
}
