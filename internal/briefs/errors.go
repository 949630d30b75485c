package briefs

import "fmt"

// StoreError wraps a storage failure with an operation.reason code so callers
// can log and branch on the failing operation without string matching.
type StoreError struct {
	code string
	err  error
}

func (e *StoreError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *StoreError) Unwrap() error {
	return e.err
}

func (e *StoreError) Code() string {
	return e.code
}

const (
	opStoreNew         = "briefs.store.new"
	opSaveSubmission   = "briefs.save_submission"
	opListSubmissions  = "briefs.list_submissions"
	opGetSubmission    = "briefs.get_submission"
	opDeleteSubmission = "briefs.delete_submission"
	opClearAll         = "briefs.clear_all"
	opStatistics       = "briefs.statistics"
)

func newStoreError(operation, reason string, cause error) error {
	return &StoreError{code: fmt.Sprintf("%s.%s", operation, reason), err: cause}
}
