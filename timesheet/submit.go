package timesheet

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBatch      = errors.New("no complete rows to submit")
	ErrOverlapDetected = errors.New("time ranges on the same day overlap")
	ErrBusy            = errors.New("a submission is already in flight")
)

// BatchPoster submits a whole entry batch in a single request.
type BatchPoster interface {
	PostEntryBatch(entries []SubmissionEntry) error
}

// EntryPoster submits one entry with precomputed hours.
type EntryPoster interface {
	PostEntry(taskID int, hours float64, notes string) error
}

// TaskCompleter transitions a task to its completed status.
type TaskCompleter interface {
	CompleteTask(taskID int) error
}

// Strategy is a single way of getting an entry batch onto the server.
type Strategy interface {
	Submit(entries []SubmissionEntry) error
}

// BulkStrategy posts the whole batch in one request. Hours are computed
// server-side from the raw date and clock strings.
type BulkStrategy struct {
	API BatchPoster
}

func (s *BulkStrategy) Submit(entries []SubmissionEntry) error {
	if err := s.API.PostEntryBatch(entries); err != nil {
		return fmt.Errorf("posting entry batch: %w", err)
	}
	return nil
}

// PerRowStrategy posts entries one at a time, in order, computing hours
// locally for each. The first row whose hours fail a bound check stops the
// whole run; rows posted before it stay committed server-side and are not
// reconciled here.
type PerRowStrategy struct {
	API EntryPoster
}

func (s *PerRowStrategy) Submit(entries []SubmissionEntry) error {
	for i, e := range entries {
		hours, err := ComputeHours(e.WorkDate, e.StartTime, e.EndTime)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := s.API.PostEntry(e.TaskID, hours, e.Note); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return nil
}

// Orchestrator turns a validated row batch into API submissions: one bulk
// attempt, then a single per-row fallback pass if the bulk call fails for any
// reason.
type Orchestrator struct {
	Bulk      Strategy
	PerRow    Strategy
	Completer TaskCompleter

	// SkipOverlapGate disables the client-side overlap check ahead of
	// submission. The gate is enforced by default.
	SkipOverlapGate bool

	// busy mirrors the disabled submit button: at most one submission per
	// form instance. Callers are single-threaded, so a plain flag suffices.
	busy bool
}

// Result describes a finished submission.
type Result struct {
	Entries      int
	UsedFallback bool
}

// Submit filters rows down to the complete ones, gates on overlap (unless
// disabled), and runs the bulk-then-per-row strategy pair. After a success
// the caller is expected to re-fetch the task and its entry history: the
// server may have flipped the task status as a side effect, and that is only
// ever reflected by re-reading, never inferred locally.
func (o *Orchestrator) Submit(taskID int, rows []Row) (Result, error) {
	if o.busy {
		return Result{}, ErrBusy
	}
	o.busy = true
	defer func() { o.busy = false }()

	entries := BuildEntries(taskID, rows)
	if len(entries) == 0 {
		return Result{}, ErrEmptyBatch
	}
	if !o.SkipOverlapGate && DetectOverlap(rows) {
		return Result{}, ErrOverlapDetected
	}

	if err := o.Bulk.Submit(entries); err == nil {
		return Result{Entries: len(entries)}, nil
	}

	if err := o.PerRow.Submit(entries); err != nil {
		return Result{UsedFallback: true}, fmt.Errorf("per-row fallback: %w", err)
	}
	return Result{Entries: len(entries), UsedFallback: true}, nil
}

// MarkComplete sends the status transition for the task. Preconditions (the
// task exists and is not already complete) are enforced by the caller, the
// same way the form disables the button.
func (o *Orchestrator) MarkComplete(taskID int) error {
	if err := o.Completer.CompleteTask(taskID); err != nil {
		return fmt.Errorf("completing task %d: %w", taskID, err)
	}
	return nil
}
