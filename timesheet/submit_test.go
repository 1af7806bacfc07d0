package timesheet

import (
	"errors"
	"fmt"
	"testing"
)

// fakeAPI records submissions and can be told to fail either path.
type fakeAPI struct {
	failBulk  bool
	failRowAt int // 1-based row whose single post fails; 0 = never
	bulkCalls int
	rowPosts  []float64
	rowNotes  []string
	completed []int
}

func (f *fakeAPI) PostEntryBatch(entries []SubmissionEntry) error {
	f.bulkCalls++
	if f.failBulk {
		return errors.New("bulk endpoint unavailable")
	}
	return nil
}

func (f *fakeAPI) PostEntry(taskID int, hours float64, notes string) error {
	if f.failRowAt > 0 && len(f.rowPosts)+1 == f.failRowAt {
		return fmt.Errorf("row rejected")
	}
	f.rowPosts = append(f.rowPosts, hours)
	f.rowNotes = append(f.rowNotes, notes)
	return nil
}

func (f *fakeAPI) CompleteTask(taskID int) error {
	f.completed = append(f.completed, taskID)
	return nil
}

func newOrchestrator(api *fakeAPI) *Orchestrator {
	return &Orchestrator{
		Bulk:      &BulkStrategy{API: api},
		PerRow:    &PerRowStrategy{API: api},
		Completer: api,
	}
}

func TestSubmitBulkSuccess(t *testing.T) {
	api := &fakeAPI{}
	o := newOrchestrator(api)

	rows := []Row{
		{WorkDate: "2024-01-01", StartTime: "09:00", EndTime: "10:00"},
		{WorkDate: "2024-01-01", StartTime: "10:00", EndTime: "11:30"},
	}

	res, err := o.Submit(5, rows)
	if err != nil {
		t.Errorf("Submit: %s", err.Error())
		return
	}
	if res.Entries != 2 || res.UsedFallback {
		t.Errorf("unexpected result: %#v", res)
	}
	if api.bulkCalls != 1 {
		t.Errorf("bulk call count mismatch: expected 1, got %d", api.bulkCalls)
	}
	if len(api.rowPosts) != 0 {
		t.Errorf("expected no per-row posts after bulk success, got %d", len(api.rowPosts))
	}
}

func TestSubmitFallsBackPerRow(t *testing.T) {
	api := &fakeAPI{failBulk: true}
	o := newOrchestrator(api)

	rows := []Row{
		{WorkDate: "2024-01-01", StartTime: "09:00", EndTime: "10:00", Note: "one"},
		{WorkDate: "2024-01-02", StartTime: "23:30", EndTime: "00:15", Note: "two"},
	}

	res, err := o.Submit(5, rows)
	if err != nil {
		t.Errorf("Submit: %s", err.Error())
		return
	}
	if !res.UsedFallback || res.Entries != 2 {
		t.Errorf("unexpected result: %#v", res)
	}
	if len(api.rowPosts) != 2 {
		t.Errorf("per-row post count mismatch: expected 2, got %d", len(api.rowPosts))
		return
	}
	// original order, locally computed hours
	if api.rowPosts[0] != 1 || api.rowPosts[1] != 0.75 {
		t.Errorf("unexpected per-row hours: %v", api.rowPosts)
	}
	if api.rowNotes[0] != "one" || api.rowNotes[1] != "two" {
		t.Errorf("unexpected per-row notes: %v", api.rowNotes)
	}
}

func TestSubmitFallbackStopsAtBoundFailure(t *testing.T) {
	api := &fakeAPI{failBulk: true}
	o := newOrchestrator(api)

	rows := []Row{
		{WorkDate: "2024-01-01", StartTime: "09:00", EndTime: "10:00"},
		{WorkDate: "2024-01-01", StartTime: "10:00", EndTime: "10:02"}, // too short
		{WorkDate: "2024-01-01", StartTime: "11:00", EndTime: "12:00"},
	}

	_, err := o.Submit(5, rows)
	if err == nil {
		t.Errorf("expected an error, got none")
		return
	}
	if !errors.Is(err, ErrShiftTooShort) {
		t.Errorf("expected ErrShiftTooShort in the chain, got: %s", err.Error())
	}
	// the first row stays committed, the third was never attempted
	if len(api.rowPosts) != 1 {
		t.Errorf("expected exactly 1 committed row, got %d", len(api.rowPosts))
	}
}

func TestSubmitEmptyBatch(t *testing.T) {
	api := &fakeAPI{}
	o := newOrchestrator(api)

	rows := []Row{
		{WorkDate: "2024-01-01", StartTime: "09:00"}, // incomplete
		{},
	}

	if _, err := o.Submit(5, rows); !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}
	if api.bulkCalls != 0 {
		t.Errorf("expected no network calls for an empty batch, got %d", api.bulkCalls)
	}
}

func TestSubmitOverlapGate(t *testing.T) {
	overlapping := []Row{
		{WorkDate: "2024-01-01", StartTime: "09:00", EndTime: "10:00"},
		{WorkDate: "2024-01-01", StartTime: "09:30", EndTime: "11:00"},
	}

	api := &fakeAPI{}
	o := newOrchestrator(api)
	if _, err := o.Submit(5, overlapping); !errors.Is(err, ErrOverlapDetected) {
		t.Errorf("expected ErrOverlapDetected, got %v", err)
	}
	if api.bulkCalls != 0 {
		t.Errorf("expected the gate to block before any network call")
	}

	// Some call sites run without the gate.
	o.SkipOverlapGate = true
	if _, err := o.Submit(5, overlapping); err != nil {
		t.Errorf("Submit with gate disabled: %s", err.Error())
	}
	if api.bulkCalls != 1 {
		t.Errorf("bulk call count mismatch: expected 1, got %d", api.bulkCalls)
	}
}

func TestSubmitBusyFlag(t *testing.T) {
	api := &fakeAPI{}
	o := newOrchestrator(api)
	o.busy = true

	rows := []Row{{WorkDate: "2024-01-01", StartTime: "09:00", EndTime: "10:00"}}
	if _, err := o.Submit(5, rows); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
}

func TestMarkComplete(t *testing.T) {
	api := &fakeAPI{}
	o := newOrchestrator(api)

	if err := o.MarkComplete(9); err != nil {
		t.Errorf("MarkComplete: %s", err.Error())
		return
	}
	if len(api.completed) != 1 || api.completed[0] != 9 {
		t.Errorf("unexpected completions: %v", api.completed)
	}
}
