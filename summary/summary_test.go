package summary

import (
	"testing"

	"github.com/sporadisk/worklog/client/crm"
)

func TestBuild(t *testing.T) {
	tasks := []crm.Task{
		{ID: 1, Status: "Open", Priority: "High", CreatedAt: "2024-02-12T09:00:00"},
		{ID: 2, Status: "In Progress", Priority: "Medium", CreatedAt: "2024-02-13T09:00:00"},
		{ID: 3, Status: "Complete", Priority: "Low", CreatedAt: "2024-02-20T09:00:00"},
		{ID: 4, Status: "Resolved", Priority: "High"},
		{ID: 5, Status: "", Priority: ""}, // defaults: open, Medium
	}

	sum := Build(tasks)

	if sum.Total != 5 {
		t.Errorf("total mismatch: expected 5, got %d", sum.Total)
	}
	if sum.Open != 2 {
		t.Errorf("open mismatch: expected 2, got %d", sum.Open)
	}
	if sum.InProgress != 1 {
		t.Errorf("in-progress mismatch: expected 1, got %d", sum.InProgress)
	}
	if sum.Done != 2 {
		t.Errorf("done mismatch: expected 2, got %d", sum.Done)
	}
	if sum.Urgent != 2 {
		t.Errorf("urgent mismatch: expected 2, got %d", sum.Urgent)
	}
	if sum.ByPriority["Medium"] != 2 {
		t.Errorf("medium priority mismatch: expected 2, got %d", sum.ByPriority["Medium"])
	}

	// Tasks 1 and 2 fall in the same week-of-year bucket; task 3 a week
	// later; tasks without created_at are not bucketed.
	if len(sum.Weeks) != 2 {
		t.Errorf("week bucket mismatch: expected 2 buckets, got %v", sum.Weeks)
		return
	}
	if sum.Weeks[0].Created != 2 || sum.Weeks[1].Created != 1 {
		t.Errorf("unexpected bucket counts: %v", sum.Weeks)
	}
	if sum.Weeks[0].Label >= sum.Weeks[1].Label {
		t.Errorf("expected week labels in ascending order: %v", sum.Weeks)
	}
}

func TestBuildEmpty(t *testing.T) {
	sum := Build(nil)
	if sum.Total != 0 || len(sum.Weeks) != 0 {
		t.Errorf("unexpected summary for no tasks: %#v", sum)
	}
}
