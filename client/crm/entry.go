package crm

import (
	"fmt"
	"strconv"

	"github.com/sporadisk/worklog/timesheet"
)

// Entry is one saved timesheet line as the history endpoint returns it.
// Bulk-created entries may omit the interval fields and carry only hours.
type Entry struct {
	ID        int     `json:"id"`
	UserID    int     `json:"user_id"`
	TaskID    int     `json:"task_id"`
	WorkDate  string  `json:"work_date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Hours     float64 `json:"hours"`
	Notes     string  `json:"notes"`
	CreatedAt string  `json:"created_at"`
}

// EntryPage is the paginated entry history envelope.
type EntryPage struct {
	Items    []Entry `json:"items"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Total    int     `json:"total"`
}

// ListEntries fetches the entry history, optionally narrowed to one task.
func (c *Client) ListEntries(taskID int) (*EntryPage, error) {
	params := map[string]string{}
	if taskID > 0 {
		params["task_id"] = strconv.Itoa(taskID)
	}

	var page EntryPage
	if err := c.getJSON("timesheet", params, &page); err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return &page, nil
}

type singleEntryRequest struct {
	TaskID int     `json:"task_id"`
	Hours  float64 `json:"hours"`
	Notes  string  `json:"notes"`
}

// PostEntry submits one entry with locally computed hours. This is the
// per-row fallback shape; the bulk path sends raw intervals instead.
func (c *Client) PostEntry(taskID int, hours float64, notes string) error {
	if err := c.prep(); err != nil {
		return err
	}

	req := singleEntryRequest{TaskID: taskID, Hours: hours, Notes: notes}
	resp, err := c.PostRequest("timesheet", req)
	if err != nil {
		return fmt.Errorf("c.PostRequest(timesheet): %w", err)
	}
	return respError(resp)
}

type entryBatchRequest struct {
	Entries []timesheet.SubmissionEntry `json:"entries"`
}

// PostEntryBatch submits the whole batch in one request. The server computes
// hours from the raw date and clock strings and may flip the task's status
// as a side effect.
func (c *Client) PostEntryBatch(entries []timesheet.SubmissionEntry) error {
	if err := c.prep(); err != nil {
		return err
	}

	resp, err := c.PostRequest("timesheet/bulk", entryBatchRequest{Entries: entries})
	if err != nil {
		return fmt.Errorf("c.PostRequest(timesheet/bulk): %w", err)
	}
	return respError(resp)
}
