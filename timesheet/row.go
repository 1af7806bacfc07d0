package timesheet

import "fmt"

// Row is one user-entered work interval pending submission. All fields are
// kept as the raw form strings until submit time; the bulk endpoint computes
// hours server-side from the same strings.
type Row struct {
	WorkDate  string // calendar date, YYYY-MM-DD
	StartTime string // wall clock, HH:MM (24-hour)
	EndTime   string // wall clock, HH:MM (24-hour)
	Note      string
}

// Complete reports whether the row has all three required fields. Incomplete
// rows are excluded from submission rather than treated as errors.
func (r Row) Complete() bool {
	return r.WorkDate != "" && r.StartTime != "" && r.EndTime != ""
}

// Problem describes a defect in a single row. Rows are numbered from 1, the
// way they appear on screen.
type Problem struct {
	Row     int
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("row %d: %s", p.Row, p.Message)
}

// SubmissionEntry is the wire shape for one work interval.
type SubmissionEntry struct {
	TaskID    int    `json:"task_id"`
	WorkDate  string `json:"work_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Note      string `json:"note"`
}
