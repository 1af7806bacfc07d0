package timesheet

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ClockToMinutes parses a strict HH:MM timestamp (two digit hours, two digit
// minutes) into minutes since midnight.
func ClockToMinutes(ts string) (int, error) {
	if !clockPattern.MatchString(ts) {
		return 0, fmt.Errorf("invalid clock value %q: expected HH:MM", ts)
	}
	h, _ := strconv.Atoi(ts[:2])
	m, _ := strconv.Atoi(ts[3:])
	return h*60 + m, nil
}

// ValidateRows runs the per-row well-formedness pass. It never consults other
// rows: overlap detection is a separate concern (see DetectOverlap). A row
// with any required field missing gets an "incomplete" problem and no further
// checks; otherwise both timestamps must parse as strict HH:MM.
func ValidateRows(rows []Row) []Problem {
	var problems []Problem
	for i, row := range rows {
		if !row.Complete() {
			problems = append(problems, Problem{Row: i + 1, Message: "date/time incomplete"})
			continue
		}
		_, startErr := ClockToMinutes(row.StartTime)
		_, endErr := ClockToMinutes(row.EndTime)
		if startErr != nil || endErr != nil {
			problems = append(problems, Problem{Row: i + 1, Message: "invalid time format"})
		}
	}
	return problems
}

// DetectOverlap reports whether any two complete rows on the same calendar
// date have intersecting time ranges. Intervals are half-open: a row that
// ends exactly when the next one starts does not overlap it. Incomplete rows
// are ignored.
func DetectOverlap(rows []Row) bool {
	groups := make(map[string][][2]string)
	for _, row := range rows {
		if !row.Complete() {
			continue
		}
		groups[row.WorkDate] = append(groups[row.WorkDate], [2]string{row.StartTime, row.EndTime})
	}

	for _, spans := range groups {
		// Lexical order equals chronological order for HH:MM within one day,
		// so plain string comparison is enough. With the list sorted by start,
		// comparing each interval against its successor catches every overlap.
		sort.Slice(spans, func(a, b int) bool {
			return spans[a][0] < spans[b][0]
		})
		for i := 0; i < len(spans)-1; i++ {
			if spans[i][1] > spans[i+1][0] {
				return true
			}
		}
	}
	return false
}

// BuildEntries converts the complete rows into submission entries for the
// given task, preserving row order. Notes are trimmed; incomplete rows are
// silently dropped.
func BuildEntries(taskID int, rows []Row) []SubmissionEntry {
	entries := []SubmissionEntry{}
	for _, row := range rows {
		if !row.Complete() {
			continue
		}
		entries = append(entries, SubmissionEntry{
			TaskID:    taskID,
			WorkDate:  row.WorkDate,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Note:      strings.TrimSpace(row.Note),
		})
	}
	return entries
}
