package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/sporadisk/worklog/client/crm"
	"github.com/sporadisk/worklog/format"
)

// Summary aggregates a task list into the dashboard KPIs. The aggregation is
// client-side over one big page of tasks, the same read model the web
// dashboard uses.
type Summary struct {
	Total      int
	Open       int
	InProgress int
	Done       int // complete + resolved + closed
	Urgent     int // tasks with High priority
	ByPriority map[string]int
	Weeks      []WeekBucket
}

// WeekBucket counts tasks created in one week of the year.
type WeekBucket struct {
	Label   string // e.g. "2024-W07"
	Created int
}

// Output renders a summary somewhere.
type Output interface {
	OutputSummary(sum Summary) error
}

// Build computes the KPIs from the task list.
func Build(tasks []crm.Task) Summary {
	sum := Summary{
		Total:      len(tasks),
		ByPriority: map[string]int{"Low": 0, "Medium": 0, "High": 0},
	}

	buckets := make(map[string]int)
	for _, t := range tasks {
		switch format.NormalizeStatus(t.Status) {
		case "open":
			sum.Open++
		case "in_progress":
			sum.InProgress++
		case "complete", "resolved", "closed":
			sum.Done++
		}

		priority := t.Priority
		if priority == "" {
			priority = "Medium"
		}
		sum.ByPriority[priority]++
		if priority == "High" {
			sum.Urgent++
		}

		if label, ok := weekLabel(t.CreatedAt); ok {
			buckets[label]++
		}
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		sum.Weeks = append(sum.Weeks, WeekBucket{Label: label, Created: buckets[label]})
	}

	return sum
}

// weekLabel buckets a created-at timestamp into a year-week label, counting
// weeks from January 1st the way the web dashboard does.
func weekLabel(createdAt string) (string, bool) {
	if createdAt == "" {
		return "", false
	}

	at, err := parseCreatedAt(createdAt)
	if err != nil {
		return "", false
	}

	start := time.Date(at.Year(), time.January, 1, 0, 0, 0, 0, at.Location())
	diffDays := int(at.Sub(start).Hours() / 24)
	week := diffDays/7 + 1
	return fmt.Sprintf("%d-W%02d", at.Year(), week), true
}

func parseCreatedAt(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		at, err := time.Parse(layout, s)
		if err == nil {
			return at, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
