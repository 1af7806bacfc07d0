package terminal

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sporadisk/worklog/client/crm"
	"github.com/sporadisk/worklog/format"
	"github.com/sporadisk/worklog/summary"
)

const maxBarWidth = 40

// OutputSummary prints the dashboard KPIs and the weekly created-tasks bars.
func (c *Client) OutputSummary(sum summary.Summary) error {
	out, err := c.Summary(sum)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}

func (c *Client) Summary(sum summary.Summary) (string, error) {
	var sb strings.Builder

	sb.WriteString("\n- Dashboard -\n\n")
	fmt.Fprintf(&sb, "Tasks:       %d\n", sum.Total)
	fmt.Fprintf(&sb, "Open:        %d\n", sum.Open)
	fmt.Fprintf(&sb, "In progress: %d\n", sum.InProgress)
	fmt.Fprintf(&sb, "Done:        %d\n", sum.Done)
	fmt.Fprintf(&sb, "Urgent:      %d\n", sum.Urgent)

	if len(sum.Weeks) > 0 {
		sb.WriteString("\nCreated per week:\n")

		peak := 0
		for _, w := range sum.Weeks {
			if w.Created > peak {
				peak = w.Created
			}
		}

		for _, w := range sum.Weeks {
			width := w.Created
			if peak > maxBarWidth {
				width = w.Created * maxBarWidth / peak
				if width == 0 {
					width = 1
				}
			}
			fmt.Fprintf(&sb, " %s %s %d\n", w.Label, strings.Repeat("#", width), w.Created)
		}
	}

	sb.WriteString("\n")
	return sb.String(), nil
}

// TaskTable renders a task list.
func (c *Client) TaskTable(tasks []crm.Task) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tCODE\tTITLE\tSTATUS\tPRIORITY\tDUE\tASSIGNEE")
	for i := range tasks {
		t := &tasks[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Code(), orDash(t.Title), format.StatusLabel(t.Status),
			orDash(t.Priority), orDash(t.DueDate), orDash(t.AssigneeName))
	}

	tw.Flush()
	return sb.String()
}

// EntryTable renders the saved entry history of a task.
func (c *Client) EntryTable(entries []crm.Entry) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "DATE\tSTART\tEND\tHOURS\tWORKED\tNOTES")
	var total float64
	for _, e := range entries {
		total += e.Hours
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			orDash(e.WorkDate), orDash(e.StartTime), orDash(e.EndTime),
			format.Hours(e.Hours), format.Duration(format.HoursDuration(e.Hours), c.TimeFormat),
			orDash(e.Notes))
	}
	tw.Flush()

	if len(entries) > 0 {
		fmt.Fprintf(&sb, "\nTotal: %s (%s h) over %d entries\n",
			format.Duration(format.HoursDuration(total), c.TimeFormat), format.Hours(total), len(entries))
	}
	return sb.String()
}

// UserTable renders the admin user list.
func (c *Client) UserTable(users []crm.User) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE\tACTIVE")
	for _, u := range users {
		active := "yes"
		if !u.IsActive {
			active = "no"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role, active)
	}

	tw.Flush()
	return sb.String()
}

// AssigneeTable renders the reduced user list the assignment form offers.
func (c *Client) AssigneeTable(users []crm.Assignee) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, u.Username, u.Email)
	}

	tw.Flush()
	return sb.String()
}

// TaskCard renders one task the way the timesheet page header shows it.
func (c *Client) TaskCard(t *crm.Task) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", t.Code(), t.Title)
	fmt.Fprintf(&sb, "Status: %s · Due: %s\n", format.StatusLabel(t.Status), orDash(t.DueDate))
	if t.AssigneeName != "" {
		fmt.Fprintf(&sb, "Assignee: %s\n", t.AssigneeName)
	}
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
