package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sporadisk/worklog/client/crm"
	"github.com/sporadisk/worklog/console"
	"github.com/sporadisk/worklog/parameter"
	"github.com/sporadisk/worklog/timesheet"
)

var priorities = []string{"Low", "Medium", "High"}

var sortFields = []string{"created_at", "due_date", "priority", "status", "title"}

// validateSort accepts a sort field with an optional leading "-" for
// descending order and returns the canonical spelling.
func validateSort(sort string) (string, error) {
	desc := strings.HasPrefix(sort, "-")
	field, err := parameter.Validate(strings.TrimPrefix(sort, "-"), sortFields)
	if err != nil {
		return "", err
	}
	if desc {
		return "-" + field, nil
	}
	return field, nil
}

func taskIDArg(args []string) (int, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("task id must be a positive number, got %q", args[0])
	}
	return id, nil
}

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Task assignment: list, show, add, rm, done",
}

var (
	taskSort     string
	taskPriority string
	taskSearch   string
	taskStatus   string
	taskPageSize int
	taskPage     int
	taskAssignee int
)

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, conf, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		query := crm.TaskQuery{
			Search:     taskSearch,
			PageSize:   taskPageSize,
			Page:       taskPage,
			AssigneeID: taskAssignee,
		}
		if query.PageSize == 0 && conf.PageSize > 0 {
			query.PageSize = conf.PageSize
		}
		if taskSort != "" {
			query.Sort, err = validateSort(taskSort)
			if err != nil {
				return err
			}
		}
		if taskPriority != "" {
			query.Priority, err = parameter.Validate(taskPriority, priorities)
			if err != nil {
				return err
			}
		}
		if taskStatus != "" {
			query.Status, err = parameter.Validate(taskStatus, []string{
				crm.StatusOpen, crm.StatusInProgress, crm.StatusComplete, crm.StatusCancelled,
			})
			if err != nil {
				return err
			}
		}

		page, err := c.ListTasks(query)
		if err != nil {
			return friendly(err)
		}

		tc, err := newTerminal(conf)
		if err != nil {
			return err
		}
		fmt.Print(tc.TaskTable(page.Data))
		fmt.Printf("\nPage %d · showing %d of %d tasks\n", page.Page, len(page.Data), page.Total)
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task and its entry history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := taskIDArg(args)
		if err != nil {
			return err
		}

		c, conf, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		task, err := c.GetTask(id)
		if err != nil {
			return friendly(err)
		}
		entries, err := c.ListEntries(id)
		if err != nil {
			return friendly(err)
		}

		tc, err := newTerminal(conf)
		if err != nil {
			return err
		}
		fmt.Print(tc.TaskCard(task))
		if len(entries.Items) == 0 {
			fmt.Println("\nNo entries yet.")
			return nil
		}
		fmt.Println()
		fmt.Print(tc.EntryTable(entries.Items))
		return nil
	},
}

var (
	taskTitle   string
	taskDue     string
	taskDetails string
	newPriority string
	newAssignee int
)

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create and assign a task",
	RunE: func(cmd *cobra.Command, args []string) error {
		if taskTitle == "" || newAssignee <= 0 {
			return fmt.Errorf("--title and --assignee are required")
		}

		c, _, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		newTask := crm.NewTask{
			Title:      taskTitle,
			AssigneeID: newAssignee,
			DueDate:    taskDue,
			Details:    taskDetails,
		}
		if newPriority != "" {
			newTask.Priority, err = parameter.Validate(newPriority, priorities)
			if err != nil {
				return err
			}
		}

		task, err := c.CreateTask(newTask)
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("Created %s: %s\n", task.Code(), task.Title)
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := taskIDArg(args)
		if err != nil {
			return err
		}

		c, _, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		if !console.Confirm(fmt.Sprintf("Delete task %d?", id)) {
			fmt.Println("Aborted.")
			return nil
		}

		if err := c.DeleteTask(id); err != nil {
			return friendly(err)
		}
		fmt.Printf("Deleted task %d.\n", id)
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := taskIDArg(args)
		if err != nil {
			return err
		}

		c, conf, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		task, err := c.GetTask(id)
		if err != nil {
			return friendly(err)
		}
		if task.Completed() {
			fmt.Printf("%s is already complete.\n", task.Code())
			return nil
		}

		o := &timesheet.Orchestrator{Completer: c}
		if err := o.MarkComplete(id); err != nil {
			return friendly(err)
		}

		// The server owns the transition; show the state it settled on.
		task, err = c.GetTask(id)
		if err != nil {
			return friendly(err)
		}

		tc, err := newTerminal(conf)
		if err != nil {
			return err
		}
		fmt.Print(tc.TaskCard(task))
		return nil
	},
}

var taskAssigneesCmd = &cobra.Command{
	Use:   "assignees",
	Short: "List accounts a task can be assigned to",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, conf, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		users, err := c.AssignableUsers()
		if err != nil {
			return friendly(err)
		}

		tc, err := newTerminal(conf)
		if err != nil {
			return err
		}
		fmt.Print(tc.AssigneeTable(users))
		return nil
	},
}

var taskReopenCmd = &cobra.Command{
	Use:   "reopen <id>",
	Short: "Reopen a completed task (Admin/HR)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := taskIDArg(args)
		if err != nil {
			return err
		}

		c, conf, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		if err := c.ReopenTask(id); err != nil {
			return friendly(err)
		}

		task, err := c.GetTask(id)
		if err != nil {
			return friendly(err)
		}

		tc, err := newTerminal(conf)
		if err != nil {
			return err
		}
		fmt.Print(tc.TaskCard(task))
		return nil
	},
}

func init() {
	taskListCmd.Flags().StringVar(&taskSort, "sort", "-created_at", "sort field, prefix with - for descending")
	taskListCmd.Flags().StringVar(&taskPriority, "priority", "", "filter by priority (Low, Medium, High)")
	taskListCmd.Flags().StringVar(&taskSearch, "search", "", "search in title, details, code and assignee")
	taskListCmd.Flags().StringVar(&taskStatus, "status", "", "filter by status")
	taskListCmd.Flags().IntVar(&taskPageSize, "page-size", 0, "tasks per page")
	taskListCmd.Flags().IntVar(&taskPage, "page", 0, "page number")
	taskListCmd.Flags().IntVar(&taskAssignee, "assignee", 0, "filter by assignee id")

	taskAddCmd.Flags().StringVar(&taskTitle, "title", "", "task title")
	taskAddCmd.Flags().IntVar(&newAssignee, "assignee", 0, "assignee user id")
	taskAddCmd.Flags().StringVar(&taskDue, "due", "", "due date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVar(&newPriority, "priority", "", "priority (Low, Medium, High)")
	taskAddCmd.Flags().StringVar(&taskDetails, "details", "", "task details")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskReopenCmd)
	taskCmd.AddCommand(taskAssigneesCmd)
}
