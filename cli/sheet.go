package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sporadisk/worklog/client/crm"
	"github.com/sporadisk/worklog/config"
	"github.com/sporadisk/worklog/console"
	"github.com/sporadisk/worklog/entryfile"
	"github.com/sporadisk/worklog/timesheet"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Timesheet entry: add, history, import",
}

// parseRowSpec turns "DATE START END [NOTE...]" into a row. A "-" keeps a
// field empty, which marks the row incomplete and excluded from submission.
func parseRowSpec(spec string) (timesheet.Row, error) {
	fields := strings.Fields(spec)
	if len(fields) < 3 {
		return timesheet.Row{}, fmt.Errorf("row %q needs at least DATE START END", spec)
	}

	blank := func(s string) string {
		if s == "-" {
			return ""
		}
		return s
	}

	return timesheet.Row{
		WorkDate:  blank(fields[0]),
		StartTime: blank(fields[1]),
		EndTime:   blank(fields[2]),
		Note:      strings.Join(fields[3:], " "),
	}, nil
}

// newOrchestrator wires the strategy pair onto the API client. The overlap
// gate is on unless the config or the per-command flag turns it off.
func newOrchestrator(c *crm.Client, conf *config.Config, allowOverlap bool) *timesheet.Orchestrator {
	return &timesheet.Orchestrator{
		Bulk:            &timesheet.BulkStrategy{API: c},
		PerRow:          &timesheet.PerRowStrategy{API: c},
		Completer:       c,
		SkipOverlapGate: allowOverlap || conf.AllowOverlap,
	}
}

// submitRows runs the validate-submit-refresh cycle for one task and prints
// the refreshed state, mirroring the form page's save flow.
func submitRows(c *crm.Client, conf *config.Config, taskID int, rows []timesheet.Row, allowOverlap bool) error {
	if problems := timesheet.ValidateRows(rows); len(problems) > 0 {
		for _, p := range problems {
			fmt.Println("•", p.String())
		}
		return fmt.Errorf("submission blocked: %d problem(s)", len(problems))
	}

	task, err := c.GetTask(taskID)
	if err != nil {
		return friendly(err)
	}

	o := newOrchestrator(c, conf, allowOverlap)
	res, err := o.Submit(task.ID, rows)
	if err != nil {
		return friendly(err)
	}

	// Re-fetch: a bulk save may have flipped the task status server-side.
	task, err = c.GetTask(task.ID)
	if err != nil {
		return friendly(err)
	}
	entries, err := c.ListEntries(task.ID)
	if err != nil {
		return friendly(err)
	}

	tc, err := newTerminal(conf)
	if err != nil {
		return err
	}

	if res.UsedFallback {
		fmt.Println("Bulk submission failed; entries were saved one at a time.")
	}
	fmt.Printf("Saved %d entries.\n\n", res.Entries)
	fmt.Print(tc.TaskCard(task))
	fmt.Println()
	fmt.Print(tc.EntryTable(entries.Items))
	return nil
}

var (
	sheetTask         int
	sheetRows         []string
	sheetDate         string
	sheetStart        string
	sheetEnd          string
	sheetNote         string
	sheetAllowOverlap bool
)

var sheetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Validate and submit work-time rows for a task",
	Long: `Submit one or more work-time rows for a task. Rows can be given
either as repeated --row "DATE START END [NOTE]" flags or as the single
--date/--start/--end/--note flags. The batch goes to the bulk endpoint
first; if that fails, rows are submitted one at a time with locally
computed hours.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sheetTask <= 0 {
			return fmt.Errorf("--task is required")
		}

		var rows []timesheet.Row
		for _, spec := range sheetRows {
			row, err := parseRowSpec(spec)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		if sheetDate != "" || sheetStart != "" || sheetEnd != "" {
			rows = append(rows, timesheet.Row{
				WorkDate:  sheetDate,
				StartTime: sheetStart,
				EndTime:   sheetEnd,
				Note:      sheetNote,
			})
		}
		if len(rows) == 0 {
			return fmt.Errorf("no rows given: use --row or --date/--start/--end")
		}

		c, conf, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		return submitRows(c, conf, sheetTask, rows, sheetAllowOverlap)
	},
}

var historyTask int

var sheetHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved entries, optionally for one task",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, conf, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		entries, err := c.ListEntries(historyTask)
		if err != nil {
			return friendly(err)
		}

		tc, err := newTerminal(conf)
		if err != nil {
			return err
		}
		if len(entries.Items) == 0 {
			fmt.Println("No entries yet.")
			return nil
		}
		fmt.Print(tc.EntryTable(entries.Items))
		return nil
	},
}

var (
	importFile  string
	importWatch bool
	importYes   bool
)

var sheetImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Submit an entry file, or watch it while editing",
	Long: `Read a YAML entry file (task id plus rows) and submit it after
validation. With --watch the file is re-validated on every save instead,
so problems show up while the file is still open in an editor; run the
command again without --watch to submit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if importFile == "" {
			return fmt.Errorf("--file is required")
		}

		c, conf, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		if importWatch {
			watcher, err := entryfile.NewWatcher(importFile)
			if err != nil {
				return fmt.Errorf("entryfile.NewWatcher: %w", err)
			}
			fmt.Printf("Watching %s (ctrl-c to stop)\n", importFile)
			return watcher.Subscribe(&previewReceiver{})
		}

		f, err := entryfile.Load(importFile)
		if err != nil {
			return fmt.Errorf("entryfile.Load: %w", err)
		}

		rows := f.TimesheetRows()
		ready := len(timesheet.BuildEntries(f.Task, rows))
		if !importYes && !console.Confirm(fmt.Sprintf("Submit %d entries for task %d?", ready, f.Task)) {
			fmt.Println("Aborted.")
			return nil
		}

		return submitRows(c, conf, f.Task, rows, sheetAllowOverlap)
	},
}

// previewReceiver prints the validation state of the file after every save.
type previewReceiver struct{}

func (pr *previewReceiver) Receive(f *entryfile.File) error {
	rows := f.TimesheetRows()

	problems := timesheet.ValidateRows(rows)
	for _, p := range problems {
		fmt.Println("•", p.String())
	}
	if timesheet.DetectOverlap(rows) {
		fmt.Println("• time ranges on the same day overlap")
	}
	if len(problems) == 0 {
		ready := len(timesheet.BuildEntries(f.Task, rows))
		fmt.Printf("task %d: %d row(s) ready to submit\n", f.Task, ready)
	}
	return nil
}

func init() {
	sheetAddCmd.Flags().IntVar(&sheetTask, "task", 0, "task id")
	sheetAddCmd.Flags().StringArrayVar(&sheetRows, "row", nil, `row as "DATE START END [NOTE]"`)
	sheetAddCmd.Flags().StringVar(&sheetDate, "date", "", "work date (YYYY-MM-DD)")
	sheetAddCmd.Flags().StringVar(&sheetStart, "start", "", "start time (HH:MM)")
	sheetAddCmd.Flags().StringVar(&sheetEnd, "end", "", "end time (HH:MM)")
	sheetAddCmd.Flags().StringVar(&sheetNote, "note", "", "note for the single-row form")
	sheetAddCmd.Flags().BoolVar(&sheetAllowOverlap, "allow-overlap", false, "skip the same-day overlap gate")

	sheetHistoryCmd.Flags().IntVar(&historyTask, "task", 0, "restrict to one task id")

	sheetImportCmd.Flags().StringVar(&importFile, "file", "", "entry file path")
	sheetImportCmd.Flags().BoolVar(&importWatch, "watch", false, "re-validate on every save instead of submitting")
	sheetImportCmd.Flags().BoolVar(&importYes, "yes", false, "skip the confirmation prompt")
	sheetImportCmd.Flags().BoolVar(&sheetAllowOverlap, "allow-overlap", false, "skip the same-day overlap gate")

	sheetCmd.AddCommand(sheetAddCmd)
	sheetCmd.AddCommand(sheetHistoryCmd)
	sheetCmd.AddCommand(sheetImportCmd)
}
