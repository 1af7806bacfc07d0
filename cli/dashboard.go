package cli

import (
	"github.com/spf13/cobra"

	"github.com/sporadisk/worklog/client/crm"
	"github.com/sporadisk/worklog/summary"
)

// dashboardPageSize matches the web dashboard's one-big-page read model.
const dashboardPageSize = 200

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show task KPIs",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, conf, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		page, err := c.ListTasks(crm.TaskQuery{Sort: "-created_at", PageSize: dashboardPageSize})
		if err != nil {
			return friendly(err)
		}

		tc, err := newTerminal(conf)
		if err != nil {
			return err
		}
		return tc.OutputSummary(summary.Build(page.Data))
	},
}
