package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sporadisk/worklog/client/crm"
	"github.com/sporadisk/worklog/client/terminal"
	"github.com/sporadisk/worklog/config"
	"github.com/sporadisk/worklog/session"
)

var (
	confPath     string
	endpointFlag string
)

var (
	errLoginRequired = errors.New("please log in first (worklog login)")
	errAdminRequired = errors.New("this command needs the Admin role")
)

var rootCmd = &cobra.Command{
	Use:   "worklog",
	Short: "Terminal client for the CRM task and timesheet API",
	Long: `worklog talks to the CRM backend: task assignment, timesheet entry
with bulk submission and a per-row fallback, a KPI dashboard, and the
admin user panel. Credentials are stored under ~/.worklog/.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", friendly(err).Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&confPath, "config", "", "path to config file (default .worklog.yaml)")
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "API base URL (overrides config)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(passwdCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(sheetCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(usersCmd)
}

// newClient builds the API client with the stored session attached. Auth
// commands work with a logged-out client; everything else goes through
// requireLogin or requireAdmin first.
func newClient() (*crm.Client, *config.Config, error) {
	conf, err := config.Load(confPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config.Load: %w", err)
	}

	endpoint := endpointFlag
	if endpoint == "" {
		endpoint = conf.Endpoint
	}

	dir, err := session.DefaultDir()
	if err != nil {
		return nil, nil, fmt.Errorf("session.DefaultDir: %w", err)
	}
	sess, err := session.Load(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("session.Load: %w", err)
	}

	return crm.New(endpoint, sess), conf, nil
}

func requireLogin(c *crm.Client) error {
	if !c.Session().LoggedIn() {
		return errLoginRequired
	}
	return nil
}

func requireAdmin(c *crm.Client) error {
	if err := requireLogin(c); err != nil {
		return err
	}
	if !c.Session().IsAdmin() {
		return errAdminRequired
	}
	return nil
}

// friendly maps wire-level errors onto the messages a user can act on. The
// expired-token 401 gets its own wording; everything else keeps the API's
// message.
func friendly(err error) error {
	var apiErr *crm.APIError
	if errors.As(err, &apiErr) && apiErr.SessionExpired() {
		return errors.New("session expired, please log in again")
	}
	if errors.Is(err, crm.ErrNotLoggedIn) {
		return errLoginRequired
	}
	return err
}

func newTerminal(conf *config.Config) (*terminal.Client, error) {
	tc := &terminal.Client{TimeFormat: conf.TimeFormat}
	if err := tc.Init(); err != nil {
		return nil, fmt.Errorf("terminal.Init: %w", err)
	}
	return tc, nil
}
