package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sporadisk/worklog/client/crm"
	"github.com/sporadisk/worklog/console"
	"github.com/sporadisk/worklog/parameter"
)

var roles = []string{"Admin", "HR", "User"}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Admin user management",
}

func userIDArg(args []string) (int, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("user id must be a positive number, got %q", args[0])
	}
	return id, nil
}

var usersRole string

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, conf, err := newClient()
		if err != nil {
			return err
		}
		if err := requireAdmin(c); err != nil {
			return err
		}

		role := usersRole
		if role != "" {
			role, err = parameter.Validate(role, roles)
			if err != nil {
				return err
			}
		}

		users, err := c.ListUsers()
		if err != nil {
			return friendly(err)
		}
		if role != "" {
			filtered := users[:0]
			for _, u := range users {
				if strings.EqualFold(u.Role, role) {
					filtered = append(filtered, u)
				}
			}
			users = filtered
		}

		tc, err := newTerminal(conf)
		if err != nil {
			return err
		}
		fmt.Print(tc.UserTable(users))
		return nil
	},
}

var (
	newUserName  string
	newUserEmail string
	newUserRole  string
)

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account with a temporary password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if newUserName == "" || newUserEmail == "" {
			return fmt.Errorf("--username and --email are required")
		}

		c, _, err := newClient()
		if err != nil {
			return err
		}
		if err := requireAdmin(c); err != nil {
			return err
		}

		newUser := crm.NewUser{Username: newUserName, Email: newUserEmail}
		if newUserRole != "" {
			newUser.Role, err = parameter.Validate(newUserRole, roles)
			if err != nil {
				return err
			}
		}

		tempPassword, err := c.CreateUser(newUser)
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("Created %s. Temporary password: %s\n", newUserName, tempPassword)
		return nil
	},
}

var usersRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := userIDArg(args)
		if err != nil {
			return err
		}

		c, _, err := newClient()
		if err != nil {
			return err
		}
		if err := requireAdmin(c); err != nil {
			return err
		}

		if !console.Confirm(fmt.Sprintf("Delete user %d?", id)) {
			fmt.Println("Aborted.")
			return nil
		}

		if err := c.DeleteUser(id); err != nil {
			return friendly(err)
		}
		fmt.Printf("Deleted user %d.\n", id)
		return nil
	},
}

var usersResetCmd = &cobra.Command{
	Use:   "reset <id>",
	Short: "Reset an account's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := userIDArg(args)
		if err != nil {
			return err
		}

		c, _, err := newClient()
		if err != nil {
			return err
		}
		if err := requireAdmin(c); err != nil {
			return err
		}

		password, err := c.ResetPassword(id)
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("New password for user %d: %s\n", id, password)
		return nil
	},
}

var usersDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := userIDArg(args)
		if err != nil {
			return err
		}

		c, _, err := newClient()
		if err != nil {
			return err
		}
		if err := requireAdmin(c); err != nil {
			return err
		}

		if err := c.DisableUser(id); err != nil {
			return friendly(err)
		}
		fmt.Printf("Disabled user %d.\n", id)
		return nil
	},
}

var usersEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Re-enable an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := userIDArg(args)
		if err != nil {
			return err
		}

		c, _, err := newClient()
		if err != nil {
			return err
		}
		if err := requireAdmin(c); err != nil {
			return err
		}

		if err := c.EnableUser(id); err != nil {
			return friendly(err)
		}
		fmt.Printf("Enabled user %d.\n", id)
		return nil
	},
}

func init() {
	usersListCmd.Flags().StringVar(&usersRole, "role", "", "filter by role (Admin, HR, User)")

	usersAddCmd.Flags().StringVar(&newUserName, "username", "", "account username")
	usersAddCmd.Flags().StringVar(&newUserEmail, "email", "", "account email")
	usersAddCmd.Flags().StringVar(&newUserRole, "role", "", "account role (Admin, HR, User)")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersRmCmd)
	usersCmd.AddCommand(usersResetCmd)
	usersCmd.AddCommand(usersDisableCmd)
	usersCmd.AddCommand(usersEnableCmd)
}
