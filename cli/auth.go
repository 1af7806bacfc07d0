package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sporadisk/worklog/console"
	"github.com/sporadisk/worklog/session"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}

		email := loginEmail
		if email == "" {
			email, err = console.Prompt("Email")
			if err != nil {
				return err
			}
		}
		password, err := console.Prompt("Password")
		if err != nil {
			return err
		}

		sess, err := c.Login(email, password)
		if err != nil {
			return friendly(err)
		}

		dir, err := session.DefaultDir()
		if err != nil {
			return fmt.Errorf("session.DefaultDir: %w", err)
		}
		if err := sess.Save(dir); err != nil {
			return fmt.Errorf("session.Save: %w", err)
		}

		fmt.Printf("Logged in as %s (%s)\n", sess.User.Username, sess.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := session.DefaultDir()
		if err != nil {
			return fmt.Errorf("session.DefaultDir: %w", err)
		}
		if err := session.Clear(dir); err != nil {
			return fmt.Errorf("session.Clear: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var (
	registerEmail    string
	registerUsername string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account (User role)",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}

		email := registerEmail
		if email == "" {
			email, err = console.Prompt("Email")
			if err != nil {
				return err
			}
		}
		username := registerUsername
		if username == "" {
			username, err = console.Prompt("Username")
			if err != nil {
				return err
			}
		}
		password, err := console.Prompt("Password (min 6 chars)")
		if err != nil {
			return err
		}

		if err := c.Register(email, username, password); err != nil {
			return friendly(err)
		}
		fmt.Println("Registered. You can log in now.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the profile behind the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		profile, err := c.Me()
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("%s <%s> role=%s id=%d\n", profile.Username, profile.Email, profile.Role, profile.ID)
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the current user's password",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}
		if err := requireLogin(c); err != nil {
			return err
		}

		oldPassword, err := console.Prompt("Old password")
		if err != nil {
			return err
		}
		newPassword, err := console.Prompt("New password (min 6 chars)")
		if err != nil {
			return err
		}

		if err := c.ChangePassword(oldPassword, newPassword); err != nil {
			return friendly(err)
		}
		fmt.Println("Password changed.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "account username")
}
