// Package user handles the commands that register, log in and log out local users
package user

import (
	"fjacquet/kfinance/cmd/root"
	"fjacquet/kfinance/internal/session"

	"github.com/spf13/cobra"
)

var registerIn session.RegisterInput

var loginIn struct {
	email    string
	password string
}

// Cmd represents the user command
var Cmd = &cobra.Command{
	Use:   "user",
	Short: "Manage local users",
	Long: `Manage the local users of this machine. Every user has separate records.
Passwords are stored locally in plain text; do not reuse a real password.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := root.GetContainer().GetUsers().Register(cmd.Context(), registerIn)
		if err != nil {
			return err
		}
		return root.Message(cmd, "User %s registered, log in with: kfinance user login --email %s", user.Name, user.Email)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as a registered user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := root.GetContainer().GetUsers().Login(cmd.Context(), loginIn.email, loginIn.password)
		if err != nil {
			return err
		}
		return root.Message(cmd, "Welcome, %s", user.Name)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out the current user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if err := c.GetUsers().Logout(cmd.Context()); err != nil {
			return err
		}
		c.GetSession().Reset()
		return root.Message(cmd, "Logged out")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, ok, err := root.GetContainer().GetUsers().Current(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			return root.Message(cmd, "Not logged in")
		}
		return root.Message(cmd, "%s <%s>", user.Name, user.Email)
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerIn.Name, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerIn.Email, "email", "", "Email, used to log in")
	registerCmd.Flags().StringVar(&registerIn.Password, "password", "", "Password, at least 6 characters")
	registerCmd.Flags().StringVar(&registerIn.Confirm, "confirm", "", "Password confirmation")

	loginCmd.Flags().StringVar(&loginIn.email, "email", "", "Email")
	loginCmd.Flags().StringVar(&loginIn.password, "password", "", "Password")

	Cmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}
