package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fabianopolone123/ERP-TI/internal/auth"
	"github.com/fabianopolone123/ERP-TI/internal/user"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	userCreate   user.CreateUserDTO
	credUsername string
	credPassword string
	groupUserID  int64
	groupID      int64
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the user directory",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users with their group labels",
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *Application) error {
		users, err := app.Users.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tDEPARTMENT\tGROUPS\tLOGIN")
		for _, u := range users {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.FullName, u.Department, u.GroupLabel, u.Username)
		}
		return tw.Flush()
	}),
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a user",
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *Application) error {
		u, err := app.Users.CreateUser(cmd.Context(), userCreate)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %d created: %s\n", u.ID, u.FullName)
		return nil
	}),
}

var userCredentialsCmd = &cobra.Command{
	Use:   "credentials <user-id>",
	Short: "Set a user's login and password",
	Long:  `Stores a pbkdf2 digest. The password is prompted for when --password is not given.`,
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *Application) error {
		id, err := parseID("user", args[0])
		if err != nil {
			return err
		}
		password := credPassword
		if password == "" {
			password, err = promptPassword(cmd)
			if err != nil {
				return err
			}
		}
		if err := app.Auth.SetCredentials(cmd.Context(), id, auth.SetCredentialsDTO{Username: credUsername, Password: password}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "credentials stored for user %d\n", id)
		return nil
	}),
}

var userLabelsCmd = &cobra.Command{
	Use:   "labels <user-id>",
	Short: "Print the group label of a user",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *Application) error {
		id, err := parseID("user", args[0])
		if err != nil {
			return err
		}
		label, err := app.Users.GroupLabelsForUser(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), label)
		return nil
	}),
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage user groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *Application) error {
		g, err := app.Users.CreateGroup(cmd.Context(), user.CreateGroupDTO{Name: args[0]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "group %d created: %s\n", g.ID, g.Name)
		return nil
	}),
}

var groupAssignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Add a user to a group",
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *Application) error {
		if err := app.Users.AssignToGroup(cmd.Context(), groupID, groupUserID); err != nil {
			return err
		}
		label, err := app.Users.GroupLabelsForUser(cmd.Context(), groupUserID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %d groups: %s\n", groupUserID, label)
		return nil
	}),
}

var groupRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a user from a group",
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *Application) error {
		if err := app.Users.RemoveFromGroup(cmd.Context(), groupID, groupUserID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %d removed from group %d\n", groupUserID, groupID)
		return nil
	}),
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("--password is required when stdin is not a terminal")
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&userCreate.Department, "department", "", "department")
	f.StringVar(&userCreate.FullName, "name", "", "full name")
	f.StringVar(&userCreate.Phone, "phone", "", "phone")
	f.StringVar(&userCreate.Extension, "extension", "", "phone extension")
	f.StringVar(&userCreate.Email, "email", "", "email")

	userCredentialsCmd.Flags().StringVar(&credUsername, "username", "", "login")
	userCredentialsCmd.Flags().StringVar(&credPassword, "password", "", "password")

	for _, c := range []*cobra.Command{groupAssignCmd, groupRemoveCmd} {
		c.Flags().Int64Var(&groupID, "group", 0, "group id")
		c.Flags().Int64Var(&groupUserID, "user", 0, "user id")
		_ = c.MarkFlagRequired("group")
		_ = c.MarkFlagRequired("user")
	}

	userCmd.AddCommand(userListCmd, userCreateCmd, userCredentialsCmd, userLabelsCmd)
	groupCmd.AddCommand(groupCreateCmd, groupAssignCmd, groupRemoveCmd)
}
