package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fabianopolone123/ERP-TI/internal"
	"github.com/fabianopolone123/ERP-TI/internal/auth"
	"github.com/fabianopolone123/ERP-TI/internal/user"
	"github.com/spf13/cobra"
)

var (
	seedAdminName     string
	seedAdminUsername string
	seedAdminPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed default access folders, the staff group and an optional administrator",
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *Application) error {
		out := cmd.OutOrStdout()
		return seed(cmd.Context(), app, func(format string, args ...interface{}) {
			fmt.Fprintf(out, format+"\n", args...)
		})
	}),
}

func init() {
	seedCmd.Flags().StringVar(&seedAdminName, "admin-name", "Administrador", "full name of the seeded administrator")
	seedCmd.Flags().StringVar(&seedAdminUsername, "admin-username", "", "login of the seeded administrator; skipped when empty")
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "", "password of the seeded administrator")
}

// seed is safe to run repeatedly.
func seed(ctx context.Context, app *Application, printf func(string, ...interface{})) error {
	if ctx == nil {
		ctx = context.Background()
	}

	inserted, err := app.Folders.SeedDefaults(ctx)
	if err != nil {
		return err
	}
	printf("access folders seeded: %d", inserted)

	staff, err := ensureGroup(ctx, app.Users, app.Users.StaffGroupName())
	if err != nil {
		return err
	}
	printf("staff group: %s (id %d)", staff.Name, staff.ID)

	if strings.TrimSpace(seedAdminUsername) == "" {
		return nil
	}

	admin, err := findByUsername(ctx, app.Users, seedAdminUsername)
	if err != nil {
		return err
	}
	if admin == nil {
		admin, err = app.Users.CreateUser(ctx, user.CreateUserDTO{Department: staff.Name, FullName: seedAdminName})
		if err != nil {
			return err
		}
		if err := app.Auth.SetCredentials(ctx, admin.ID, auth.SetCredentialsDTO{
			Username: seedAdminUsername,
			Password: seedAdminPassword,
		}); err != nil {
			return err
		}
		printf("administrator created: %s (id %d)", admin.FullName, admin.ID)
	}

	err = app.Users.AssignToGroup(ctx, staff.ID, admin.ID)
	if err != nil && !internal.IsType(err, internal.ErrorTypeConflict) {
		return err
	}
	printf("administrator %d is in group %s", admin.ID, staff.Name)
	return nil
}

func ensureGroup(ctx context.Context, users *user.Service, name string) (*user.Group, error) {
	g, err := users.CreateGroup(ctx, user.CreateGroupDTO{Name: name})
	if err == nil {
		return g, nil
	}
	if !internal.IsType(err, internal.ErrorTypeConflict) {
		return nil, err
	}

	groups, err := users.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		if strings.EqualFold(strings.TrimSpace(g.Name), strings.TrimSpace(name)) {
			return g, nil
		}
	}
	return nil, internal.ErrGroupNotFound
}

func findByUsername(ctx context.Context, users *user.Service, username string) (*user.User, error) {
	all, err := users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if strings.EqualFold(strings.TrimSpace(u.Username), strings.TrimSpace(username)) {
			return u, nil
		}
	}
	return nil, nil
}
