// Package cli holds the operator commands shared by cmd/admin and cmd/migrate.
package cli

import (
	"context"
	"fmt"
	"resto/config"
	"resto/helper"
	"resto/internal/domains/user/model/dto"
	"resto/shared/constant"
	"resto/shared/validator"
	"strconv"

	"github.com/spf13/cobra"
)

// AdminCreator creates admin accounts.
type AdminCreator interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
}

// Migrator runs one schema migration action.
type Migrator func(cfg *config.Config) error

var migrations = []struct {
	use   string
	short string
	run   Migrator
}{
	{use: "up", short: "Apply all pending migrations", run: helper.Up},
	{use: "down", short: "Roll back the last migration", run: helper.Down},
	{use: "step-up", short: "Apply the next pending migration", run: helper.StepUp},
	{use: "drop", short: "Roll back every migration", run: helper.Drop},
}

// MigrationCmds returns one command per migration direction.
func MigrationCmds(cfg func() *config.Config) []*cobra.Command {
	commands := make([]*cobra.Command, 0, len(migrations))

	for _, m := range migrations {
		run := m.run

		commands = append(commands, &cobra.Command{
			Use:   m.use,
			Short: m.short,
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return run(cfg())
			},
		})
	}

	return commands
}

func MigrateCmd(cfg func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(MigrationCmds(cfg)...)
	cmd.AddCommand(versionCmd(cfg), forceCmd(cfg))

	return cmd
}

func versionCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, dirty, err := helper.Version(cfg())
			if err != nil {
				return err
			}

			cmd.Printf("version %d dirty=%t\n", version, dirty)

			return nil
		},
	}
}

func forceCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "force VERSION",
		Short: "Mark VERSION as applied after fixing a failed migration by hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil || version < -1 {
				return fmt.Errorf("invalid version %q", args[0])
			}

			return helper.Force(cfg(), version)
		},
	}
}

// CreateAdminCmd seeds an admin account. The first account of a fresh install is created here.
func CreateAdminCmd(creator func() AdminCreator) *cobra.Command {
	var (
		req  dto.CreateUserRequest
		name string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name != "" {
				req.FullName = &name
			}

			if err := validator.ValidateStruct(&req); err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), constant.ContextKeyUserID, constant.ContextInternal)

			user, err := creator().Create(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			cmd.Printf("Created %s %s (%s)\n", user.Role, user.Email, user.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "login e-mail")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password (min 8 characters)")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Role, "role", constant.RoleSuperAdmin, "admin or superadmin")

	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
