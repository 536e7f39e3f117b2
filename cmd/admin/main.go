package main

import (
	"os"
	"resto/config"
	"resto/di"
	"resto/internal/cli"
	"resto/shared/logger"

	"github.com/spf13/cobra"
)

func main() {
	logger.InitLogger()

	rootCmd := &cobra.Command{
		Use:   "resto-admin",
		Short: "Operator tooling for the resto backend",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.Configure(config.Get())
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		cli.CreateAdminCmd(func() cli.AdminCreator { return di.InitializeAdminUsers() }),
		cli.MigrateCmd(config.Get),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
