package main

import (
	"os"
	"resto/config"
	"resto/internal/cli"
	"resto/shared/logger"
)

func main() {
	logger.InitLogger()

	rootCmd := cli.MigrateCmd(config.Get)
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
