package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-dashboard/internal/config"
	"github.com/diewo77/go-dashboard/internal/logger"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Invoicing dashboard server",
	Long: `Invoicing dashboard: invoice create/update/delete with validation,
paginated filtered listings and aggregate reporting over Postgres.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; explicit env vars always win.
		_ = godotenv.Load()
		return logger.Setup(logLevel, logFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console|json)")
}

func loadConfig() config.Config { return config.Load() }
