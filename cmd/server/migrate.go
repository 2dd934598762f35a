package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-dashboard/internal/db"
)

var useSQLMigrations bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if useSQLMigrations {
			if err := db.RunSQLMigrations(cfg.Database.DSN); err != nil {
				return err
			}
			log.Info().Msg("SQL migrations completed")
			return nil
		}
		conn, err := db.Connect(cfg.Database.DSN, false)
		if err != nil {
			return err
		}
		defer db.Close(conn)
		if err := db.Migrate(conn); err != nil {
			return err
		}
		log.Info().Msg("migrations completed")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&useSQLMigrations, "sql", false, "use SQL migration files instead of AutoMigrate")
	rootCmd.AddCommand(migrateCmd)
}
