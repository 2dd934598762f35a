package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-dashboard/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert fixture data and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		conn, err := db.Connect(cfg.Database.DSN, false)
		if err != nil {
			return err
		}
		defer db.Close(conn)
		if err := db.Migrate(conn); err != nil {
			return err
		}
		if err := db.Seed(conn); err != nil {
			return err
		}
		log.Info().Msg("seeding completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
