package db

import (
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"github.com/diewo77/go-dashboard/internal/models"
)

// Migrate brings the schema up to date via GORM AutoMigrate. Production
// deployments prefer RunSQLMigrations; AutoMigrate remains the dev default.
func Migrate(conn *gorm.DB) error {
	for _, m := range []interface{}{
		&models.User{}, &models.Customer{}, &models.Invoice{}, &models.Revenue{},
	} {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	for _, table := range []string{"users", "customers", "invoices", "revenues"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// RunSQLMigrations executes the SQL files in ./migrations against the
// database using golang-migrate's file source.
func RunSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", NormalizeDSN(dsn))
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
