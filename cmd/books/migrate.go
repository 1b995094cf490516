package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Migrations run over a plain database/sql connection; the pgx
		// stdlib driver keeps it compatible with the application pool.
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database connection for migrations: %w", err)
		}
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
			}
		}()
		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to ping database for migrations: %w", err)
		}

		driver, err := postgres.WithInstance(db, &postgres.Config{})
		if err != nil {
			return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
		}

		m, err := migrate.NewWithDatabaseInstance("file://"+cfg.MigrationsPath, "postgres", driver)
		if err != nil {
			return fmt.Errorf("could not create migrate instance: %w", err)
		}

		if migrateDown {
			err = m.Down()
		} else {
			err = m.Up()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}

		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			return fmt.Errorf("error closing migrate instance: source=%v db=%v", sourceErr, dbErr)
		}

		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No new migrations to apply.")
		} else {
			logger.Info("Database migrations applied successfully.")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back all migrations instead of applying them")
	rootCmd.AddCommand(migrateCmd)
}
