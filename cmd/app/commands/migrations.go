package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/tregmine/webapi/internal/database"
)

// RunMigrations applies every pending migration from migrationsDir/<postgresql|mysql>.
// The connection string is the one the server uses, so no migrate specific URL is needed.
func RunMigrations(logger *slog.Logger, dbConfig database.Config, migrationsDir string) error {
	var subdir string
	switch {
	case database.IsPostgres(dbConfig.Driver):
		subdir = "postgresql"
	case dbConfig.Driver == "mysql":
		subdir = "mysql"
	default:
		return fmt.Errorf("unsupported database driver: %s", dbConfig.Driver)
	}

	logger.Info("running database migrations", slog.String("driver", dbConfig.Driver))

	db, err := database.Connect(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	var driver migratedb.Driver
	if subdir == "postgresql" {
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	} else {
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	}
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	sourceURL := "file://" + filepath.ToSlash(filepath.Join(migrationsDir, subdir))
	m, err := migrate.NewWithDatabaseInstance(sourceURL, dbConfig.Driver, driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
