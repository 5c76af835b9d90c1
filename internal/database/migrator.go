package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	migrationsPath = "db/migrations"
	seedsPath      = "db/seeds"
)

var (
	defaultReadyAttempts = 30
	defaultReadyInterval = 2 * time.Second

	ErrMigrationsNotFound = errors.New("migrations directory not found")
)

// MigrationRunner applies the versioned schema under db/migrations and the optional
// demo data under db/seeds. Both directories can be moved with MIGRATIONS_PATH and SEEDS_PATH.
type MigrationRunner struct {
	db             *sql.DB
	migrationsPath string
	seedsPath      string
	readyAttempts  int
	readyInterval  time.Duration
	logger         *slog.Logger
}

func NewMigrationRunner(db *sql.DB) *MigrationRunner {
	return &MigrationRunner{
		db:             db,
		migrationsPath: envPath("MIGRATIONS_PATH", migrationsPath),
		seedsPath:      envPath("SEEDS_PATH", seedsPath),
		readyAttempts:  defaultReadyAttempts,
		readyInterval:  defaultReadyInterval,
		logger:         slog.Default().With("component", "migrator"),
	}
}

func envPath(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// WaitForDatabase pings until the database answers or the attempts run out
func (mr *MigrationRunner) WaitForDatabase(ctx context.Context) error {
	for attempt := 1; attempt <= mr.readyAttempts; attempt++ {
		err := mr.db.PingContext(ctx)
		if err == nil {
			mr.logger.Info("database is ready", "attempt", attempt)
			return nil
		}
		mr.logger.Warn("database not ready", "attempt", attempt, "max_attempts", mr.readyAttempts, "error", err)

		if attempt == mr.readyAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(mr.readyInterval):
		}
	}

	return fmt.Errorf("database not ready after %d attempts", mr.readyAttempts)
}

// withMigrate opens a migrate instance over the runner's connection, hands it to fn and
// releases it afterwards. The pool itself stays open.
func (mr *MigrationRunner) withMigrate(fn func(m *migrate.Migrate) error) error {
	if !dirExists(mr.migrationsPath) {
		return ErrMigrationsNotFound
	}

	absPath, err := filepath.Abs(mr.migrationsPath)
	if err != nil {
		return fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	driver, err := postgres.WithInstance(mr.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+absPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			mr.logger.Warn("failed to release migration instance", "source_error", srcErr, "database_error", dbErr)
		}
	}()

	return fn(m)
}

// RunMigrations applies every pending migration. A dirty version left by a crashed run is
// forced clean first. Having no migrations directory at all is not an error.
func (mr *MigrationRunner) RunMigrations() error {
	err := mr.withMigrate(func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		if dirty {
			mr.logger.Warn("schema is dirty, forcing version", "version", version)
			if err := m.Force(int(version)); err != nil {
				return fmt.Errorf("failed to force version %d: %w", version, err)
			}
		}

		switch err := m.Up(); {
		case errors.Is(err, migrate.ErrNoChange):
			mr.logger.Info("schema is up to date", "version", version)
			return nil
		case err != nil:
			return fmt.Errorf("migration failed: %w", err)
		}

		if current, _, err := m.Version(); err == nil {
			mr.logger.Info("applied migrations", "from", version, "to", current)
		}
		return nil
	})
	if errors.Is(err, ErrMigrationsNotFound) {
		mr.logger.Warn("migrations directory not found, skipping", "path", mr.migrationsPath)
		return nil
	}
	return err
}

func (mr *MigrationRunner) RollbackMigrations(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("invalid rollback steps: %d", steps)
	}

	return mr.withMigrate(func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("rollback of %d steps failed: %w", steps, err)
		}
		mr.logger.Info("rolled back migrations", "steps", steps)
		return nil
	})
}

// LoadSeeds runs each *.sql file under the seeds directory in name order, only when
// SEED_DATABASE=true. A file that fails to execute is logged and skipped; one that cannot
// be read stops the load.
func (mr *MigrationRunner) LoadSeeds() error {
	if os.Getenv("SEED_DATABASE") != "true" {
		mr.logger.Info("seed loading disabled")
		return nil
	}
	if !dirExists(mr.seedsPath) {
		mr.logger.Warn("seeds directory not found, skipping", "path", mr.seedsPath)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(mr.seedsPath, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list seed files: %w", err)
	}

	applied := 0
	for _, file := range files {
		name := filepath.Base(file)
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", name, err)
		}
		if _, err := mr.db.Exec(string(content)); err != nil {
			mr.logger.Warn("seed file failed", "file", name, "error", err)
			continue
		}
		applied++
	}

	mr.logger.Info("seed data loaded", "applied", applied, "files", len(files))
	return nil
}

// GetMigrationStatus returns the applied version. migrate.ErrNilVersion means nothing ran yet.
func (mr *MigrationRunner) GetMigrationStatus() (version uint, dirty bool, err error) {
	err = mr.withMigrate(func(m *migrate.Migrate) error {
		version, dirty, err = m.Version()
		return err
	})
	return version, dirty, err
}

// RunMigrationsIfEnabled migrates and seeds when AUTO_MIGRATE=true. The boolean reports
// whether the schema is now managed by the SQL migrations; when false the caller falls
// back to AutoMigrate.
func RunMigrationsIfEnabled(db *sql.DB) (bool, error) {
	if os.Getenv("AUTO_MIGRATE") != "true" {
		slog.Info("auto-migration disabled")
		return false, nil
	}

	runner := NewMigrationRunner(db)
	if !dirExists(runner.migrationsPath) {
		slog.Warn("migrations directory not found, leaving schema to AutoMigrate", "path", runner.migrationsPath)
		return false, nil
	}

	if err := runner.WaitForDatabase(context.Background()); err != nil {
		return false, fmt.Errorf("database readiness check failed: %w", err)
	}
	if err := runner.RunMigrations(); err != nil {
		return false, fmt.Errorf("migration execution failed: %w", err)
	}
	if err := runner.LoadSeeds(); err != nil {
		slog.Warn("seed data loading failed", "error", err)
	}

	return true, nil
}
