package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/database"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const usage = "Usage: migrate [-steps N] up|down|status|seed"

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	steps := fs.Int("steps", 1, "Number of migrations to roll back with down")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stdout, usage)
		fs.PrintDefaults()
		return fmt.Errorf("expected exactly one command")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, nil)))

	cfg := config.Load()
	if cfg.Database.Driver == config.DriverSQLite {
		return fmt.Errorf("SQL migrations target postgres; sqlite schemas are created by AutoMigrate")
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runner := database.NewMigrationRunner(db)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := runner.WaitForDatabase(ctx); err != nil {
		return err
	}

	switch fs.Arg(0) {
	case "up":
		return runner.RunMigrations()
	case "down":
		return runner.RollbackMigrations(*steps)
	case "seed":
		return runner.LoadSeeds()
	case "status":
		version, dirty, err := runner.GetMigrationStatus()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(stdout, "no migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "version=%d dirty=%t\n", version, dirty)
		return nil
	default:
		fmt.Fprintln(stdout, usage)
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}
}
