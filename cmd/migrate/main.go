// Package main applies the embedded schema migrations with goose.
//
//	migrate up      apply every pending migration
//	migrate down    roll back the most recent migration
//	migrate status  list migrations and whether they are applied
//
// The target database is read from DATABASE_URL through internal/config.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/geotrails/travelmap/internal/config"
	"github.com/geotrails/travelmap/migrations"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: migrate up|down|status")
		os.Exit(2)
	}
	dsn, err := config.LoadDatabaseURL()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, dsn, os.Args[1], os.Stdout); err != nil {
		slog.Error("migration failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dsn, command string, out io.Writer) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	return execute(ctx, provider, command, out)
}

// migrator is the subset of *goose.Provider the commands use.
type migrator interface {
	Up(ctx context.Context) ([]*goose.MigrationResult, error)
	Down(ctx context.Context) (*goose.MigrationResult, error)
	Status(ctx context.Context) ([]*goose.MigrationStatus, error)
}

func execute(ctx context.Context, m migrator, command string, out io.Writer) error {
	switch command {
	case "up":
		results, err := m.Up(ctx)
		if err != nil {
			return err
		}
		for _, r := range results {
			slog.Info("applied migration", "version", r.Source.Version, "file", r.Source.Path, "duration", r.Duration)
		}
		if len(results) == 0 {
			slog.Info("no pending migrations")
		}
	case "down":
		r, err := m.Down(ctx)
		if err != nil {
			return err
		}
		slog.Info("rolled back migration", "version", r.Source.Version, "file", r.Source.Path)
	case "status":
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.UTC().Format(time.RFC3339)
			}
			fmt.Fprintf(out, "%-6d %-40s %s\n", s.Source.Version, s.Source.Path, applied)
		}
	default:
		return fmt.Errorf("unknown command %q (want up, down or status)", command)
	}
	return nil
}
