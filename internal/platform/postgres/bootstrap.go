package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	"github.com/pressly/goose/v3/lock"
)

//go:embed migrations
var migrationsFS embed.FS

// Schema describes one service's namespace and how its migrations are tracked.
type Schema struct {
	// Name is the PostgreSQL schema the service owns.
	Name string
	// Dir is the migrations directory inside the embedded filesystem.
	Dir string
	// Table records applied migration versions.
	Table string
	// LockID is the advisory lock key serializing concurrent bootstraps.
	LockID int64
}

// Schemas owned by the database-backed services.
var (
	ProductsSchema = Schema{
		Name:   "products_schema",
		Dir:    "migrations/products",
		Table:  "products_schema_migrations",
		LockID: 4_002_000_001,
	}
	DoctorsSchema = Schema{
		Name:   "clinic_schema",
		Dir:    "migrations/doctors",
		Table:  "clinic_schema_migrations",
		LockID: 4_003_000_001,
	}
)

// Migrations returns the embedded migration files for s.
func (s Schema) Migrations() (fs.FS, error) {
	fsys, err := fs.Sub(migrationsFS, s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations for %s: %w", s.Name, err)
	}
	return fsys, nil
}

// Bootstrap ensures the schema and tables for s exist.
//
// Every migration uses IF NOT EXISTS and none drops anything, and goose runs
// them under a PostgreSQL advisory session lock. Several instances starting at
// once therefore converge on the same schema, and re-running against an
// existing database changes nothing.
func Bootstrap(ctx context.Context, db *sql.DB, s Schema, logger *slog.Logger) error {
	log := logger.With(
		slog.String("component", "schema_bootstrap"),
		slog.String("schema", s.Name),
		slog.String("correlation_id", uuid.New().String()),
	)
	start := time.Now()

	fsys, err := s.Migrations()
	if err != nil {
		return err
	}

	versionStore, err := database.NewStore(database.DialectPostgres, s.Table)
	if err != nil {
		return fmt.Errorf("failed to create migration store: %w", err)
	}

	locker, err := lock.NewPostgresSessionLocker(lock.WithLockID(s.LockID))
	if err != nil {
		return fmt.Errorf("failed to create session locker: %w", err)
	}

	provider, err := goose.NewProvider("", db, fsys,
		goose.WithStore(versionStore),
		goose.WithSessionLocker(locker),
	)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	log.Info("bootstrapping schema")

	results, err := provider.Up(ctx)
	for _, r := range results {
		attrs := []any{
			slog.Int64("version", r.Source.Version),
			slog.String("file", r.Source.Path),
			slog.Int64("duration_ms", r.Duration.Milliseconds()),
		}
		if r.Error != nil {
			log.Error("migration failed", append(attrs, slog.String("error", r.Error.Error()))...)
			continue
		}
		log.Info("migration applied", attrs...)
	}
	if err != nil {
		return fmt.Errorf("failed to bootstrap schema %s: %w", s.Name, err)
	}

	log.Info("schema ready",
		slog.Int("applied", len(results)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
