package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/workly/workly/internal/log"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Schema versions, one per migration file pair.
const (
	VersionBoardCache uint = 1
	VersionJournal    uint = 2

	// Latest is the version a migrated database has.
	Latest = VersionJournal
)

// Migrator brings the board cache and journal schema to the latest version.
type Migrator struct {
	db     *sql.DB
	logger log.Logger
}

// NewMigrator creates a new migrator instance.
func NewMigrator(db *sql.DB, logger log.Logger) (*Migrator, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logger == nil {
		logger = log.Noop
	}

	return &Migrator{
		db:     db,
		logger: logger.WithValues(log.Kv{"svc": "sqlite.Migrator"}),
	}, nil
}

// Up applies the pending migrations and returns the resulting schema version.
// A database created by a newer workly (unknown version) is an error.
func (m *Migrator) Up(ctx context.Context) (uint, error) {
	return m.run(ctx, func(inst *migrate.Migrate) error {
		err := inst.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	})
}

// Version returns the current schema version, zero when nothing was applied.
func (m *Migrator) Version(ctx context.Context) (uint, error) {
	return m.run(ctx, func(*migrate.Migrate) error { return nil })
}

func (m *Migrator) run(ctx context.Context, f func(inst *migrate.Migrate) error) (uint, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	driver, err := sqlite3.WithInstance(m.db, &sqlite3.Config{})
	if err != nil {
		return 0, fmt.Errorf("could not create driver: %w", err)
	}

	src, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return 0, fmt.Errorf("could not create fs: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			m.logger.Errorf("could not close migrations fs: %s", err)
		}
	}()

	inst, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return 0, fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := f(inst); err != nil {
		return 0, fmt.Errorf("could not run migrations: %w", err)
	}

	version, dirty, err := inst.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("could not get schema version: %w", err)
	case dirty:
		return version, fmt.Errorf("schema version %d is dirty, a previous migration failed", version)
	case version > Latest:
		return version, fmt.Errorf("schema version %d is newer than the supported %d", version, Latest)
	}

	m.logger.Debugf("Schema at version %d", version)
	return version, nil
}
