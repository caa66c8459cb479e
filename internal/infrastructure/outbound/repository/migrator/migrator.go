package migrator

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migrate_pgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migrate_sqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/migrations"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Migrator applies the embedded schema for one storage driver.
type Migrator struct {
	m   *migrate.Migrate
	log ports.Logger
	// closeFn releases resources the migrator opened itself.
	closeFn func() error
}

// NewPostgres opens a dedicated database/sql handle for the DSN; Close releases it.
func NewPostgres(dsn string, log ports.Logger) (*Migrator, error) {
	db, err := sql.Open("pgx/v5", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres for migrations: %w", err)
	}
	src, err := iofs.New(migrations.Postgres, "postgres")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load postgres migrations: %w", err)
	}
	driver, err := migrate_pgx.WithInstance(db, &migrate_pgx.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return &Migrator{m: m, log: log, closeFn: func() error {
		srcErr, dbErr := m.Close()
		return errors.Join(srcErr, dbErr)
	}}, nil
}

// NewSQLite runs against an already open handle; Close leaves it open.
func NewSQLite(db *sql.DB, log ports.Logger) (*Migrator, error) {
	src, err := iofs.New(migrations.SQLite, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("load sqlite migrations: %w", err)
	}
	driver, err := migrate_sqlite.WithInstance(db, &migrate_sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("init sqlite migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return &Migrator{m: m, log: log, closeFn: src.Close}, nil
}

func (mg *Migrator) Run(direction Direction) error {
	var err error
	switch direction {
	case Up:
		err = mg.m.Up()
	case Down:
		err = mg.m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("Schema already up to date", slog.String("direction", string(direction)))
		return nil
	}
	if err != nil {
		mg.log.Error("Migration failed", slog.String("direction", string(direction)), slog.String("error", err.Error()))
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	version, dirty, verr := mg.m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", verr)
	}
	mg.log.Info("Migration applied",
		slog.String("direction", string(direction)),
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty))
	return nil
}

func (mg *Migrator) Close() error {
	if mg.closeFn == nil {
		return nil
	}
	return mg.closeFn()
}
