package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// runMigrations brings the schema up to date from the embedded migration
// files.
func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}

	drv, err := newMigrationDriver(conn)
	if err != nil {
		return fmt.Errorf("preparing migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "espalier", drv)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}

	srcErr, dbErr := m.Close()
	if srcErr != nil {
		return fmt.Errorf("closing migration source: %w", srcErr)
	}
	return dbErr
}

// migrationDriver adapts the shared connection to golang-migrate's database
// driver contract. The stock sqlite drivers bring their own cgo or wasm
// runtime; this one reuses the ncruces connection the rest of the package
// already holds.
type migrationDriver struct {
	conn *sql.DB
}

var _ database.Driver = (*migrationDriver)(nil)

func newMigrationDriver(conn *sql.DB) (*migrationDriver, error) {
	_, err := conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version BIGINT NOT NULL,
		dirty BOOLEAN NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("creating schema_migrations table: %w", err)
	}
	return &migrationDriver{conn: conn}, nil
}

// Open is part of the driver contract but unused: the driver is always
// constructed around an existing connection.
func (d *migrationDriver) Open(string) (database.Driver, error) {
	return d, nil
}

// Close is a no-op; the connection is owned by DB.
func (d *migrationDriver) Close() error {
	return nil
}

// Lock is a no-op. A single process migrates at startup, and busy_timeout
// covers a second process racing the same file.
func (d *migrationDriver) Lock() error {
	return nil
}

// Unlock is a no-op.
func (d *migrationDriver) Unlock() error {
	return nil
}

// Run executes one migration file as a single script.
func (d *migrationDriver) Run(migration io.Reader) error {
	script, err := io.ReadAll(migration)
	if err != nil {
		return fmt.Errorf("reading migration: %w", err)
	}
	if _, err := d.conn.Exec(string(script)); err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	return nil
}

// SetVersion records the current migration version.
func (d *migrationDriver) SetVersion(version int, dirty bool) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning version update: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM schema_migrations`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clearing version: %w", err)
	}
	if version >= 0 {
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`, version, dirty); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording version: %w", err)
		}
	}
	return tx.Commit()
}

// Version reports the current migration version.
func (d *migrationDriver) Version() (int, bool, error) {
	var version int
	var dirty bool
	err := d.conn.QueryRow(`SELECT version, dirty FROM schema_migrations LIMIT 1`).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return database.NilVersion, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading version: %w", err)
	}
	return version, dirty, nil
}

// Drop removes every user table.
func (d *migrationDriver) Drop() error {
	rows, err := d.conn.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scanning table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating tables: %w", err)
	}

	for _, table := range tables {
		if _, err := d.conn.Exec(`DROP TABLE IF EXISTS ` + table); err != nil {
			return fmt.Errorf("dropping table %s: %w", table, err)
		}
	}
	return nil
}
