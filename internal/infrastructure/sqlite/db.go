// Package sqlite provides the SQLite-backed ordering store and the database
// lifecycle around it: directory creation, pre-migration backups, pragma
// setup, and embedded schema migrations.
package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/espalier/internal/log"
	"github.com/zjrosen/espalier/internal/ordering"
)

// DB wraps the SQLite connection and owns its lifecycle. Repositories hand
// out views over the shared connection and never close it themselves.
type DB struct {
	conn *sql.DB
}

// NewDB opens (or creates) the database at path, backs up an existing file,
// and runs any pending migrations. The parent directory is created with
// 0700 permissions; the store holds per-user UI history.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// Copy the previous file aside before migrations get a chance to
	// touch it.
	if _, err := os.Stat(path); err == nil {
		if err := backupFile(path); err != nil {
			return nil, fmt.Errorf("backing up database: %w", err)
		}
	}

	dsn := "file:" + path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(ON)" +
		"&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Debug(log.CatDB, "database ready", "path", path)
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// OrderingRepository returns the ordering store backed by this database.
func (db *DB) OrderingRepository() ordering.Store {
	return newOrderingRepository(db.conn)
}

// backupFile copies path to path.bak, replacing any previous backup.
func backupFile(path string) error {
	src, err := os.Open(path) //nolint:gosec // G304: path is the user's own database
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
