// Package sqlite stores registration documents in an embedded SQLite
// database using the pure-Go ncruces driver.
package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver" // registers the "sqlite3" driver
	_ "github.com/ncruces/go-sqlite3/embed"  // embeds the SQLite wasm build
	"go.opentelemetry.io/otel/trace"

	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/tracing"
)

// DB owns the database connection and hands out repositories.
type DB struct {
	conn   *sql.DB
	path   string
	tracer trace.Tracer
}

// Option configures a DB.
type Option func(*DB)

// WithTracer records repo.* spans for repository calls.
func WithTracer(t trace.Tracer) Option {
	return func(db *DB) { db.tracer = t }
}

// NewDB opens (creating if needed) the database at path, backs up an existing
// file to path.bak and applies pending migrations.
func NewDB(path string, opts ...Option) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	if err := backup(path); err != nil {
		return nil, fmt.Errorf("backing up database: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}
	conn, err := sql.Open("sqlite3", dsn(abs))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	applied, err := migrate(conn)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if applied > 0 {
		log.Info(log.CatDB, "Applied migrations", "path", path, "count", applied)
	}

	db := &DB{conn: conn, path: path, tracer: tracing.Noop()}
	for _, opt := range opts {
		opt(db)
	}
	return db, nil
}

// dsn builds a file: URI for an absolute path. Escaping keeps characters
// such as '#' or '?' in directory names from being read as URI syntax.
func dsn(abs string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(wal)")
	q.Add("_pragma", "foreign_keys(1)")
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: q.Encode()}
	return u.String()
}

// backup copies an existing, non-empty database file to path.bak.
func backup(path string) error {
	src, err := os.Open(path) //nolint:gosec // G304: path is the configured database
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}

	dst, err := os.OpenFile(path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) //nolint:gosec // G304: derived from database path
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// Path returns the database file path.
func (db *DB) Path() string { return db.path }

// Connection exposes the underlying *sql.DB.
func (db *DB) Connection() *sql.DB { return db.conn }

// RegistrationRepository returns the document repository.
func (db *DB) RegistrationRepository() registration.Repository {
	return newRegistrationRepository(db.conn, db.tracer)
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}
