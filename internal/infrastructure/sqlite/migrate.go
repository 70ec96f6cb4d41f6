package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationSource returns the embedded migrations as a golang-migrate source.
func migrationSource() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

// migrate applies every up migration newer than the recorded version, each in
// its own transaction, and returns how many ran.
func migrate(conn *sql.DB) (int, error) {
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`); err != nil {
		return 0, fmt.Errorf("creating schema_migrations: %w", err)
	}

	var current sql.NullInt64
	if err := conn.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&current); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}

	src, err := migrationSource()
	if err != nil {
		return 0, fmt.Errorf("loading migrations: %w", err)
	}
	defer func() { _ = src.Close() }()

	applied := 0
	version, err := src.First()
	for err == nil {
		if !current.Valid || int64(version) > current.Int64 {
			if err := applyUp(conn, src, version); err != nil {
				return applied, err
			}
			applied++
		}
		version, err = src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return applied, fmt.Errorf("iterating migrations: %w", err)
	}
	return applied, nil
}

func applyUp(conn *sql.DB, src source.Driver, version uint) error {
	r, name, err := src.ReadUp(version)
	if err != nil {
		return fmt.Errorf("reading migration %d: %w", version, err)
	}
	body, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		return fmt.Errorf("reading migration %d: %w", version, err)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning migration %d: %w", version, err)
	}
	if _, err := tx.Exec(string(body)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("applying migration %d (%s): %w", version, name, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
		version, time.Now().Unix()); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("recording migration %d: %w", version, err)
	}
	return tx.Commit()
}

// SchemaVersion returns the highest applied migration, or 0.
func (db *DB) SchemaVersion() (int, error) {
	var v sql.NullInt64
	if err := db.conn.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, err
	}
	return int(v.Int64), nil
}
