// Package db owns the SQLite file that holds timer state and notification
// history.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema/schema.sql
var schemaSQL string

// SchemaVersion is stamped into PRAGMA user_version once the schema is
// applied. A file stamped with a newer version is refused.
const SchemaVersion = 1

// FileName is the database file inside the data directory.
const FileName = "ticktock.db"

// Path is the database file for dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

const (
	pingAttempts = 5
	pingBackoff  = 100 * time.Millisecond
)

// OpenOptions tunes the connection pool. Zero fields take the defaults.
type OpenOptions struct {
	MaxOpenConns int
	MaxIdleConns int
	BusyTimeout  int // milliseconds
}

func DefaultOpenOptions() OpenOptions {
	return OpenOptions{MaxOpenConns: 4, MaxIdleConns: 2, BusyTimeout: 5000}
}

func (o OpenOptions) withDefaults() OpenOptions {
	d := DefaultOpenOptions()
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = d.MaxOpenConns
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = d.MaxIdleConns
	}
	if o.BusyTimeout <= 0 {
		o.BusyTimeout = d.BusyTimeout
	}
	return o
}

func (o OpenOptions) dsn(path string) string {
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", path, o.BusyTimeout)
}

// DB is an open database with its query set.
type DB struct {
	conn    *sql.DB
	queries *Queries
}

// Open creates dataDir if needed, opens the database in WAL mode, and
// applies the schema.
func Open(dataDir string, opts OpenOptions) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	opts = opts.withDefaults()

	conn, err := sql.Open("sqlite", opts.dsn(Path(dataDir)))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxIdleConns)

	ctx := context.Background()
	database := &DB{conn: conn, queries: New(conn)}
	for _, step := range []func(context.Context) error{database.ping, database.migrate} {
		if err := step(ctx); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return database, nil
}

func (db *DB) Close() error { return db.conn.Close() }

func (db *DB) Queries() *Queries { return db.queries }

// WithTx runs fn in a transaction, committing when fn returns nil.
func (db *DB) WithTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(db.queries.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ping waits for the file to accept connections, backing off between tries.
func (db *DB) ping(ctx context.Context) error {
	wait := pingBackoff
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = db.conn.PingContext(ctx); err == nil {
			return nil
		}
		if attempt < pingAttempts {
			time.Sleep(wait)
			wait *= 2
		}
	}
	return fmt.Errorf("connect to database after %d attempts: %w", pingAttempts, err)
}

// UserVersion reads PRAGMA user_version.
func (db *DB) UserVersion(ctx context.Context) (int, error) {
	var v int
	if err := db.conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

func (db *DB) migrate(ctx context.Context) error {
	v, err := db.UserVersion(ctx)
	if err != nil {
		return err
	}
	if v > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than this build supports (%d)", v, SchemaVersion)
	}

	if _, err := db.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if v < SchemaVersion {
		if _, err := db.conn.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
			return fmt.Errorf("stamp schema version: %w", err)
		}
	}
	return nil
}
