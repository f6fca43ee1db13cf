// Package store owns the device-local SQLite database: opening it, running
// the versioned schema migrations, and guarding every operation with a
// reopen-once retry so a handle reclaimed by the platform does not surface
// as a hard failure.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// DB is a dbx.DBTX implementation that transparently reopens the underlying
// handle once if it has been closed, then retries the single operation.
// Unrelated operations are not serialized against each other; only the
// reopen itself takes the lock.
type DB struct {
	dsn string

	mu sync.Mutex
	db *sql.DB
}

// OpenDB opens the SQLite database at dsn and wraps it.
func OpenDB(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &DB{dsn: dsn, db: db}, nil
}

func (d *DB) handle() *sql.DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.db
}

// Unwrap exposes the current raw handle, e.g. for running migrations.
func (d *DB) Unwrap() *sql.DB {
	return d.handle()
}

func (d *DB) Close() error {
	return d.handle().Close()
}

// isClosed reports whether err indicates a reclaimed or closed handle.
func isClosed(err error) bool {
	if err == nil {
		return false
	}
	if err == sql.ErrConnDone {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}

// reopen replaces a closed handle with a fresh one. If another operation
// already reopened it, the existing handle is reused.
func (d *DB) reopen(ctx context.Context, stale *sql.DB) (*sql.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != stale {
		return d.db, nil
	}

	db, err := sql.Open("sqlite", d.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reopen database: %w", err)
	}
	d.db = db
	return db, nil
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	db := d.handle()
	res, err := db.ExecContext(ctx, query, args...)
	if !isClosed(err) {
		return res, err
	}
	db, rerr := d.reopen(ctx, db)
	if rerr != nil {
		return nil, rerr
	}
	return db.ExecContext(ctx, query, args...)
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	db := d.handle()
	rows, err := db.QueryContext(ctx, query, args...)
	if !isClosed(err) {
		return rows, err
	}
	db, rerr := d.reopen(ctx, db)
	if rerr != nil {
		return nil, rerr
	}
	return db.QueryContext(ctx, query, args...)
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	db := d.handle()
	row := db.QueryRowContext(ctx, query, args...)
	if !isClosed(row.Err()) {
		return row
	}
	db, rerr := d.reopen(ctx, db)
	if rerr != nil {
		return row
	}
	return db.QueryRowContext(ctx, query, args...)
}
