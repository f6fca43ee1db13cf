package store

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/salesfield/fieldsync/internal/client/migrations"
	"github.com/salesfield/fieldsync/internal/client/repositories/pending"
	"github.com/salesfield/fieldsync/internal/client/repositories/prices"
	"github.com/salesfield/fieldsync/internal/client/repositories/reference"
	"github.com/salesfield/fieldsync/internal/dbx"
)

// Store bundles the guarded database handle with the repositories bound to
// it. It is constructed once at startup and injected into every component
// that needs local persistence.
type Store struct {
	DB        *DB
	Pending   pending.Repository
	Prices    prices.Repository
	Reference reference.Repository
}

// RunMigrations applies the embedded schema migrations. Each schema version
// is a strict superset of the previous one, so upgrading never destroys
// cached data.
func RunMigrations(ctx context.Context, db *DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db.Unwrap(), ".")
}

// Open opens (or creates) the local database at dsn, migrates it to the
// current schema version, and returns the repository bundle.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := OpenDB(dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{
		DB:        db,
		Pending:   pending.NewSQLiteRepository(db),
		Prices:    prices.NewSQLiteRepository(db),
		Reference: reference.NewSQLiteRepository(db),
	}, nil
}

// ResetCache deletes all cached prices and reference data in a single
// transaction. Pending delivery notes are untouched. Meant as an explicit
// maintenance action before a fresh prefetch, never something the sync
// engine triggers on its own.
func (s *Store) ResetCache(ctx context.Context) error {
	return dbx.WithTx(ctx, s.DB.Unwrap(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, table := range []string{"cached_prices", "cached_stock", "cached_clients", "cached_dashboard"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func (s *Store) Close() error {
	return s.DB.Close()
}
