package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/salesfield/fieldsync/internal/client/api"
	"github.com/salesfield/fieldsync/internal/client/repositories/pending"
	"github.com/salesfield/fieldsync/internal/client/repositories/prices"
	"github.com/salesfield/fieldsync/internal/client/repositories/reference"
	"github.com/salesfield/fieldsync/internal/logging"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE pending_delivery_notes (
  local_id TEXT PRIMARY KEY,
  salesperson_id INTEGER NOT NULL,
  client_id INTEGER NOT NULL,
  remark TEXT NOT NULL DEFAULT '',
  lines TEXT NOT NULL,
  synced INTEGER NOT NULL DEFAULT 0,
  created_at TIMESTAMP NOT NULL,
  synced_at TIMESTAMP
);
CREATE TABLE cached_prices (
  product_id INTEGER NOT NULL,
  client_id INTEGER NOT NULL,
  quantity TEXT NOT NULL,
  unit_price TEXT NOT NULL,
  last_updated TIMESTAMP NOT NULL,
  PRIMARY KEY (product_id, client_id, quantity)
);
CREATE TABLE cached_stock (
  product_id INTEGER PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  reference TEXT NOT NULL DEFAULT '',
  available TEXT NOT NULL DEFAULT '0',
  last_updated TIMESTAMP NOT NULL
);
CREATE TABLE cached_clients (
  client_id INTEGER PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  code TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  last_updated TIMESTAMP NOT NULL
);
CREATE TABLE cached_dashboard (
  salesperson_id INTEGER PRIMARY KEY,
  payload TEXT NOT NULL DEFAULT '{}',
  last_updated TIMESTAMP NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

type repos struct {
	pending   pending.Repository
	prices    prices.Repository
	reference reference.Repository
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	db := setupDB(t)
	return repos{
		pending:   pending.NewSQLiteRepository(db),
		prices:    prices.NewSQLiteRepository(db),
		reference: reference.NewSQLiteRepository(db),
	}
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var errRemote = errors.New("remote failure")

// fakeAPI implements api.Client with per-call counters. Unset behaviors
// fail the calling test, so each test states exactly what it expects on
// the wire.
type fakeAPI struct {
	t *testing.T

	createCalls   int
	validateCalls int
	calcCalls     int

	createFn   func(req *api.DeliveryNoteRequest) (*api.DeliveryNote, error)
	validateFn func(id int64) error
	calcFn     func(productID, clientID int64, qty decimal.Decimal) (decimal.Decimal, error)
	stockFn    func(salespersonID int64, limit, page int) (*api.StockPage, error)
	clientsFn  func(limit, page int) (*api.ClientPage, error)
}

func (f *fakeAPI) CreateDeliveryNote(_ context.Context, req *api.DeliveryNoteRequest) (*api.DeliveryNote, error) {
	f.createCalls++
	if f.createFn == nil {
		f.t.Fatal("unexpected CreateDeliveryNote call")
	}
	return f.createFn(req)
}

func (f *fakeAPI) ValidateDeliveryNote(_ context.Context, id int64) error {
	f.validateCalls++
	if f.validateFn == nil {
		f.t.Fatal("unexpected ValidateDeliveryNote call")
	}
	return f.validateFn(id)
}

func (f *fakeAPI) CalculatePrice(_ context.Context, productID, clientID int64, qty decimal.Decimal) (decimal.Decimal, error) {
	f.calcCalls++
	if f.calcFn == nil {
		f.t.Fatal("unexpected CalculatePrice call")
	}
	return f.calcFn(productID, clientID, qty)
}

func (f *fakeAPI) FetchStockPage(_ context.Context, salespersonID int64, limit, page int) (*api.StockPage, error) {
	if f.stockFn == nil {
		f.t.Fatal("unexpected FetchStockPage call")
	}
	return f.stockFn(salespersonID, limit, page)
}

func (f *fakeAPI) FetchClientPage(_ context.Context, limit, page int) (*api.ClientPage, error) {
	if f.clientsFn == nil {
		f.t.Fatal("unexpected FetchClientPage call")
	}
	return f.clientsFn(limit, page)
}

func (f *fakeAPI) Ping(_ context.Context) error { return nil }

// stockPages builds a paginated stock listing over the given product ids.
// The server controls the effective page size, so the fake keeps its own.
func stockPages(products []int64, pageSize int) func(int64, int, int) (*api.StockPage, error) {
	return func(_ int64, _, page int) (*api.StockPage, error) {
		start := (page - 1) * pageSize
		end := start + pageSize
		if end > len(products) {
			end = len(products)
		}
		p := &api.StockPage{Pagination: api.Pagination{Total: len(products), Page: page, Limit: pageSize}}
		if start < len(products) {
			for _, id := range products[start:end] {
				p.Rows = append(p.Rows, api.StockRow{
					Product:  api.ProductRef{ID: id, Name: "product", Reference: "ref"},
					Quantite: decimal.NewFromInt(10),
				})
			}
		}
		return p, nil
	}
}

// clientPages builds a paginated client listing over the given client ids.
func clientPages(clients []int64, pageSize int) func(int, int) (*api.ClientPage, error) {
	return func(_, page int) (*api.ClientPage, error) {
		start := (page - 1) * pageSize
		end := start + pageSize
		if end > len(clients) {
			end = len(clients)
		}
		p := &api.ClientPage{Pagination: api.Pagination{Total: len(clients), Page: page, Limit: pageSize}}
		if start < len(clients) {
			for _, id := range clients[start:end] {
				p.Rows = append(p.Rows, api.ClientRow{ID: id, Name: "client"})
			}
		}
		return p, nil
	}
}
