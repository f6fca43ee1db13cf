package prices

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/salesfield/fieldsync/internal/client/models"
	"github.com/salesfield/fieldsync/internal/common"
	"github.com/salesfield/fieldsync/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX.
//
// Quantities are stored as canonical decimal strings (decimal.String), so
// "5" and "5.0" address the same row.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert writes the quote idempotently for its natural key.
func (r *SQLiteRepository) Upsert(ctx context.Context, entry *models.PriceEntry) error {
	query := `INSERT INTO cached_prices (product_id, client_id, quantity, unit_price, last_updated)
			values (?, ?, ?, ?, ?)
			ON CONFLICT(product_id, client_id, quantity) DO UPDATE SET
				unit_price = excluded.unit_price,
				last_updated = excluded.last_updated
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ProductID, entry.ClientID, entry.Quantity.String(),
		entry.UnitPrice.String(), entry.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert price: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, productID, clientID int64, quantity decimal.Decimal) (*models.PriceEntry, error) {
	query := `select unit_price, last_updated from cached_prices
			where product_id=? and client_id=? and quantity=?`
	row := r.db.QueryRowContext(ctx, query, productID, clientID, quantity.String())

	entry := &models.PriceEntry{ProductID: productID, ClientID: clientID, Quantity: quantity}
	var unitPrice string
	if err := row.Scan(&unitPrice, &entry.LastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}

	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return nil, fmt.Errorf("corrupt cached price %q: %w", unitPrice, err)
	}
	entry.UnitPrice = price
	return entry, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `select count(*) from cached_prices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cached prices: %w", err)
	}
	return n, nil
}
