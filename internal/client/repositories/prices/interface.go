package prices

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/salesfield/fieldsync/internal/client/models"
)

// Repository caches unit-price quotes keyed by the
// (product, client, quantity) triple.
type Repository interface {
	// Upsert inserts a quote or replaces the existing one for the same
	// triple. Repeated writes for one key leave exactly one entry.
	Upsert(ctx context.Context, entry *models.PriceEntry) error

	// Get returns the quote for the exact triple, or common.ErrNotFound.
	Get(ctx context.Context, productID, clientID int64, quantity decimal.Decimal) (*models.PriceEntry, error)

	// Count returns the number of cached quotes.
	Count(ctx context.Context) (int, error)
}
