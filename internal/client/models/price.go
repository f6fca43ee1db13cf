package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceEntry is a cached unit-price quote for a (product, client, quantity)
// triple. At most one entry exists per triple; a quantity of 1 acts as the
// baseline fallback for quantities with no exact match.
type PriceEntry struct {
	ProductID   int64
	ClientID    int64
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LastUpdated time.Time
}
