package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem is a denormalized stock row cached for offline rendering,
// keyed by the remote product id.
type StockItem struct {
	ProductID   int64
	Name        string
	Reference   string
	Available   decimal.Decimal
	LastUpdated time.Time
}

// ClientInfo is a denormalized client row cached for offline rendering,
// keyed by the remote client id.
type ClientInfo struct {
	ClientID    int64
	Name        string
	Code        string
	City        string
	LastUpdated time.Time
}

// DashboardSnapshot holds the last dashboard payload fetched for a
// salesperson, stored opaquely so the rendering layer owns its shape.
type DashboardSnapshot struct {
	SalespersonID int64
	Payload       []byte
	LastUpdated   time.Time
}
