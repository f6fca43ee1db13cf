// Package api is the only component that performs network I/O. It exposes
// the ERP backend's REST contract to the rest of the client; every other
// component interprets its failures instead of touching the wire.
package api

import (
	"context"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend speaks plain JSON numbers for quantities and prices.
	decimal.MarshalJSONWithoutQuotes = true
}

// NoteLineRequest is one line of a delivery-note create request. Field
// names follow the backend's wire contract.
type NoteLineRequest struct {
	ProductID    int64           `json:"productId"`
	Qte          decimal.Decimal `json:"qte"`
	PrixUnitaire decimal.Decimal `json:"prixUnitaire"`
}

// DeliveryNoteRequest is the body of POST /delivery-notes.
type DeliveryNoteRequest struct {
	SalespersonID int64             `json:"salespersonId"`
	ClientID      int64             `json:"clientId"`
	Remark        string            `json:"remark,omitempty"`
	Lines         []NoteLineRequest `json:"lines"`
}

// DeliveryNote is the backend's view of a created note. Only the id is
// needed here; the validate call is addressed by it.
type DeliveryNote struct {
	ID int64 `json:"id"`
}

// Pagination is the page envelope shared by list endpoints.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ProductRef is the product reference embedded in a stock row.
type ProductRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Reference string `json:"reference"`
}

// StockRow is one row of GET /stock/consultation.
type StockRow struct {
	Product  ProductRef      `json:"product"`
	Quantite decimal.Decimal `json:"quantite"`
}

// StockPage is one page of the salesperson's stock listing.
type StockPage struct {
	Rows       []StockRow `json:"rows"`
	Pagination Pagination `json:"pagination"`
}

// ClientRow is one row of GET /clients.
type ClientRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	City string `json:"city"`
}

// ClientPage is one page of the client list.
type ClientPage struct {
	Rows       []ClientRow `json:"rows"`
	Pagination Pagination  `json:"pagination"`
}

// Client is the REST surface consumed by the offline core.
type Client interface {
	// CreateDeliveryNote posts a new note and returns the remote document.
	CreateDeliveryNote(ctx context.Context, req *DeliveryNoteRequest) (*DeliveryNote, error)

	// ValidateDeliveryNote validates a created note. Validation has remote
	// side effects (stock decrement), so it must only run after a
	// successful create.
	ValidateDeliveryNote(ctx context.Context, id int64) error

	// CalculatePrice evaluates the backend pricing rules for one
	// (product, client, quantity) triple.
	CalculatePrice(ctx context.Context, productID, clientID int64, quantity decimal.Decimal) (decimal.Decimal, error)

	// FetchStockPage returns one page of the salesperson's stock listing.
	FetchStockPage(ctx context.Context, salespersonID int64, limit, page int) (*StockPage, error)

	// FetchClientPage returns one page of the client list.
	FetchClientPage(ctx context.Context, limit, page int) (*ClientPage, error)

	// Ping probes backend reachability. Any HTTP response counts as
	// reachable; only transport failures do not.
	Ping(ctx context.Context) error
}
