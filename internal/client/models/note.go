// Package models defines the device-side data models persisted by the
// fieldsync local store.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoteLine is one line of a delivery note.
type NoteLine struct {
	// ProductID references the remote product.
	ProductID int64 `json:"productId"`

	// Quantity is the ordered quantity; always > 0.
	Quantity decimal.Decimal `json:"quantity"`

	// UnitPrice is the price per unit applied at authoring time; >= 0.
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// PendingNote is a locally authored delivery note awaiting submission to
// the remote system. Notes are retained after synchronization for audit;
// only an explicit administrative action removes them.
type PendingNote struct {
	// LocalID is globally unique per device, generated at creation time
	// (millisecond timestamp plus a random suffix). It is the correlation
	// key for the note's whole lifecycle and is never reused.
	LocalID string

	// SalespersonID and ClientID reference remote entities.
	SalespersonID int64
	ClientID      int64

	// Remark is free-form text; may be empty.
	Remark string

	// Lines is the ordered, non-empty set of note lines.
	Lines []NoteLine

	// Synced is false until the remote create call succeeded.
	Synced bool

	// CreatedAt is set when the note is enqueued.
	CreatedAt time.Time

	// SyncedAt is set by the sync engine on successful remote create.
	SyncedAt *time.Time
}

// NoteDraft carries the user-entered fields of a note before it is
// enqueued; the queue assigns LocalID, Synced and CreatedAt.
type NoteDraft struct {
	SalespersonID int64
	ClientID      int64
	Remark        string
	Lines         []NoteLine
}
