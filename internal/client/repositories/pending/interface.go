package pending

import (
	"context"
	"time"

	"github.com/salesfield/fieldsync/internal/client/models"
)

// Repository is the append-only ledger of locally authored delivery notes.
// Implementations are typically backed by the device's SQLite database.
type Repository interface {
	// Insert appends a new note. The note's LocalID must be unique;
	// the ledger never generates ids itself.
	Insert(ctx context.Context, note *models.PendingNote) error

	// GetAllPending returns notes with synced=false in creation order.
	GetAllPending(ctx context.Context) ([]*models.PendingNote, error)

	// GetAll returns every note, synchronized or not, in creation order.
	GetAll(ctx context.Context) ([]*models.PendingNote, error)

	// GetByLocalID returns a single note.
	GetByLocalID(ctx context.Context, localID string) (*models.PendingNote, error)

	// MarkSynced flips the synced flag and records the sync time.
	MarkSynced(ctx context.Context, localID string, syncedAt time.Time) error

	// CountPending returns the number of notes with synced=false.
	CountPending(ctx context.Context) (int, error)

	// Remove deletes a note. Notes are retained for audit after sync;
	// this exists only for explicit administrative cleanup.
	Remove(ctx context.Context, localID string) error
}
