package pending

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/salesfield/fieldsync/internal/client/models"
	"github.com/salesfield/fieldsync/internal/common"
	"github.com/salesfield/fieldsync/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB, a
// *sql.Tx, or the store's reopening wrapper).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, note *models.PendingNote) error {
	lines, err := json.Marshal(note.Lines)
	if err != nil {
		return fmt.Errorf("failed to encode note lines: %w", err)
	}

	query := `INSERT INTO pending_delivery_notes
			(local_id, salesperson_id, client_id, remark, lines, synced, created_at, synced_at)
			values (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		note.LocalID, note.SalespersonID, note.ClientID, note.Remark,
		string(lines), note.Synced, note.CreatedAt, note.SyncedAt)
	if err != nil {
		return fmt.Errorf("failed to insert pending note: %w", err)
	}
	return nil
}

const noteColumns = `local_id, salesperson_id, client_id, remark, lines, synced, created_at, synced_at`

func scanNote(scan func(dest ...any) error) (*models.PendingNote, error) {
	note := &models.PendingNote{}
	var lines string
	var syncedAt sql.NullTime
	if err := scan(&note.LocalID, &note.SalespersonID, &note.ClientID,
		&note.Remark, &lines, &note.Synced, &note.CreatedAt, &syncedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(lines), &note.Lines); err != nil {
		return nil, fmt.Errorf("failed to decode note lines: %w", err)
	}
	if syncedAt.Valid {
		t := syncedAt.Time
		note.SyncedAt = &t
	}
	return note, nil
}

func (r *SQLiteRepository) queryNotes(ctx context.Context, query string, args ...any) ([]*models.PendingNote, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending notes: %w", err)
	}
	defer rows.Close()

	var result []*models.PendingNote
	for rows.Next() {
		note, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetAllPending returns unsynchronized notes in insertion order, which is
// the order the sync engine submits them in.
func (r *SQLiteRepository) GetAllPending(ctx context.Context) ([]*models.PendingNote, error) {
	query := `select ` + noteColumns + ` from pending_delivery_notes where synced=0 order by created_at, local_id`
	return r.queryNotes(ctx, query)
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.PendingNote, error) {
	query := `select ` + noteColumns + ` from pending_delivery_notes order by created_at, local_id`
	return r.queryNotes(ctx, query)
}

func (r *SQLiteRepository) GetByLocalID(ctx context.Context, localID string) (*models.PendingNote, error) {
	query := `select ` + noteColumns + ` from pending_delivery_notes where local_id=?`
	row := r.db.QueryRowContext(ctx, query, localID)

	note, err := scanNote(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return note, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, localID string, syncedAt time.Time) error {
	query := `update pending_delivery_notes set synced=1, synced_at=? where local_id=?`
	res, err := r.db.ExecContext(ctx, query, syncedAt, localID)
	if err != nil {
		return fmt.Errorf("failed to mark note synced: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) CountPending(ctx context.Context) (int, error) {
	query := `select count(*) from pending_delivery_notes where synced=0`
	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending notes: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, localID string) error {
	query := `delete from pending_delivery_notes where local_id=?`
	res, err := r.db.ExecContext(ctx, query, localID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrNotFound
	}
	return nil
}
