package reference

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
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) UpsertStock(ctx context.Context, item *models.StockItem) error {
	query := `INSERT INTO cached_stock (product_id, name, reference, available, last_updated)
			values (?, ?, ?, ?, ?)
			ON CONFLICT(product_id) DO UPDATE SET
				name = excluded.name,
				reference = excluded.reference,
				available = excluded.available,
				last_updated = excluded.last_updated
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ProductID, item.Name, item.Reference, item.Available.String(), item.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert stock item: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAllStock(ctx context.Context) ([]models.StockItem, error) {
	query := `select product_id, name, reference, available, last_updated from cached_stock order by product_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select cached stock: %w", err)
	}
	defer rows.Close()

	var result []models.StockItem
	for rows.Next() {
		var item models.StockItem
		var available string
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Reference, &available, &item.LastUpdated); err != nil {
			return nil, err
		}
		qty, err := decimal.NewFromString(available)
		if err != nil {
			return nil, fmt.Errorf("corrupt cached stock quantity %q: %w", available, err)
		}
		item.Available = qty
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) UpsertClient(ctx context.Context, info *models.ClientInfo) error {
	query := `INSERT INTO cached_clients (client_id, name, code, city, last_updated)
			values (?, ?, ?, ?, ?)
			ON CONFLICT(client_id) DO UPDATE SET
				name = excluded.name,
				code = excluded.code,
				city = excluded.city,
				last_updated = excluded.last_updated
	`
	_, err := r.db.ExecContext(ctx, query,
		info.ClientID, info.Name, info.Code, info.City, info.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert client: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAllClients(ctx context.Context) ([]models.ClientInfo, error) {
	query := `select client_id, name, code, city, last_updated from cached_clients order by client_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select cached clients: %w", err)
	}
	defer rows.Close()

	var result []models.ClientInfo
	for rows.Next() {
		var info models.ClientInfo
		if err := rows.Scan(&info.ClientID, &info.Name, &info.Code, &info.City, &info.LastUpdated); err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) UpsertDashboard(ctx context.Context, snap *models.DashboardSnapshot) error {
	query := `INSERT INTO cached_dashboard (salesperson_id, payload, last_updated)
			values (?, ?, ?)
			ON CONFLICT(salesperson_id) DO UPDATE SET
				payload = excluded.payload,
				last_updated = excluded.last_updated
	`
	_, err := r.db.ExecContext(ctx, query, snap.SalespersonID, string(snap.Payload), snap.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert dashboard snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetDashboard(ctx context.Context, salespersonID int64) (*models.DashboardSnapshot, error) {
	query := `select payload, last_updated from cached_dashboard where salesperson_id=?`
	row := r.db.QueryRowContext(ctx, query, salespersonID)

	snap := &models.DashboardSnapshot{SalespersonID: salespersonID}
	var payload string
	if err := row.Scan(&payload, &snap.LastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	snap.Payload = []byte(payload)
	return snap, nil
}
