package reference

import (
	"context"

	"github.com/salesfield/fieldsync/internal/client/models"
)

// Repository caches denormalized reference data (stock, clients, dashboard
// snapshots) for offline rendering. All writes are upserts by the remote
// entity's natural key; a second fetch of the same entity updates in place.
type Repository interface {
	UpsertStock(ctx context.Context, item *models.StockItem) error
	GetAllStock(ctx context.Context) ([]models.StockItem, error)

	UpsertClient(ctx context.Context, info *models.ClientInfo) error
	GetAllClients(ctx context.Context) ([]models.ClientInfo, error)

	UpsertDashboard(ctx context.Context, snap *models.DashboardSnapshot) error
	// GetDashboard returns the snapshot for a salesperson, or
	// common.ErrNotFound.
	GetDashboard(ctx context.Context, salespersonID int64) (*models.DashboardSnapshot, error)
}
