// Package services implements the offline-first core: price resolution with
// its cache fallback chain, the bulk price prefetch, the pending submission
// queue and the sync engine that drains it.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesfield/fieldsync/internal/client/api"
	"github.com/salesfield/fieldsync/internal/client/models"
	"github.com/salesfield/fieldsync/internal/client/netmon"
	"github.com/salesfield/fieldsync/internal/client/repositories/prices"
	"github.com/salesfield/fieldsync/internal/client/repositories/reference"
	"github.com/salesfield/fieldsync/internal/common"
	"github.com/salesfield/fieldsync/internal/logging"
)

const (
	// prefetchPageSize is the page size used when enumerating products
	// and clients.
	prefetchPageSize = 50

	// prefetchDelay is the pause between per-pair price requests; the only
	// backpressure control besides the error limit.
	prefetchDelay = 50 * time.Millisecond

	// prefetchErrorLimit is the aggregate per-pair failure budget. One more
	// failure aborts the whole prefetch.
	prefetchErrorLimit = 100
)

// baselineQuantity is the quantity whose cached price serves as the
// fallback for quantities with no exact cache hit.
var baselineQuantity = decimal.NewFromInt(1)

// PriceService resolves unit prices, preferring a live remote computation
// and falling back through the cache when the network is unavailable.
type PriceService struct {
	api       api.Client
	prices    prices.Repository
	reference reference.Repository
	monitor   *netmon.Monitor
	log       logging.Logger

	// delay between prefetch pair requests; fixed in production, shortened
	// in tests.
	delay time.Duration
}

func NewPriceService(apiClient api.Client, priceRepo prices.Repository, referenceRepo reference.Repository, monitor *netmon.Monitor, log logging.Logger) *PriceService {
	return &PriceService{
		api:       apiClient,
		prices:    priceRepo,
		reference: referenceRepo,
		monitor:   monitor,
		log:       log,
		delay:     prefetchDelay,
	}
}

// lookup reads the cache, treating store failures as a miss. The failure is
// logged so the distinction between "no data" and "read failed" stays
// observable without crashing a price lookup.
func (s *PriceService) lookup(ctx context.Context, productID, clientID int64, quantity decimal.Decimal) *models.PriceEntry {
	entry, err := s.prices.Get(ctx, productID, clientID, quantity)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.log.Warn(ctx, "price cache read failed",
				"product_id", productID, "client_id", clientID, "error", err)
		}
		return nil
	}
	return entry
}

// ResolvePrice returns the unit price for the triple, following the
// resolution priority chain: live remote (cache-populating) when online,
// else exact cached hit, else the cached baseline at quantity 1. A zero
// result with an error means the price could not be resolved at all.
//
// The offline path never touches the network.
func (s *PriceService) ResolvePrice(ctx context.Context, productID, clientID int64, quantity decimal.Decimal) (decimal.Decimal, error) {
	cached := s.lookup(ctx, productID, clientID, quantity)

	if !s.monitor.IsOnline() {
		if cached != nil {
			return cached.UnitPrice, nil
		}
		if baseline := s.lookup(ctx, productID, clientID, baselineQuantity); baseline != nil {
			return baseline.UnitPrice, nil
		}
		return decimal.Zero, common.ErrNotCached
	}

	price, err := s.api.CalculatePrice(ctx, productID, clientID, quantity)
	if err != nil {
		s.log.Warn(ctx, "remote price calculation failed",
			"product_id", productID, "client_id", clientID, "error", err)
		if cached != nil {
			return cached.UnitPrice, nil
		}
		return decimal.Zero, common.ErrPriceUnavailable
	}

	entry := &models.PriceEntry{
		ProductID:   productID,
		ClientID:    clientID,
		Quantity:    quantity,
		UnitPrice:   price,
		LastUpdated: time.Now().UTC(),
	}
	if err := s.prices.Upsert(ctx, entry); err != nil {
		s.log.Warn(ctx, "price cache write failed",
			"product_id", productID, "client_id", clientID, "error", err)
	}
	return price, nil
}

// ProgressFunc reports prefetch progress after each processed pair.
type ProgressFunc func(current, total int)

// BulkPrefetch downloads the full price matrix for every product the
// salesperson can sell against every known client, at the baseline quantity,
// so the device is self-sufficient offline afterwards. Stock and client rows
// seen while enumerating are cached as a side effect.
//
// The cross-product is deliberate: pricing rules carry per-client and
// per-campaign overrides that cannot be enumerated without per-pair
// evaluation. Running two prefetches concurrently is not supported.
func (s *PriceService) BulkPrefetch(ctx context.Context, salespersonID int64, onProgress ProgressFunc) error {
	if !s.monitor.IsOnline() {
		return common.ErrOffline
	}

	products, err := s.fetchAllStock(ctx, salespersonID)
	if err != nil {
		return fmt.Errorf("failed to enumerate stock: %w", err)
	}

	clients, err := s.fetchAllClients(ctx)
	if err != nil {
		return fmt.Errorf("failed to enumerate clients: %w", err)
	}

	total := len(products) * len(clients)
	s.log.Info(ctx, "starting price prefetch",
		"salesperson_id", salespersonID,
		"products", len(products), "clients", len(clients), "pairs", total)

	current := 0
	failures := 0
	for _, product := range products {
		for _, client := range clients {
			price, err := s.api.CalculatePrice(ctx, product, client, baselineQuantity)
			if err != nil {
				failures++
				s.log.Warn(ctx, "prefetch pair failed",
					"product_id", product, "client_id", client, "error", err)
				if failures > prefetchErrorLimit {
					return fmt.Errorf("%w (%d failures)", common.ErrPrefetchAborted, failures)
				}
			} else if price.IsPositive() {
				entry := &models.PriceEntry{
					ProductID:   product,
					ClientID:    client,
					Quantity:    baselineQuantity,
					UnitPrice:   price,
					LastUpdated: time.Now().UTC(),
				}
				if err := s.prices.Upsert(ctx, entry); err != nil {
					s.log.Warn(ctx, "price cache write failed",
						"product_id", product, "client_id", client, "error", err)
				}
			}
			// A zero or absent price is not cached: "no price configured"
			// must stay distinguishable from "price is zero" so the next
			// lookup re-attempts live resolution.

			current++
			if onProgress != nil {
				onProgress(current, total)
			}

			if current < total && s.delay > 0 {
				select {
				case <-time.After(s.delay):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}

	s.log.Info(ctx, "price prefetch finished", "pairs", total, "failures", failures)
	return nil
}

// fetchAllStock pages through the salesperson's stock listing until the
// accumulated count reaches the server-reported total, caching each row and
// returning the distinct product ids.
func (s *PriceService) fetchAllStock(ctx context.Context, salespersonID int64) ([]int64, error) {
	now := time.Now().UTC()
	var products []int64
	seen := make(map[int64]struct{})

	fetched := 0
	for page := 1; ; page++ {
		stockPage, err := s.api.FetchStockPage(ctx, salespersonID, prefetchPageSize, page)
		if err != nil {
			return nil, err
		}
		for _, row := range stockPage.Rows {
			item := &models.StockItem{
				ProductID:   row.Product.ID,
				Name:        row.Product.Name,
				Reference:   row.Product.Reference,
				Available:   row.Quantite,
				LastUpdated: now,
			}
			if err := s.reference.UpsertStock(ctx, item); err != nil {
				s.log.Warn(ctx, "stock cache write failed", "product_id", row.Product.ID, "error", err)
			}
			if _, ok := seen[row.Product.ID]; !ok {
				seen[row.Product.ID] = struct{}{}
				products = append(products, row.Product.ID)
			}
		}
		fetched += len(stockPage.Rows)
		if len(stockPage.Rows) == 0 || fetched >= stockPage.Pagination.Total {
			return products, nil
		}
	}
}

// fetchAllClients pages through the client list with the same
// accumulate-until-total loop.
func (s *PriceService) fetchAllClients(ctx context.Context) ([]int64, error) {
	now := time.Now().UTC()
	var clients []int64

	fetched := 0
	for page := 1; ; page++ {
		clientPage, err := s.api.FetchClientPage(ctx, prefetchPageSize, page)
		if err != nil {
			return nil, err
		}
		for _, row := range clientPage.Rows {
			info := &models.ClientInfo{
				ClientID:    row.ID,
				Name:        row.Name,
				Code:        row.Code,
				City:        row.City,
				LastUpdated: now,
			}
			if err := s.reference.UpsertClient(ctx, info); err != nil {
				s.log.Warn(ctx, "client cache write failed", "client_id", row.ID, "error", err)
			}
			clients = append(clients, row.ID)
		}
		fetched += len(clientPage.Rows)
		if len(clientPage.Rows) == 0 || fetched >= clientPage.Pagination.Total {
			return clients, nil
		}
	}
}
