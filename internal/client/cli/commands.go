package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/salesfield/fieldsync/internal/client/models"
	"github.com/salesfield/fieldsync/internal/common"
)

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// addNote queues a single-line delivery note. The unit price is resolved
// through the price service first, so offline authoring uses cached quotes.
func (a *App) addNote(ctx context.Context, args []string) {
	if len(args) < 4 {
		fmt.Println("usage: add <salespersonId> <clientId> <productId> <qty> [remark]")
		return
	}

	salespersonID, err1 := parseID(args[0])
	clientID, err2 := parseID(args[1])
	productID, err3 := parseID(args[2])
	qty, err4 := decimal.NewFromString(args[3])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		fmt.Println("invalid arguments")
		return
	}
	remark := strings.Join(args[4:], " ")

	price, err := a.price.ResolvePrice(ctx, productID, clientID, qty)
	if err != nil {
		// Best-effort: the note can still be queued at price zero and
		// corrected by the backend pricing on validation.
		fmt.Printf("warning: price unavailable (%s), using 0\n", resolveMessage(err))
	}

	draft := &models.NoteDraft{
		SalespersonID: salespersonID,
		ClientID:      clientID,
		Remark:        remark,
		Lines: []models.NoteLine{
			{ProductID: productID, Quantity: qty, UnitPrice: price},
		},
	}

	localID, err := a.sync.Enqueue(ctx, draft)
	if err != nil {
		fmt.Printf("could not queue note: %s\n", err)
		return
	}
	fmt.Printf("queued %s (unit price %s)\n", localID, price)
}

func resolveMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrNotCached):
		return "not cached"
	case errors.Is(err, common.ErrPriceUnavailable):
		return "remote pricing failed"
	default:
		return err.Error()
	}
}

func (a *App) resolvePrice(ctx context.Context, args []string) {
	if len(args) != 3 {
		fmt.Println("usage: price <productId> <clientId> <qty>")
		return
	}
	productID, err1 := parseID(args[0])
	clientID, err2 := parseID(args[1])
	qty, err3 := decimal.NewFromString(args[2])
	if err1 != nil || err2 != nil || err3 != nil {
		fmt.Println("invalid arguments")
		return
	}

	price, err := a.price.ResolvePrice(ctx, productID, clientID, qty)
	if err != nil {
		fmt.Printf("price unavailable: %s\n", resolveMessage(err))
		return
	}
	fmt.Printf("unit price: %s\n", price)
}

func (a *App) prefetch(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: prefetch <salespersonId>")
		return
	}
	salespersonID, err := parseID(args[0])
	if err != nil {
		fmt.Println("invalid salesperson id")
		return
	}

	err = a.price.BulkPrefetch(ctx, salespersonID, func(current, total int) {
		if current%100 == 0 || current == total {
			fmt.Printf("\rprefetching prices %d/%d", current, total)
		}
	})
	fmt.Println()
	if err != nil {
		if errors.Is(err, common.ErrOffline) {
			fmt.Println("cannot prefetch while offline")
			return
		}
		fmt.Printf("prefetch failed: %s\n", err)
		return
	}
	fmt.Println("prefetch complete")
}

func (a *App) drain(ctx context.Context) {
	result, err := a.sync.Drain(ctx)
	if err != nil {
		if errors.Is(err, common.ErrDrainInProgress) {
			fmt.Println("synchronization already running")
			return
		}
		fmt.Printf("synchronization failed: %s\n", err)
		return
	}

	fmt.Printf("synchronized: %d, failed: %d\n", result.Success, result.Failed)
	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Printf("error: %s\n", e)
	}
}

func (a *App) listQueue(ctx context.Context) {
	notes, err := a.sync.List(ctx)
	if err != nil {
		// Degrade to an empty listing; the store wrapper already retried.
		a.log.Warn(ctx, "failed to list queue", "error", err)
		notes = nil
	}
	if len(notes) == 0 {
		fmt.Println("queue is empty")
		return
	}
	for _, n := range notes {
		state := "pending"
		if n.Synced {
			state = "synced"
		}
		fmt.Printf("%s  client=%d lines=%d %s  %s\n",
			n.LocalID, n.ClientID, len(n.Lines), state, n.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func (a *App) listStock(ctx context.Context) {
	items, err := a.store.Reference.GetAllStock(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to list cached stock", "error", err)
		items = nil
	}
	if len(items) == 0 {
		fmt.Println("no cached stock")
		return
	}
	for _, it := range items {
		fmt.Printf("%d  %-30s %-12s available=%s\n", it.ProductID, it.Name, it.Reference, it.Available)
	}
}

func (a *App) listClients(ctx context.Context) {
	infos, err := a.store.Reference.GetAllClients(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to list cached clients", "error", err)
		infos = nil
	}
	if len(infos) == 0 {
		fmt.Println("no cached clients")
		return
	}
	for _, c := range infos {
		fmt.Printf("%d  %-10s %-30s %s\n", c.ClientID, c.Code, c.Name, c.City)
	}
}

func (a *App) resetCache(ctx context.Context) {
	if err := a.store.ResetCache(ctx); err != nil {
		fmt.Printf("reset failed: %s\n", err)
		return
	}
	fmt.Println("cached prices and reference data cleared")
}
