package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.monitor.IsOnline() {
		return "(online)"
	}
	return "(offline)"
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("fieldsync companion (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("fsync %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands:")
			fmt.Println("  add <salespersonId> <clientId> <productId> <qty> [remark]  queue a delivery note")
			fmt.Println("  price <productId> <clientId> <qty>                         resolve a unit price")
			fmt.Println("  prefetch <salespersonId>                                   download the price matrix")
			fmt.Println("  sync                                                       drain the pending queue")
			fmt.Println("  queue                                                      list queued notes")
			fmt.Println("  stock | clients                                            list cached reference data")
			fmt.Println("  reset                                                      clear all cached data")
			fmt.Println("  status | exit")
		case "add":
			a.addNote(ctx, args)
		case "price":
			a.resolvePrice(ctx, args)
		case "prefetch":
			a.prefetch(ctx, args)
		case "sync":
			a.drain(ctx)
		case "queue":
			a.listQueue(ctx)
		case "stock":
			a.listStock(ctx)
		case "clients":
			a.listClients(ctx)
		case "reset":
			a.resetCache(ctx)
		case "status":
			fmt.Println(a.getStatus())
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("unknown command %q, type 'help'\n", cmd)
		}
	}
}
