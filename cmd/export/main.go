// Command export writes one collection as CSV to stdout, using the same
// column layout as the HTTP export endpoints. Useful for cron jobs and
// ad-hoc reporting without a running server.
//
// Flags:
//
//	--collection  one of: tasks, staff_logs, payroll, inventory,
//	              borrow_history, orders (required)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/heartmarshall/storetrack-backend/internal/adapter/jsonstore"
	"github.com/heartmarshall/storetrack-backend/internal/app"
	"github.com/heartmarshall/storetrack-backend/internal/config"
)

func main() {
	collectionFlag := flag.String("collection", "", "collection to export")
	flag.Parse()

	if *collectionFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: export --collection <name>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := jsonstore.New(cfg.Storage, logger)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rows, err := collectRows(ctx, store, *collectionFlag)
	if err != nil {
		logger.Error("export", slog.String("collection", *collectionFlag), slog.String("error", err.Error()))
		os.Exit(1)
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.WriteAll(rows); err != nil {
		logger.Error("write csv", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func collectRows(ctx context.Context, store *jsonstore.Store, collection string) ([][]string, error) {
	switch collection {
	case "tasks":
		repo := jsonstore.NewTaskRepo(store)
		pending, err := repo.List(ctx)
		if err != nil {
			return nil, err
		}
		completed, err := repo.ListCompleted(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]string{{"Time", "Date", "Description", "Status", "Completed At"}}
		for _, t := range pending {
			rows = append(rows, []string{t.Time, t.Date, t.Description, t.Status.String(), "N/A"})
		}
		for _, t := range completed {
			rows = append(rows, []string{t.Time, t.Date, t.Description, t.Status.String(), t.CompletedAt})
		}
		return rows, nil

	case "staff_logs":
		logs, err := jsonstore.NewStaffRepo(store).Logs(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]string{{"Name", "Time In", "Time Out"}}
		for _, l := range logs {
			timeOut := "N/A"
			if l.TimeOut != nil {
				timeOut = *l.TimeOut
			}
			rows = append(rows, []string{l.Name, l.TimeIn, timeOut})
		}
		return rows, nil

	case "payroll":
		payroll, err := jsonstore.NewStaffRepo(store).Payroll(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]string{{"Name", "Amount", "Date"}}
		for _, p := range payroll {
			rows = append(rows, []string{p.Name, strconv.FormatFloat(p.Amount, 'g', -1, 64), p.Date})
		}
		return rows, nil

	case "inventory":
		items, err := jsonstore.NewInventoryRepo(store).Items(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]string{{"Name", "Quantity", "Added By", "Added Date"}}
		for _, item := range items {
			rows = append(rows, []string{item.Name, strconv.Itoa(item.Quantity), item.AddedBy, item.AddedDate})
		}
		return rows, nil

	case "borrow_history":
		borrows, err := jsonstore.NewInventoryRepo(store).Borrows(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]string{{"Item", "Quantity", "Borrowed By", "Borrow Date", "Returned", "Return Date"}}
		for _, b := range borrows {
			returned := "No"
			if b.Returned {
				returned = "Yes"
			}
			returnDate := "N/A"
			if b.ReturnDate != nil {
				returnDate = *b.ReturnDate
			}
			rows = append(rows, []string{b.Item, strconv.Itoa(b.Quantity), b.BorrowedBy, b.BorrowDate, returned, returnDate})
		}
		return rows, nil

	case "orders":
		orders, err := jsonstore.NewOrderRepo(store).Orders(ctx)
		if err != nil {
			return nil, err
		}
		rows := [][]string{{"Item", "Quantity", "Price", "Ordered By", "Order Date"}}
		for _, o := range orders {
			rows = append(rows, []string{o.Item, strconv.Itoa(o.Quantity), strconv.FormatFloat(o.Price, 'g', -1, 64), o.OrderedBy, o.OrderDate})
		}
		return rows, nil

	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}
