package rest

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/internal/transport/middleware"
	"github.com/heartmarshall/storetrack-backend/pkg/ctxutil"
)

// ExportHandler serves the CSV export endpoints. Every export requires a
// session; payroll additionally requires the manager role. Staff logs are
// scoped to the caller's own records for non-managers (the services apply
// the scoping).
type ExportHandler struct {
	tasks     taskService
	timeclock timeclockService
	inventory inventoryService
	orders    orderService
	log       *slog.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(tasks taskService, tc timeclockService, inv inventoryService, orders orderService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		tasks:     tasks,
		timeclock: tc,
		inventory: inv,
		orders:    orders,
		log:       logger.With("handler", "export"),
	}
}

// Tasks handles GET /export/tasks: pending and completed tasks in one
// sheet, pending rows with completed_at rendered as N/A.
func (h *ExportHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	if _, ok := ctxutil.IdentityFromCtx(r.Context()); !ok {
		handleViewError(h.log, w, r, domain.ErrUnauthorized)
		return
	}

	pending, err := h.tasks.List(r.Context())
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	completed, err := h.tasks.ListCompleted(r.Context())
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}

	rows := [][]string{{"Time", "Date", "Description", "Status", "Completed At"}}
	for _, t := range pending {
		rows = append(rows, []string{t.Time, t.Date, t.Description, t.Status.String(), "N/A"})
	}
	for _, t := range completed {
		rows = append(rows, []string{t.Time, t.Date, t.Description, t.Status.String(), t.CompletedAt})
	}

	writeCSV(w, "tasks.csv", rows)
}

// StaffLogs handles GET /export/staff_logs.
func (h *ExportHandler) StaffLogs(w http.ResponseWriter, r *http.Request) {
	if _, ok := ctxutil.IdentityFromCtx(r.Context()); !ok {
		handleViewError(h.log, w, r, domain.ErrUnauthorized)
		return
	}

	logs, err := h.timeclock.Logs(r.Context())
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}

	rows := [][]string{{"Name", "Time In", "Time Out"}}
	for _, l := range logs {
		timeOut := "N/A"
		if l.TimeOut != nil {
			timeOut = *l.TimeOut
		}
		rows = append(rows, []string{l.Name, l.TimeIn, timeOut})
	}

	writeCSV(w, "staff_logs.csv", rows)
}

// Payroll handles GET /export/payroll. Manager only.
func (h *ExportHandler) Payroll(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireManager(r.Context()); err != nil {
		handleViewError(h.log, w, r, err)
		return
	}

	payroll, err := h.timeclock.Payroll(r.Context())
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}

	rows := [][]string{{"Name", "Amount", "Date"}}
	for _, p := range payroll {
		rows = append(rows, []string{p.Name, formatFloat(p.Amount), p.Date})
	}

	writeCSV(w, "payroll.csv", rows)
}

// Inventory handles GET /export/inventory.
func (h *ExportHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	if _, ok := ctxutil.IdentityFromCtx(r.Context()); !ok {
		handleViewError(h.log, w, r, domain.ErrUnauthorized)
		return
	}

	items, err := h.inventory.Items(r.Context())
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}

	rows := [][]string{{"Name", "Quantity", "Added By", "Added Date"}}
	for _, item := range items {
		rows = append(rows, []string{item.Name, strconv.Itoa(item.Quantity), item.AddedBy, item.AddedDate})
	}

	writeCSV(w, "inventory.csv", rows)
}

// BorrowHistory handles GET /export/borrow_history.
func (h *ExportHandler) BorrowHistory(w http.ResponseWriter, r *http.Request) {
	if _, ok := ctxutil.IdentityFromCtx(r.Context()); !ok {
		handleViewError(h.log, w, r, domain.ErrUnauthorized)
		return
	}

	borrows, err := h.inventory.Borrows(r.Context())
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
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

	writeCSV(w, "borrow_history.csv", rows)
}

// Orders handles GET /export/orders.
func (h *ExportHandler) Orders(w http.ResponseWriter, r *http.Request) {
	if _, ok := ctxutil.IdentityFromCtx(r.Context()); !ok {
		handleViewError(h.log, w, r, domain.ErrUnauthorized)
		return
	}

	orders, err := h.orders.List(r.Context())
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}

	rows := [][]string{{"Item", "Quantity", "Price", "Ordered By", "Order Date"}}
	for _, o := range orders {
		rows = append(rows, []string{o.Item, strconv.Itoa(o.Quantity), formatFloat(o.Price), o.OrderedBy, o.OrderDate})
	}

	writeCSV(w, "orders.csv", rows)
}

func writeCSV(w http.ResponseWriter, filename string, rows [][]string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	cw := csv.NewWriter(w)
	cw.WriteAll(rows) //nolint:errcheck
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
