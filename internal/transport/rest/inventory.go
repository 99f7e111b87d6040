package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/internal/service/inventory"
	"github.com/heartmarshall/storetrack-backend/pkg/ctxutil"
)

type inventoryService interface {
	AddItem(ctx context.Context, input inventory.AddItemInput) ([]domain.InventoryItem, error)
	Borrow(ctx context.Context, input inventory.BorrowInput) error
	Return(ctx context.Context, borrowID uuid.UUID) error
	Items(ctx context.Context) ([]domain.InventoryItem, error)
	Borrows(ctx context.Context) ([]domain.BorrowRecord, error)
	ItemNames(ctx context.Context) ([]string, error)
	OverdueNotices(ctx context.Context) ([]string, error)
	LowStockThreshold() int
}

// InventoryHandler serves the inventory view and the add/borrow/return
// mutation endpoints.
type InventoryHandler struct {
	svc inventoryService
	log *slog.Logger
}

// NewInventoryHandler creates an InventoryHandler.
func NewInventoryHandler(svc inventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{svc: svc, log: logger.With("handler", "inventory")}
}

type inventoryItemView struct {
	domain.InventoryItem
	LowStock bool `json:"low_stock"`
}

type inventoryResponse struct {
	Items         []inventoryItemView   `json:"items"`
	BorrowHistory []domain.BorrowRecord `json:"borrow_history"`
	ItemNames     []string              `json:"item_names"`
	Notifications []string              `json:"notifications"`
}

// View handles GET /inventory: stock with low-stock flags, the borrow
// history, and overdue-borrow notices.
func (h *InventoryHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := ctxutil.IdentityFromCtx(ctx); !ok {
		handleViewError(h.log, w, r, domain.ErrUnauthorized)
		return
	}

	items, err := h.svc.Items(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	borrows, err := h.svc.Borrows(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	names, err := h.svc.ItemNames(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	notices, err := h.svc.OverdueNotices(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}

	threshold := h.svc.LowStockThreshold()
	views := make([]inventoryItemView, 0, len(items))
	for _, item := range items {
		views = append(views, inventoryItemView{
			InventoryItem: item,
			LowStock:      item.LowStock(threshold),
		})
	}

	writeJSON(w, http.StatusOK, inventoryResponse{
		Items:         views,
		BorrowHistory: borrows,
		ItemNames:     names,
		Notifications: notices,
	})
}

// AddItem handles POST /add_item.
func (h *InventoryHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	qty, err := strconv.Atoi(r.PostFormValue("quantity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "quantity must be a number")
		return
	}

	items, err := h.svc.AddItem(r.Context(), inventory.AddItemInput{
		Name:     r.PostFormValue("item_name"),
		Quantity: qty,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// BorrowItem handles POST /borrow_item. The borrower is the session user.
func (h *InventoryHandler) BorrowItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	qty, err := strconv.Atoi(r.PostFormValue("quantity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "quantity must be a number")
		return
	}

	if err := h.svc.Borrow(r.Context(), inventory.BorrowInput{
		Item:     r.PostFormValue("item_name"),
		Quantity: qty,
	}); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	h.respondState(w, r)
}

// ReturnItem handles POST /return_item.
func (h *InventoryHandler) ReturnItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	id, err := uuid.Parse(r.PostFormValue("borrow_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid borrow id")
		return
	}

	if err := h.svc.Return(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	h.respondState(w, r)
}

// respondState returns the items and borrow history after a mutation.
func (h *InventoryHandler) respondState(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Items(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	borrows, err := h.svc.Borrows(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":          items,
		"borrow_history": borrows,
	})
}
