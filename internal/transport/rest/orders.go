package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/internal/service/order"
	"github.com/heartmarshall/storetrack-backend/pkg/ctxutil"
)

type orderService interface {
	Place(ctx context.Context, input order.PlaceInput) error
	List(ctx context.Context) ([]domain.OrderRecord, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

// OrderHandler serves the orders view and the place-order endpoint.
type OrderHandler struct {
	orders orderService
	items  inventoryService
	log    *slog.Logger
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orders orderService, items inventoryService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		items:  items,
		log:    logger.With("handler", "orders"),
	}
}

type ordersResponse struct {
	Items        []domain.InventoryItem `json:"items"`
	Orders       []domain.OrderRecord   `json:"orders"`
	ItemNames    []string               `json:"item_names"`
	TotalRevenue float64                `json:"total_revenue"`
}

// View handles GET /orders.
func (h *OrderHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := ctxutil.IdentityFromCtx(ctx); !ok {
		handleViewError(h.log, w, r, domain.ErrUnauthorized)
		return
	}

	items, err := h.items.Items(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	orders, err := h.orders.List(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	names, err := h.items.ItemNames(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	total, err := h.orders.TotalRevenue(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ordersResponse{
		Items:        items,
		Orders:       orders,
		ItemNames:    names,
		TotalRevenue: total,
	})
}

// AddOrder handles POST /add_order. The form price is per unit; the
// persisted record carries the total.
func (h *OrderHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	qty, err := strconv.Atoi(r.PostFormValue("quantity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "quantity must be a number")
		return
	}
	price, err := strconv.ParseFloat(r.PostFormValue("price"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "price must be a number")
		return
	}

	if err := h.orders.Place(r.Context(), order.PlaceInput{
		Item:      r.PostFormValue("item_name"),
		Quantity:  qty,
		UnitPrice: price,
	}); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	orders, err := h.orders.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	total, err := h.orders.TotalRevenue(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"orders":        orders,
		"total_revenue": total,
	})
}
