package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/internal/service/inventory"
)

func newInventoryMock() *inventoryServiceMock {
	return &inventoryServiceMock{
		ItemsFunc:          func(context.Context) ([]domain.InventoryItem, error) { return nil, nil },
		BorrowsFunc:        func(context.Context) ([]domain.BorrowRecord, error) { return nil, nil },
		ItemNamesFunc:      func(context.Context) ([]string, error) { return nil, nil },
		OverdueNoticesFunc: func(context.Context) ([]string, error) { return nil, nil },
	}
}

func TestInventoryView_LowStockFlags(t *testing.T) {
	svc := newInventoryMock()
	svc.ItemsFunc = func(context.Context) ([]domain.InventoryItem, error) {
		return []domain.InventoryItem{
			{Name: "Mop", Quantity: 3},
			{Name: "Bucket", Quantity: 12},
		}, nil
	}
	h := NewInventoryHandler(svc, testLogger())

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/inventory", nil), "alice", "staff")
	rec := httptest.NewRecorder()
	h.View(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp inventoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(resp.Items))
	}
	if !resp.Items[0].LowStock {
		t.Error("Mop at quantity 3 should be flagged low stock")
	}
	if resp.Items[1].LowStock {
		t.Error("Bucket at quantity 12 should not be flagged")
	}
}

func TestInventoryView_AnonymousRedirects(t *testing.T) {
	h := NewInventoryHandler(newInventoryMock(), testLogger())

	rec := httptest.NewRecorder()
	h.View(rec, httptest.NewRequest(http.MethodGet, "/inventory", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
}

func TestInventory_AddItem_QuantityNotANumber(t *testing.T) {
	h := NewInventoryHandler(newInventoryMock(), testLogger())

	rec := httptest.NewRecorder()
	h.AddItem(rec, postForm("/add_item", url.Values{
		"item_name": {"Mop"},
		"quantity":  {"lots"},
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestInventory_AddItem_Duplicate(t *testing.T) {
	svc := newInventoryMock()
	svc.AddItemFunc = func(context.Context, inventory.AddItemInput) ([]domain.InventoryItem, error) {
		return nil, domain.ErrAlreadyExists
	}
	h := NewInventoryHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.AddItem(rec, postForm("/add_item", url.Values{
		"item_name": {"Mop"},
		"quantity":  {"5"},
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestInventory_BorrowItem(t *testing.T) {
	svc := newInventoryMock()
	svc.BorrowFunc = func(_ context.Context, input inventory.BorrowInput) error {
		if input.Item != "Mop" || input.Quantity != 3 {
			t.Errorf("input = %+v", input)
		}
		return nil
	}
	h := NewInventoryHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.BorrowItem(rec, postForm("/borrow_item", url.Values{
		"item_name": {"Mop"},
		"quantity":  {"3"},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestInventory_BorrowItem_InsufficientStock(t *testing.T) {
	svc := newInventoryMock()
	svc.BorrowFunc = func(context.Context, inventory.BorrowInput) error {
		return domain.NewValidationError("quantity", "insufficient stock for Mop, available: 2")
	}
	h := NewInventoryHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.BorrowItem(rec, postForm("/borrow_item", url.Values{
		"item_name": {"Mop"},
		"quantity":  {"5"},
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestInventory_ReturnItem_Forbidden(t *testing.T) {
	svc := newInventoryMock()
	svc.ReturnFunc = func(context.Context, uuid.UUID) error {
		return domain.ErrForbidden
	}
	h := NewInventoryHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.ReturnItem(rec, postForm("/return_item", url.Values{"borrow_id": {uuid.NewString()}}))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestInventory_ReturnItem_BadID(t *testing.T) {
	h := NewInventoryHandler(newInventoryMock(), testLogger())

	rec := httptest.NewRecorder()
	h.ReturnItem(rec, postForm("/return_item", url.Values{"borrow_id": {"42"}}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
