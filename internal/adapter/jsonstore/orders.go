package jsonstore

import (
	"context"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
)

// OrderRepo persists purchase orders. Placing an order decrements stock,
// so the mutation rewrites the inventory and orders documents as one
// atomic pair.
type OrderRepo struct {
	items  *Collection[domain.InventoryItem]
	orders *Collection[domain.OrderRecord]
}

func NewOrderRepo(s *Store) *OrderRepo {
	return &OrderRepo{
		items:  NewCollection[domain.InventoryItem](s, "inventory"),
		orders: NewCollection[domain.OrderRecord](s, "orders"),
	}
}

// Orders returns all orders in insertion order.
func (r *OrderRepo) Orders(ctx context.Context) ([]domain.OrderRecord, error) {
	return r.orders.All(ctx)
}

// UpdateWithItems applies fn to inventory and orders together and
// persists both before returning.
func (r *OrderRepo) UpdateWithItems(
	ctx context.Context,
	fn func(items []domain.InventoryItem, orders []domain.OrderRecord) ([]domain.InventoryItem, []domain.OrderRecord, error),
) error {
	return UpdatePair(ctx, r.items, r.orders, fn)
}
