package jsonstore

import (
	"context"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
)

// InventoryRepo persists stocked items and borrow history. Borrow and
// return each touch both documents, so those mutations run as one atomic
// pair update; stock and borrow history never disagree mid-write.
type InventoryRepo struct {
	items   *Collection[domain.InventoryItem]
	borrows *Collection[domain.BorrowRecord]
}

func NewInventoryRepo(s *Store) *InventoryRepo {
	return &InventoryRepo{
		items:   NewCollection[domain.InventoryItem](s, "inventory"),
		borrows: NewCollection[domain.BorrowRecord](s, "borrow"),
	}
}

// Items returns all stocked items in insertion order.
func (r *InventoryRepo) Items(ctx context.Context) ([]domain.InventoryItem, error) {
	return r.items.All(ctx)
}

// Borrows returns the full borrow history in insertion order.
func (r *InventoryRepo) Borrows(ctx context.Context) ([]domain.BorrowRecord, error) {
	return r.borrows.All(ctx)
}

// UpdateItems applies fn to the items collection alone (add item).
func (r *InventoryRepo) UpdateItems(
	ctx context.Context,
	fn func(items []domain.InventoryItem) ([]domain.InventoryItem, error),
) ([]domain.InventoryItem, error) {
	return r.items.Update(ctx, fn)
}

// UpdateWithBorrows applies fn to items and borrow history together and
// persists both before returning (borrow, return).
func (r *InventoryRepo) UpdateWithBorrows(
	ctx context.Context,
	fn func(items []domain.InventoryItem, borrows []domain.BorrowRecord) ([]domain.InventoryItem, []domain.BorrowRecord, error),
) error {
	return UpdatePair(ctx, r.items, r.borrows, fn)
}
