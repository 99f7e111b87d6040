package domain

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a stocked item. Names are unique across the collection
// (exact, case-sensitive match) and quantity never goes negative.
type InventoryItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	AddedBy   string    `json:"added_by"`
	AddedDate string    `json:"added_date"`
}

// LowStock reports whether the item's quantity is below the threshold.
func (i InventoryItem) LowStock(threshold int) bool {
	return i.Quantity < threshold
}

// BorrowRecord tracks stock lent out to a user. Creating one decrements the
// matching item's quantity; returning restores it.
type BorrowRecord struct {
	ID         uuid.UUID `json:"id"`
	Item       string    `json:"item"`
	Quantity   int       `json:"quantity"`
	BorrowedBy string    `json:"borrowed_by"`
	BorrowDate string    `json:"borrow_date"`
	Returned   bool      `json:"returned"`
	ReturnDate *string   `json:"return_date,omitempty"`
}

// OverdueAt reports whether an unreturned record is older than maxAge at
// the given instant. Returned records and unparseable dates are never
// overdue.
func (b BorrowRecord) OverdueAt(now time.Time, maxAge time.Duration) bool {
	if b.Returned {
		return false
	}
	borrowed, err := time.Parse(DateLayout, b.BorrowDate)
	if err != nil {
		return false
	}
	return now.Sub(borrowed) > maxAge
}
