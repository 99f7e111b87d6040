package domain

import "github.com/google/uuid"

// OrderRecord is a purchase order. Price is the order total
// (unit price × quantity), not the unit price; all consumers read it as
// a total.
type OrderRecord struct {
	ID        uuid.UUID `json:"id"`
	Item      string    `json:"item"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	OrderedBy string    `json:"ordered_by"`
	OrderDate string    `json:"order_date"`
}

// TotalRevenue sums the totals of all orders.
func TotalRevenue(orders []OrderRecord) float64 {
	var total float64
	for _, o := range orders {
		total += o.Price
	}
	return total
}
