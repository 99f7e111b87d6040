package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/pkg/ctxutil"
)

// orderRepo defines the repository interface needed by the order service.
// UpdateWithItems must persist the inventory and order collections
// together.
type orderRepo interface {
	Orders(ctx context.Context) ([]domain.OrderRecord, error)
	UpdateWithItems(ctx context.Context, fn func(items []domain.InventoryItem, orders []domain.OrderRecord) ([]domain.InventoryItem, []domain.OrderRecord, error)) error
}

// Service implements purchase-order recording.
type Service struct {
	log    *slog.Logger
	orders orderRepo
	now    func() time.Time
}

// NewService creates a new order service instance.
func NewService(logger *slog.Logger, orders orderRepo) *Service {
	return &Service{
		log:    logger.With("service", "order"),
		orders: orders,
		now:    time.Now,
	}
}

// PlaceInput holds parameters for the place-order operation. UnitPrice is
// per unit; the persisted record carries the total.
type PlaceInput struct {
	Item      string
	Quantity  int
	UnitPrice float64
}

// Validate validates the place-order input.
func (i PlaceInput) Validate() error {
	var errs []domain.FieldError

	if i.Item == "" {
		errs = append(errs, domain.FieldError{Field: "item_name", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be > 0"})
	}
	if i.UnitPrice < 0 {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Place records an order for the session user: stock drops by the ordered
// quantity and an order record appends with price = unit price × quantity
// (the total), both persisted as one atomic pair. Fails when the item is
// unknown or stock is short.
func (s *Service) Place(ctx context.Context, input PlaceInput) error {
	actor, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	err := s.orders.UpdateWithItems(ctx, func(items []domain.InventoryItem, orders []domain.OrderRecord) ([]domain.InventoryItem, []domain.OrderRecord, error) {
		idx := -1
		for i, item := range items {
			if item.Name == input.Item {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, nil, fmt.Errorf("item %s: %w", input.Item, domain.ErrNotFound)
		}
		if items[idx].Quantity < input.Quantity {
			return nil, nil, domain.NewValidationError("quantity",
				fmt.Sprintf("insufficient stock for %s, available: %d", input.Item, items[idx].Quantity))
		}

		items[idx].Quantity -= input.Quantity
		orders = append(orders, domain.OrderRecord{
			ID:        uuid.New(),
			Item:      input.Item,
			Quantity:  input.Quantity,
			Price:     input.UnitPrice * float64(input.Quantity),
			OrderedBy: actor.Username,
			OrderDate: s.now().Format(domain.DateLayout),
		})
		return items, orders, nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "order placed",
		slog.String("item", input.Item),
		slog.Int("quantity", input.Quantity),
		slog.String("ordered_by", actor.Username),
	)

	return nil
}

// List returns all orders in insertion order.
func (s *Service) List(ctx context.Context) ([]domain.OrderRecord, error) {
	return s.orders.Orders(ctx)
}

// TotalRevenue returns the running sum of all order totals, recomputed
// per view.
func (s *Service) TotalRevenue(ctx context.Context) (float64, error) {
	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return 0, err
	}
	return domain.TotalRevenue(orders), nil
}
