package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storetrack-backend/internal/config"
	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/pkg/ctxutil"
)

// inventoryRepo defines the repository interface needed by the inventory
// service. UpdateWithBorrows must persist the item and borrow collections
// together.
type inventoryRepo interface {
	Items(ctx context.Context) ([]domain.InventoryItem, error)
	Borrows(ctx context.Context) ([]domain.BorrowRecord, error)
	UpdateItems(ctx context.Context, fn func(items []domain.InventoryItem) ([]domain.InventoryItem, error)) ([]domain.InventoryItem, error)
	UpdateWithBorrows(ctx context.Context, fn func(items []domain.InventoryItem, borrows []domain.BorrowRecord) ([]domain.InventoryItem, []domain.BorrowRecord, error)) error
}

// Service implements stock tracking and the borrow/return workflow.
type Service struct {
	log           *slog.Logger
	repo          inventoryRepo
	lowStock      int
	borrowOverdue time.Duration
	now           func() time.Time
}

// NewService creates a new inventory service instance.
func NewService(logger *slog.Logger, repo inventoryRepo, cfg config.InventoryConfig) *Service {
	return &Service{
		log:           logger.With("service", "inventory"),
		repo:          repo,
		lowStock:      cfg.LowStockThreshold,
		borrowOverdue: cfg.BorrowOverdue,
		now:           time.Now,
	}
}

// AddItemInput holds parameters for the add-item operation.
type AddItemInput struct {
	Name     string
	Quantity int
}

// Validate validates the add-item input.
func (i AddItemInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "item_name", Message: "required"})
	}
	if i.Quantity < 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddItem appends a stocked item. Names are unique across the collection
// (exact, case-sensitive match); duplicates return ErrAlreadyExists.
func (s *Service) AddItem(ctx context.Context, input AddItemInput) ([]domain.InventoryItem, error) {
	actor, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	items, err := s.repo.UpdateItems(ctx, func(items []domain.InventoryItem) ([]domain.InventoryItem, error) {
		for _, item := range items {
			if item.Name == input.Name {
				return nil, fmt.Errorf("item %s: %w", input.Name, domain.ErrAlreadyExists)
			}
		}
		return append(items, domain.InventoryItem{
			ID:        uuid.New(),
			Name:      input.Name,
			Quantity:  input.Quantity,
			AddedBy:   actor.Username,
			AddedDate: s.now().Format(domain.DateLayout),
		}), nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item added",
		slog.String("item", input.Name),
		slog.Int("quantity", input.Quantity),
		slog.String("added_by", actor.Username),
	)

	return items, nil
}

// BorrowInput holds parameters for the borrow operation.
type BorrowInput struct {
	Item     string
	Quantity int
}

// Validate validates the borrow input.
func (i BorrowInput) Validate() error {
	var errs []domain.FieldError

	if i.Item == "" {
		errs = append(errs, domain.FieldError{Field: "item_name", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be > 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Borrow lends stock to the session user: the item's quantity drops and
// an open borrow record appends, both persisted as one atomic pair.
// Fails when the item is unknown, stock is short, or the user already
// holds an unreturned borrow of the same item. Quantity never goes
// negative: of two concurrent borrows of the last unit, exactly one
// succeeds.
func (s *Service) Borrow(ctx context.Context, input BorrowInput) error {
	actor, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	err := s.repo.UpdateWithBorrows(ctx, func(items []domain.InventoryItem, borrows []domain.BorrowRecord) ([]domain.InventoryItem, []domain.BorrowRecord, error) {
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

		for _, b := range borrows {
			if b.Item == input.Item && b.BorrowedBy == actor.Username && !b.Returned {
				return nil, nil, domain.NewValidationError("item_name",
					fmt.Sprintf("you have already borrowed %s", input.Item))
			}
		}

		items[idx].Quantity -= input.Quantity
		borrows = append(borrows, domain.BorrowRecord{
			ID:         uuid.New(),
			Item:       input.Item,
			Quantity:   input.Quantity,
			BorrowedBy: actor.Username,
			BorrowDate: s.now().Format(domain.DateLayout),
			Returned:   false,
		})
		return items, borrows, nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "item borrowed",
		slog.String("item", input.Item),
		slog.Int("quantity", input.Quantity),
		slog.String("borrowed_by", actor.Username),
	)

	return nil
}

// Return closes a borrow record: stock is restored to the item matched by
// name and the record is stamped with today's return date. Only the
// borrower or a manager may return. If the item was removed from
// inventory since the borrow, the quantity is not restored; the record
// still closes.
func (s *Service) Return(ctx context.Context, borrowID uuid.UUID) error {
	actor, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if borrowID == uuid.Nil {
		return domain.NewValidationError("borrow_id", "required")
	}

	err := s.repo.UpdateWithBorrows(ctx, func(items []domain.InventoryItem, borrows []domain.BorrowRecord) ([]domain.InventoryItem, []domain.BorrowRecord, error) {
		idx := -1
		for i, b := range borrows {
			if b.ID == borrowID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, nil, fmt.Errorf("borrow record %s: %w", borrowID, domain.ErrNotFound)
		}

		rec := borrows[idx]
		if rec.Returned {
			return nil, nil, domain.NewValidationError("borrow_id", "item already returned")
		}
		if rec.BorrowedBy != actor.Username && !actor.IsManager() {
			return nil, nil, domain.ErrForbidden
		}

		for i := range items {
			if items[i].Name == rec.Item {
				items[i].Quantity += rec.Quantity
				break
			}
		}

		returnDate := s.now().Format(domain.DateLayout)
		borrows[idx].Returned = true
		borrows[idx].ReturnDate = &returnDate
		return items, borrows, nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "item returned",
		slog.String("borrow_id", borrowID.String()),
		slog.String("by", actor.Username),
	)

	return nil
}

// Items returns all stocked items.
func (s *Service) Items(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.repo.Items(ctx)
}

// Borrows returns the full borrow history.
func (s *Service) Borrows(ctx context.Context) ([]domain.BorrowRecord, error) {
	return s.repo.Borrows(ctx)
}

// ItemNames returns the distinct item names in the inventory, sorted.
func (s *Service) ItemNames(ctx context.Context) ([]string, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	sort.Strings(names)
	return names, nil
}

// OverdueNotices returns a notice for every unreturned borrow older than
// the configured age. Read-only; recomputed on every inventory view.
func (s *Service) OverdueNotices(ctx context.Context) ([]string, error) {
	borrows, err := s.repo.Borrows(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var notices []string
	for _, b := range borrows {
		if b.OverdueAt(now, s.borrowOverdue) {
			notices = append(notices, fmt.Sprintf("Item %s borrowed by %s is overdue!", b.Item, b.BorrowedBy))
		}
	}
	return notices, nil
}

// LowStockThreshold returns the configured low-stock cutoff for views.
func (s *Service) LowStockThreshold() int {
	return s.lowStock
}
