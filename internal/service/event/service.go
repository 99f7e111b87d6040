package event

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/pkg/ctxutil"
)

// eventRepo defines the repository interface needed by the event service.
type eventRepo interface {
	List(ctx context.Context) ([]domain.Event, error)
	Append(ctx context.Context, event domain.Event) ([]domain.Event, error)
}

// Service implements the append-only event schedule.
type Service struct {
	log    *slog.Logger
	events eventRepo
}

// NewService creates a new event service instance.
func NewService(logger *slog.Logger, events eventRepo) *Service {
	return &Service{
		log:    logger.With("service", "event"),
		events: events,
	}
}

// AddInput holds parameters for the add-event operation.
type AddInput struct {
	Date        string
	Description string
}

// Validate validates the add-event input.
func (i AddInput) Validate() error {
	var errs []domain.FieldError

	if i.Date == "" {
		errs = append(errs, domain.FieldError{Field: "event_date", Message: "required"})
	}
	if i.Description == "" {
		errs = append(errs, domain.FieldError{Field: "event_description", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Add appends an event attributed to the session user and returns the
// full collection after the write.
func (s *Service) Add(ctx context.Context, input AddInput) ([]domain.Event, error) {
	actor, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	events, err := s.events.Append(ctx, domain.Event{
		ID:          uuid.New(),
		Date:        input.Date,
		Description: input.Description,
		AddedBy:     actor.Username,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "event added",
		slog.String("date", input.Date),
		slog.String("added_by", actor.Username),
	)

	return events, nil
}

// List returns all events in insertion order.
func (s *Service) List(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx)
}
