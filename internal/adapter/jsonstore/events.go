package jsonstore

import (
	"context"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
)

// EventRepo persists the append-only events collection.
type EventRepo struct {
	col *Collection[domain.Event]
}

func NewEventRepo(s *Store) *EventRepo {
	return &EventRepo{col: NewCollection[domain.Event](s, "events")}
}

// List returns all events in insertion order.
func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	return r.col.All(ctx)
}

// Append adds an event and returns the full collection after the write.
func (r *EventRepo) Append(ctx context.Context, event domain.Event) ([]domain.Event, error) {
	return r.col.Update(ctx, func(events []domain.Event) ([]domain.Event, error) {
		return append(events, event), nil
	})
}
