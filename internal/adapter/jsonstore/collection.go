package jsonstore

import (
	"context"
)

// Collection is a typed handle on one persisted JSON document.
type Collection[T any] struct {
	store *Store
	name  string
}

// NewCollection creates a handle for the named collection on the store.
func NewCollection[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

// Name returns the collection name (file basename without extension).
func (c *Collection[T]) Name() string { return c.name }

// All loads the full persisted state. Any read or parse failure yields an
// empty slice; the only possible error is context cancellation.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var items []T
	c.store.read(c.name, &items)
	return items, nil
}

// Update applies fn to the current state and persists the result, all
// under the collection's owner mutex and file lock. If fn returns an
// error nothing is written and the error is passed through unchanged.
// Returns the persisted state.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) ([]T, error) {
	owner := c.store.owner(c.name)
	owner.Lock()
	defer owner.Unlock()

	release, err := c.store.lock(ctx, c.name)
	if err != nil {
		return nil, err
	}
	defer release()

	var items []T
	c.store.read(c.name, &items)

	out, err := fn(items)
	if err != nil {
		return nil, err
	}

	if err := c.store.write(c.name, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePair applies fn to two collections and persists both before
// returning, so cross-collection invariants (stock vs. borrow history,
// pending vs. completed tasks) hold at every observable point. Owner
// mutexes and file locks are taken in lexicographic collection order,
// which makes concurrent pair updates deadlock-free. Both collections
// must live on the same store.
func UpdatePair[A, B any](
	ctx context.Context,
	ca *Collection[A],
	cb *Collection[B],
	fn func(a []A, b []B) ([]A, []B, error),
) error {
	s := ca.store

	first, second := ca.name, cb.name
	if first > second {
		first, second = second, first
	}

	for _, name := range []string{first, second} {
		owner := s.owner(name)
		owner.Lock()
		defer owner.Unlock()

		release, err := s.lock(ctx, name)
		if err != nil {
			return err
		}
		defer release()
	}

	var (
		as []A
		bs []B
	)
	s.read(ca.name, &as)
	s.read(cb.name, &bs)

	outA, outB, err := fn(as, bs)
	if err != nil {
		return err
	}

	if err := s.write(ca.name, outA); err != nil {
		return err
	}
	return s.write(cb.name, outB)
}
