package jsonstore

import (
	"context"
	"fmt"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
)

// UserRepo persists application accounts.
type UserRepo struct {
	col *Collection[domain.User]
}

func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{col: NewCollection[domain.User](s, "users")}
}

// List returns all users.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	return r.col.All(ctx)
}

// Append adds a user. Returns domain.ErrAlreadyExists if the username is
// taken.
func (r *UserRepo) Append(ctx context.Context, user domain.User) error {
	_, err := r.col.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		for _, u := range users {
			if u.Username == user.Username {
				return nil, fmt.Errorf("user %s: %w", user.Username, domain.ErrAlreadyExists)
			}
		}
		return append(users, user), nil
	})
	return err
}
