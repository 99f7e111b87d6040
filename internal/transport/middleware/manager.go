package middleware

import (
	"context"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/pkg/ctxutil"
)

// RequireManager returns domain.ErrForbidden unless the context identity
// carries the manager role. Use inside handlers, not as HTTP middleware.
func RequireManager(ctx context.Context) error {
	id, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !id.IsManager() {
		return domain.ErrForbidden
	}
	return nil
}
