package auth

import (
	"context"

	"github.com/safar/teebay/internal/apperr"
)

type ctxKey struct{}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the authenticated caller, if any.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKey{}).(int64)
	return id, ok && id > 0
}

func RequireUser(ctx context.Context) (int64, error) {
	id, ok := UserID(ctx)
	if !ok {
		return 0, apperr.Authentication("")
	}
	return id, nil
}
