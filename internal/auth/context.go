package auth

import (
	"context"

	"github.com/2beens/ironlog/pkg"
)

type userIDKey struct{}

// ContextWithUserID stores the authenticated user id in ctx.
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the authenticated user id stored by the auth middleware.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int)
	return userID, ok && userID > 0
}

// RequireUserID is UserIDFromContext for handlers behind the auth middleware.
func RequireUserID(ctx context.Context) (int, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return 0, pkg.ErrUnauthorized
	}
	return userID, nil
}
