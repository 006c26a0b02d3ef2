package identity

import (
	"context"

	"fabhomes/internal/models"
)

type contextKey string

const callerKey contextKey = "caller"

// WithCaller stores the resolved local user on the context.
func WithCaller(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, callerKey, &u)
}

// CallerFromContext returns the resolved user or nil for anonymous requests.
func CallerFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(callerKey).(*models.User)
	return u
}
