package auth

import "context"

// Identity is the authenticated caller, as carried in request context.
type Identity struct {
	UserID string
	Role   string
}

type ctxKey struct{}

var identityKey ctxKey

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
