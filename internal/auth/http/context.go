package http

import (
	"context"

	"github.com/vidora-app/vidora/internal/auth/domain"
)

type ctxKey struct{}

// contextWithIdentity attaches the resolved, sanitized identity. The gate
// is the only writer; handlers only read.
func contextWithIdentity(ctx context.Context, u domain.PublicUser) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// IdentityFromContext returns the identity the auth gate resolved for this
// request. ok is false on routes that never passed through the gate.
func IdentityFromContext(ctx context.Context) (domain.PublicUser, bool) {
	u, ok := ctx.Value(ctxKey{}).(domain.PublicUser)
	return u, ok
}
