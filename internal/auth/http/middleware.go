package http

import (
	"net/http"

	"github.com/vidora-app/vidora/internal/auth/service"
	"github.com/vidora-app/vidora/pkg/httpx"
	"github.com/vidora-app/vidora/pkg/jwtx"
	"github.com/vidora-app/vidora/pkg/slogx"
)

// AuthGate verifies the access token and resolves it to an identity before
// any protected handler runs. Token extraction prefers the accessToken
// cookie, falling back to an Authorization bearer header. The canonical
// record is re-fetched so a deleted account or updated profile is caught
// even while old tokens are still in flight. Stateless, safe to run
// concurrently for independent requests.
func AuthGate(tokens *jwtx.Issuer, users *service.UserService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := httpx.TokenFromRequest(r, httpx.CookieAccessToken)
			if raw == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := tokens.VerifyAccess(raw)
			if err != nil {
				log.Warn("access token rejected", "err", err)
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			user, err := users.GetUserByID(ctx, claims.Subject)
			if err != nil {
				// Unknown identity reads the same as a bad token.
				log.Warn("token subject not resolvable", "user_id", claims.Subject)
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx = contextWithIdentity(ctx, user.Public())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireIdentity reads the gate's context value, failing closed if a
// protected handler was somehow wired without the gate.
func requireIdentity(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok || identity.ID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return identity.ID, true
}
