package http

import (
	"net/http"

	"github.com/vidora-app/vidora/internal/auth/service"
	"github.com/vidora-app/vidora/pkg/httpx"
	"github.com/vidora-app/vidora/pkg/slogx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP closes the caller's refresh session.
//
//	@Summary		Log out
//	@Description	Clears the stored refresh session slot and expires both token cookies. Outstanding access tokens remain valid until they expire.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"Session closed"
//	@Failure		401	{object}	httpx.Envelope	"Missing or invalid access token"
//	@Router			/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.AuthService.Logout(r.Context(), userID); err != nil {
		slogx.FromContext(r.Context()).Error("failed to clear refresh session", "user_id", userID, "err", err)
		writeServiceError(w, r, err)
		return
	}

	httpx.ClearTokenCookie(w, r, httpx.CookieAccessToken)
	httpx.ClearTokenCookie(w, r, httpx.CookieRefreshToken)

	httpx.WriteData(w, http.StatusOK, struct{}{}, "user logged out successfully")
}
