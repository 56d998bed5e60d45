package http

import (
	"encoding/json"
	"net/http"

	"github.com/vidora-app/vidora/internal/auth/service"
	"github.com/vidora-app/vidora/pkg/httpx"
)

type RefreshHandler struct {
	AuthService *service.AuthService
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ServeHTTP rotates a refresh session.
//
//	@Summary		Rotate the refresh session
//	@Description	Accepts the refresh token from the refreshToken cookie or the JSON body, verifies it against the stored session slot and issues a replacement pair. Any failure, including presentation of a superseded token, yields the same 401.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"New token pair"
//	@Failure		401	{object}	httpx.Envelope	"Missing, invalid, expired or superseded token"
//	@Router			/refresh-token [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	incoming := ""
	if c, err := r.Cookie(httpx.CookieRefreshToken); err == nil && c.Value != "" {
		incoming = c.Value
	} else {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			incoming = req.RefreshToken
		}
	}
	if incoming == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), incoming)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.SetTokenCookie(w, r, httpx.CookieAccessToken, pair.AccessToken, h.AuthService.Tokens.AccessTTL)
	httpx.SetTokenCookie(w, r, httpx.CookieRefreshToken, pair.RefreshToken, h.AuthService.Tokens.RefreshTTL)

	httpx.WriteData(w, http.StatusOK, pair, "access token refreshed")
}
