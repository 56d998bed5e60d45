package http

import (
	"encoding/json"
	"net/http"

	"github.com/vidora-app/vidora/internal/auth/domain"
	"github.com/vidora-app/vidora/internal/auth/service"
	"github.com/vidora-app/vidora/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User         domain.PublicUser `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
}

// ServeHTTP handles credential login.
//
//	@Summary		Log in with username or email
//	@Description	Verifies credentials, opens a refresh session and returns the token pair in the body and as httpOnly cookies.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"Identity plus token pair"
//	@Failure		400	{object}	httpx.Envelope	"Missing identifier or password"
//	@Failure		401	{object}	httpx.Envelope	"Unknown account or wrong password"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request", "malformed JSON body")
		return
	}

	user, pair, err := h.AuthService.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.SetTokenCookie(w, r, httpx.CookieAccessToken, pair.AccessToken, h.AuthService.Tokens.AccessTTL)
	httpx.SetTokenCookie(w, r, httpx.CookieRefreshToken, pair.RefreshToken, h.AuthService.Tokens.RefreshTTL)

	httpx.WriteData(w, http.StatusOK, loginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "user logged in successfully")
}
