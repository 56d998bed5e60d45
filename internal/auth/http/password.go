package http

import (
	"encoding/json"
	"net/http"

	"github.com/vidora-app/vidora/internal/auth/service"
	"github.com/vidora-app/vidora/pkg/httpx"
)

type ChangePasswordHandler struct {
	AuthService *service.AuthService
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ServeHTTP re-keys the caller's credential.
//
//	@Summary		Change password
//	@Description	Verifies the old password before storing a hash of the new one. The refresh session is left untouched.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"Password updated"
//	@Failure		400	{object}	httpx.Envelope	"Missing or malformed fields"
//	@Failure		401	{object}	httpx.Envelope	"Missing access token, or old password did not match"
//	@Router			/change-password [post].
func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request", "malformed JSON body")
		return
	}

	if err := h.AuthService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, struct{}{}, "password changed successfully")
}
