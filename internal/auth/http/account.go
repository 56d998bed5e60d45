package http

import (
	"encoding/json"
	"net/http"

	"github.com/vidora-app/vidora/internal/auth/media"
	"github.com/vidora-app/vidora/internal/auth/service"
	"github.com/vidora-app/vidora/pkg/httpx"
)

type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the authenticated caller's sanitized identity.
//
//	@Summary		Get current user
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"Sanitized identity"
//	@Failure		401	{object}	httpx.Envelope	"Missing or invalid access token"
//	@Router			/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	httpx.WriteData(w, http.StatusOK, identity, "current user fetched successfully")
}

type UpdateAccountHandler struct {
	UserService *service.UserService
}

type updateAccountRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

// ServeHTTP updates the caller's full name and/or email. Omitted fields
// keep their current value.
//
//	@Summary		Update account details
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"Updated identity"
//	@Failure		400	{object}	httpx.Envelope	"Malformed body or no fields to update"
//	@Failure		409	{object}	httpx.Envelope	"Email already in use"
//	@Router			/me [patch].
func (h *UpdateAccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request", "malformed JSON body")
		return
	}

	user, err := h.UserService.UpdateAccountDetails(r.Context(), userID, req.FullName, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, user, "account details updated successfully")
}

type UpdateAvatarHandler struct {
	UserService *service.UserService
	Media       media.Store
}

// ServeHTTP replaces the caller's avatar image.
//
//	@Summary		Update avatar
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"Updated identity"
//	@Failure		400	{object}	httpx.Envelope	"Missing file or failed upload"
//	@Router			/me/avatar [patch].
func (h *UpdateAvatarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	url, ok := receiveImage(w, r, h.Media, "avatar", "avatars")
	if !ok {
		return
	}

	user, err := h.UserService.UpdateAvatar(r.Context(), userID, url)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, user, "avatar updated successfully")
}

type UpdateCoverImageHandler struct {
	UserService *service.UserService
	Media       media.Store
}

// ServeHTTP replaces the caller's cover image.
//
//	@Summary		Update cover image
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"Updated identity"
//	@Failure		400	{object}	httpx.Envelope	"Missing file or failed upload"
//	@Router			/me/cover-image [patch].
func (h *UpdateCoverImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	url, ok := receiveImage(w, r, h.Media, "coverImage", "covers")
	if !ok {
		return
	}

	user, err := h.UserService.UpdateCoverImage(r.Context(), userID, url)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, user, "cover image updated successfully")
}

// receiveImage parses the multipart request, pushes the named file part to
// the object store and returns its public URL. Writes the error response
// itself when the part is missing or the upload fails.
func receiveImage(w http.ResponseWriter, r *http.Request, store media.Store, field, kind string) (string, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request", "expected multipart form data")
		return "", false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request", field+" file is required")
		return "", false
	}
	defer file.Close()

	url, err := uploadMedia(r, store, kind, header, file)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request", "file upload failed")
		return "", false
	}
	return url, true
}
