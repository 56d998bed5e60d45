package http

import (
	"mime/multipart"
	"net/http"

	"github.com/vidora-app/vidora/internal/auth/media"
	"github.com/vidora-app/vidora/internal/auth/service"
	"github.com/vidora-app/vidora/pkg/httpx"
	"github.com/vidora-app/vidora/pkg/slogx"
)

// maxUploadBytes bounds the in-memory portion of a multipart parse; larger
// files spill to disk per net/http semantics.
const maxUploadBytes = 10 << 20

type RegisterHandler struct {
	AuthService *service.AuthService
	Media       media.Store
}

// ServeHTTP handles account registration.
//
//	@Summary		Register a new account
//	@Description	Creates an identity from multipart form fields (fullname, email, username, password) plus a required avatar file and an optional coverImage file.
//	@Tags			Auth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		201	{object}	httpx.Envelope	"Sanitized identity"
//	@Failure		400	{object}	httpx.Envelope	"Missing or malformed fields, failed avatar upload"
//	@Failure		409	{object}	httpx.Envelope	"Duplicate username or email"
//	@Router			/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request", "expected multipart form data")
		return
	}

	in := service.RegisterInput{
		FullName: r.FormValue("fullname"),
		Email:    r.FormValue("email"),
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	// The avatar upload must succeed before the identity exists; a missing
	// or failed upload aborts registration.
	avatarURL, err := h.uploadFormFile(r, "avatar", "avatars")
	if err != nil {
		log.Warn("avatar upload failed", "err", err)
		httpx.WriteError(w, http.StatusBadRequest, "invalid request", "avatar file is required")
		return
	}
	in.AvatarURL = avatarURL

	if coverURL, err := h.uploadFormFile(r, "coverImage", "covers"); err == nil {
		in.CoverImageURL = coverURL
	}

	user, err := h.AuthService.Register(ctx, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusCreated, user, "user registered successfully")
}

// uploadFormFile pushes a named multipart file to the object store and
// returns its public URL. Errors when the part is absent.
func (h *RegisterHandler) uploadFormFile(r *http.Request, field, kind string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return uploadMedia(r, h.Media, kind, header, file)
}

func uploadMedia(r *http.Request, store media.Store, kind string, header *multipart.FileHeader, file multipart.File) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := media.ObjectKey(kind, header.Filename)
	return store.Upload(r.Context(), key, contentType, file)
}
