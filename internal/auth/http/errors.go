package http

import (
	"errors"
	"net/http"

	"github.com/vidora-app/vidora/internal/auth/service"
	"github.com/vidora-app/vidora/pkg/httpx"
	"github.com/vidora-app/vidora/pkg/slogx"
)

// writeServiceError is the single boundary translator from service
// failures to the HTTP envelope. Authentication failures share one generic
// message so the response never reveals which check rejected the caller.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, service.ErrDuplicate):
		httpx.WriteError(w, http.StatusConflict, "username or email already exists")
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefresh):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not found")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
