package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response body for every endpoint. StatusCode
// mirrors the HTTP status so clients reading only the body stay consistent
// with clients reading only the transport.
type Envelope struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It sets Content-Type and no-store caching headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a success envelope.
func WriteData(w http.ResponseWriter, code int, data any, message string) {
	WriteJSON(w, code, Envelope{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// WriteError writes a failure envelope. Data is always null and Errors is
// always present, even when empty.
func WriteError(w http.ResponseWriter, code int, message string, errs ...string) {
	if errs == nil {
		errs = []string{}
	}
	WriteJSON(w, code, Envelope{
		StatusCode: code,
		Data:       nil,
		Message:    message,
		Success:    false,
		Errors:     errs,
	})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
