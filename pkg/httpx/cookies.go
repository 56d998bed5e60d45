package httpx

import (
	"net/http"
	"strings"
	"time"
)

// Cookie names for the two token classes.
const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)

// SetTokenCookie writes an httpOnly token cookie. Secure mirrors the
// transport the request arrived on, so local plain-HTTP development keeps
// working while anything behind TLS gets the full protection.
func SetTokenCookie(w http.ResponseWriter, r *http.Request, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookie expires a previously set token cookie.
func ClearTokenCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest extracts a candidate token: the named cookie wins, then
// an Authorization bearer header. Returns "" when neither carries one.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	return ""
}
