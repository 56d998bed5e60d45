package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vidora-app/vidora/pkg/httpx"
)

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteData(rec, http.StatusCreated, map[string]string{"id": "abc"}, "created")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Equal(t, http.StatusCreated, env.StatusCode)
	require.Equal(t, "created", env.Message)
}

func TestWriteErrorAlwaysCarriesErrorsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusBadRequest, "invalid request")

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Equal(t, "null", string(raw["data"]))
	require.Equal(t, "[]", string(raw["errors"]))
	require.Equal(t, "false", string(raw["success"]))
}

func TestTokenFromRequest(t *testing.T) {
	t.Run("cookie wins over header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: httpx.CookieAccessToken, Value: "from-cookie"})
		req.Header.Set("Authorization", "Bearer from-header")

		require.Equal(t, "from-cookie", httpx.TokenFromRequest(req, httpx.CookieAccessToken))
	})

	t.Run("bearer fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer from-header")

		require.Equal(t, "from-header", httpx.TokenFromRequest(req, httpx.CookieAccessToken))
	})

	t.Run("empty when neither present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		require.Empty(t, httpx.TokenFromRequest(req, httpx.CookieAccessToken))
	})
}

func TestTokenCookies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	httpx.SetTokenCookie(rec, req, httpx.CookieRefreshToken, "tok", time.Hour)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	require.True(t, c.HttpOnly)
	require.False(t, c.Secure) // plain HTTP request
	require.Equal(t, "/", c.Path)
	require.Equal(t, 3600, c.MaxAge)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)

	rec = httptest.NewRecorder()
	httpx.ClearTokenCookie(rec, req, httpx.CookieRefreshToken)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Negative(t, cleared[0].MaxAge)
	require.Empty(t, cleared[0].Value)
}
