package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/auth"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func protectedRouter(tokens *auth.Tokens) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Session(discardLogger(), tokens))
	r.Use(middleware.CSRF)
	handler := func(w http.ResponseWriter, r *http.Request) {
		id, _ := auth.IdentityFromContext(r.Context())
		io.WriteString(w, id.UserID)
	}
	r.Get("/orders", handler)
	r.Post("/orders", handler)
	r.With(middleware.RequireAdmin).Put("/orders", handler)
	return r
}

func TestSessionAndCSRF(t *testing.T) {
	tokens := auth.NewTokens(secret, time.Hour)
	customer, csrf, err := tokens.Issue("user-1", auth.RoleCustomer)
	require.NoError(t, err)
	admin, adminCSRF, err := tokens.Issue("admin-1", auth.RoleAdmin)
	require.NoError(t, err)

	testCases := []struct {
		name       string
		method     string
		token      string
		bearer     bool
		header     string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{name: "no session", method: http.MethodGet, wantStatus: http.StatusUnauthorized, wantBody: `"unauthorized"`},
		{name: "bad session", method: http.MethodGet, token: "garbage", wantStatus: http.StatusUnauthorized, wantBody: `"invalid token"`},
		{name: "read needs no csrf", method: http.MethodGet, token: customer, wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "bearer token", method: http.MethodGet, token: customer, bearer: true, wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "post without csrf header", method: http.MethodPost, token: customer, wantStatus: http.StatusForbidden},
		{name: "post with wrong csrf header", method: http.MethodPost, token: customer, header: "nope", wantStatus: http.StatusForbidden},
		{name: "post with another session's csrf", method: http.MethodPost, token: customer, header: adminCSRF, wantStatus: http.StatusForbidden},
		{name: "post with mismatched cookie", method: http.MethodPost, token: customer, header: csrf, cookie: "stale", wantStatus: http.StatusForbidden},
		{name: "post with csrf", method: http.MethodPost, token: customer, header: csrf, cookie: csrf, wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "admin route as customer", method: http.MethodPut, token: customer, header: csrf, wantStatus: http.StatusForbidden, wantBody: `"forbidden"`},
		{name: "admin route as admin", method: http.MethodPut, token: admin, header: adminCSRF, wantStatus: http.StatusOK, wantBody: "admin-1"},
	}

	router := protectedRouter(tokens)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/orders", nil)
			if tc.token != "" {
				if tc.bearer {
					req.Header.Set("Authorization", "Bearer "+tc.token)
				} else {
					req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: tc.token})
				}
			}
			if tc.header != "" {
				req.Header.Set(middleware.CSRFHeader, tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middleware.CSRFCookie, Value: tc.cookie})
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}

func TestOrigin(t *testing.T) {
	h := middleware.Origin([]string{"https://shop.example.com/"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	testCases := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
	}{
		{name: "allowed", method: http.MethodPost, origin: "https://shop.example.com", wantStatus: http.StatusNoContent},
		{name: "foreign", method: http.MethodPost, origin: "https://evil.example.com", wantStatus: http.StatusForbidden},
		{name: "no origin", method: http.MethodPost, wantStatus: http.StatusNoContent},
		{name: "foreign read", method: http.MethodGet, origin: "https://evil.example.com", wantStatus: http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := middleware.NewRateLimiter("test", 2, time.Minute, func() time.Time { return now })

	ok, _ := l.Allow("1.2.3.4")
	assert.True(t, ok)
	ok, _ = l.Allow("1.2.3.4")
	assert.True(t, ok)

	ok, retry := l.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)

	ok, _ = l.Allow("5.6.7.8")
	assert.True(t, ok, "keys are counted separately")

	now = now.Add(time.Minute)
	ok, _ = l.Allow("1.2.3.4")
	assert.True(t, ok, "window resets")
}

func TestRateLimit(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := middleware.NewRateLimiter("orders", 1, time.Hour, func() time.Time { return now })
	h := middleware.RateLimit(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, do().Code)

	now = now.Add(30 * time.Minute)
	rr := do()
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1800", rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), `"too many requests"`)
}

func TestLogger(t *testing.T) {
	h := middleware.Logger(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		io.WriteString(w, "short and stout")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "short and stout", rr.Body.String())
}
