package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/auth"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/utils"
)

const (
	SessionCookie = "session"
	CSRFCookie    = "csrf_token"
	CSRFHeader    = "X-CSRF-Token"
)

// TokenParser verifies a session token.
type TokenParser interface {
	Parse(token string) (auth.Identity, error)
}

// Session requires a valid session token and puts the caller's identity in
// the request context. The token is read from the session cookie or a bearer
// Authorization header.
func Session(logger *slog.Logger, tokens TokenParser) func(next http.Handler) http.Handler {
	logger = logger.With(slog.String("middleware", "session"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := sessionToken(r)
			if raw == "" {
				httpRejected.WithLabelValues("unauthorized").Inc()
				utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			id, err := tokens.Parse(raw)
			if err != nil {
				logger.DebugContext(r.Context(), "session token rejected", slog.Any("error", err))
				httpRejected.WithLabelValues("invalid_token").Inc()
				utils.WriteError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireAdmin lets only admin sessions through. It must run after Session.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !id.IsAdmin() {
			httpRejected.WithLabelValues("forbidden").Inc()
			utils.WriteError(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CSRF enforces the double-submit check on state-changing requests: the
// header, and the cookie when sent, must equal the value bound into the
// session token. It must run after Session.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if safeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		header := r.Header.Get(CSRFHeader)
		valid := header != "" && equal(header, id.CSRF)
		if c, err := r.Cookie(CSRFCookie); valid && err == nil {
			valid = equal(c.Value, id.CSRF)
		}
		if !valid {
			httpRejected.WithLabelValues("csrf").Inc()
			utils.WriteError(w, "invalid csrf token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Origin rejects state-changing browser requests whose Origin header is not
// in the allow-list. Requests without an Origin header are not from a
// browser form and pass through.
func Origin(allowed []string) func(next http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(strings.TrimSpace(o), "/")] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if safeMethod(r.Method) || origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := set[strings.TrimRight(origin, "/")]; !ok {
				httpRejected.WithLabelValues("origin").Inc()
				utils.WriteError(w, "origin not allowed", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
