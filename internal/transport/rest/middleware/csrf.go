package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/favour-22/alx-polly/internal/config"
)

// CSRF verifies the double-submit token on mutating requests: the
// csrf_token cookie must match the X-CSRF-Token header. The cookie
// itself is issued by the login handler, so this middleware never
// writes cookies.
func CSRF() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie("csrf_token")
			if err != nil {
				http.Error(w, "Missing CSRF cookie", http.StatusForbidden)
				return
			}

			tokenHeader := r.Header.Get("X-CSRF-Token")
			if tokenHeader == "" {
				http.Error(w, "Missing CSRF token header", http.StatusForbidden)
				return
			}

			if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(tokenHeader)) != 1 {
				http.Error(w, "Invalid CSRF token", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SetCSRFCookie issues a fresh double-submit token. The cookie is
// script-readable so the client can echo it back in X-CSRF-Token.
func SetCSRFCookie(w http.ResponseWriter, cfg *config.Config) {
	token := generateRandomString(32)

	http.SetCookie(w, &http.Cookie{
		Name:     "csrf_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(cfg.CookieExpiry),
		HttpOnly: false,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func generateRandomString(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
