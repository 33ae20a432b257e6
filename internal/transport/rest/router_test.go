package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favour-22/alx-polly/internal/config"
	"github.com/favour-22/alx-polly/internal/domain"
	"github.com/favour-22/alx-polly/internal/transport/ws"
)

func newTestRouter(t *testing.T, cfg *config.Config, authSvc domain.AuthService, pollSvc domain.PollService) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := ws.NewHub(context.Background(), log)

	return NewRouter(cfg, &RouterDeps{
		Ws:   ws.NewWebHandler(hub, log, cfg.AuthJWTSecret, cfg.AllowedOrigins),
		Auth: NewAuthHandler(authSvc, cfg),
		Poll: NewPollHandler(pollSvc),
	})
}

func signedToken(t *testing.T, secret string, userID uuid.UUID) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// Walks the documented cookie flow end to end: login must issue both
// the session and double-submit cookies, and those cookies alone must
// make the mutating routes reachable.
func TestLogoutReachableWithLoginCookies(t *testing.T) {
	const secret = "router-secret"

	cfg := &config.Config{AuthJWTSecret: secret, CookieExpiry: time.Hour}
	authSvc := &stubAuthService{
		loginSession: &domain.Session{
			AccessToken: signedToken(t, secret, uuid.New()),
			ExpiresIn:   3600,
		},
		loginResult:  domain.OkResult(),
		logoutResult: domain.OkResult(),
	}
	router := newTestRouter(t, cfg, authSvc, &stubPollService{})

	loginRes := httptest.NewRecorder()
	router.ServeHTTP(loginRes, httptest.NewRequest(
		http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.com","password":"x"}`),
	))
	require.Equal(t, http.StatusOK, loginRes.Code)

	var sessionCookie, csrfCookie *http.Cookie
	for _, c := range loginRes.Result().Cookies() {
		switch c.Name {
		case "access_token":
			sessionCookie = c
		case "csrf_token":
			csrfCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	require.NotNil(t, csrfCookie)

	logoutReq := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	logoutReq.AddCookie(sessionCookie)
	logoutReq.AddCookie(csrfCookie)
	logoutReq.Header.Set("X-CSRF-Token", csrfCookie.Value)

	logoutRes := httptest.NewRecorder()
	router.ServeHTTP(logoutRes, logoutReq)

	assert.Equal(t, http.StatusOK, logoutRes.Code)
}

func TestLogoutRejectsMissingCSRFHeader(t *testing.T) {
	const secret = "router-secret"

	cfg := &config.Config{AuthJWTSecret: secret, CookieExpiry: time.Hour}
	router := newTestRouter(t, cfg, &stubAuthService{logoutResult: domain.OkResult()}, &stubPollService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signedToken(t, secret, uuid.New())})
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "abc"})

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusForbidden, res.Code)
}
