package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/favour-22/alx-polly/internal/config"
	"github.com/favour-22/alx-polly/internal/domain"
	"github.com/favour-22/alx-polly/internal/transport/rest/middleware"
)

type AuthHandler struct {
	svc domain.AuthService
	cfg *config.Config
}

func NewAuthHandler(svc domain.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		cfg: cfg,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, res := h.svc.Login(r.Context(), req)
	if res.Error != nil {
		status := http.StatusUnauthorized
		switch *res.Error {
		case domain.MsgEmailPasswordRequired, domain.MsgInvalidEmail:
			status = http.StatusBadRequest
		}

		JSON(w, status, res)
		return
	}

	h.setSessionCookie(w, session)
	middleware.SetCSRFCookie(w, h.cfg)

	JSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res := h.svc.Register(r.Context(), req)
	if res.Error != nil {
		status := http.StatusUnprocessableEntity
		switch *res.Error {
		case domain.MsgPasswordMismatch, domain.MsgWeakPassword:
			status = http.StatusBadRequest
		}

		JSON(w, status, res)
		return
	}

	JSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	res := h.svc.Logout(r.Context(), middleware.AccessToken(r.Context()))

	// Cookies are cleared regardless of what the provider said; the
	// body carries any provider error verbatim.
	clearCookie(w, "access_token", true)
	clearCookie(w, "csrf_token", false)

	JSON(w, http.StatusOK, res)
}

func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	user := h.svc.CurrentUser(r.Context(), middleware.TokenFromRequest(r))

	JSONSuccess(w, http.StatusOK, APIResponse{Data: user})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session := h.svc.CurrentSession(r.Context(), middleware.TokenFromRequest(r))

	JSONSuccess(w, http.StatusOK, APIResponse{Data: session})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *domain.Session) {
	expires := time.Now().Add(h.cfg.CookieExpiry)
	if session.ExpiresIn > 0 {
		expires = time.Now().Add(time.Duration(session.ExpiresIn) * time.Second)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    session.AccessToken,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: httpOnly,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
