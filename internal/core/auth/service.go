// Package auth implements the authentication facade: it validates
// caller input, delegates credential checks to the hosted auth
// provider and flattens provider errors into a fixed, user-safe
// vocabulary. No credentials or sessions are stored here.
package auth

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/favour-22/alx-polly/internal/domain"
	"github.com/favour-22/alx-polly/internal/logger"
	"github.com/favour-22/alx-polly/pkg"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

type service struct {
	provider  domain.AuthProvider
	jwtSecret string
	log       logger.Logger
}

func NewService(provider domain.AuthProvider, jwtSecret string, log logger.Logger) domain.AuthService {
	return &service{
		provider:  provider,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, domain.ActionResult) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrResult(domain.MsgEmailPasswordRequired)
	}

	if !emailPattern.MatchString(req.Email) {
		return nil, domain.ErrResult(domain.MsgInvalidEmail)
	}

	session, err := s.provider.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		s.log.Debug("auth: provider sign-in failed", "error", err)

		if strings.Contains(err.Error(), "Invalid login credentials") {
			return nil, domain.ErrResult(domain.MsgInvalidCredentials)
		}
		return nil, domain.ErrResult(domain.MsgLoginFailed)
	}

	return session, domain.OkResult()
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) domain.ActionResult {
	if req.Password != req.ConfirmPassword {
		return domain.ErrResult(domain.MsgPasswordMismatch)
	}

	if !strongPassword(req.Password) {
		return domain.ErrResult(domain.MsgWeakPassword)
	}

	_, err := s.provider.SignUp(ctx, domain.SignUpParams{
		Email:    req.Email,
		Password: req.Password,
		Data: map[string]any{
			"name": req.Name,
		},
	})
	if err != nil {
		s.log.Debug("auth: provider sign-up failed", "error", err)

		if strings.Contains(strings.ToLower(err.Error()), "email") {
			return domain.ErrResult(domain.MsgEmailInUse)
		}
		return domain.ErrResult(domain.MsgRegistrationFailed)
	}

	return domain.OkResult()
}

func (s *service) Logout(ctx context.Context, accessToken string) domain.ActionResult {
	// Unlike login/register the raw provider message is forwarded.
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		return domain.ErrResult(err.Error())
	}

	return domain.OkResult()
}

func (s *service) CurrentUser(ctx context.Context, accessToken string) *domain.User {
	if accessToken == "" {
		return nil
	}

	user, err := s.provider.GetUser(ctx, accessToken)
	if err != nil {
		s.log.Debug("auth: user lookup failed, treating as signed out", "error", err)
		return nil
	}

	return user
}

func (s *service) CurrentSession(ctx context.Context, accessToken string) *domain.Session {
	if accessToken == "" {
		return nil
	}

	claims, err := pkg.ValidateToken(accessToken, s.jwtSecret)
	if err != nil {
		s.log.Debug("auth: session token rejected, treating as signed out", "error", err)
		return nil
	}

	session := &domain.Session{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Unix()
		session.ExpiresIn = int64(time.Until(exp.Time).Seconds())
	}

	user := &domain.User{}
	if sub, err := claims.GetSubject(); err == nil {
		user.ID = sub
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if meta, ok := claims["user_metadata"].(map[string]any); ok {
		user.UserMetadata = meta
	}
	session.User = user

	return session
}

// strongPassword checks the registration strength policy: at least 8
// characters with one uppercase, one lowercase, one digit and one
// symbol from the fixed set.
func strongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	return upper && lower && digit && symbol
}
