package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favour-22/alx-polly/internal/domain"
)

type fakeProvider struct {
	signInCalls  int
	signUpCalls  int
	signOutCalls int
	getUserCalls int

	signInErr  error
	signUpErr  error
	signOutErr error
	getUserErr error

	session *domain.Session
	user    *domain.User

	lastSignUp domain.SignUpParams
}

func (f *fakeProvider) SignInWithPassword(_ context.Context, _, _ string) (*domain.Session, error) {
	f.signInCalls++
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

func (f *fakeProvider) SignUp(_ context.Context, params domain.SignUpParams) (*domain.User, error) {
	f.signUpCalls++
	f.lastSignUp = params
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.user, nil
}

func (f *fakeProvider) SignOut(_ context.Context, _ string) error {
	f.signOutCalls++
	return f.signOutErr
}

func (f *fakeProvider) GetUser(_ context.Context, _ string) (*domain.User, error) {
	f.getUserCalls++
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	return f.user, nil
}

const testSecret = "test-secret"

func newTestService(p *fakeProvider) domain.AuthService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(p, testSecret, log)
}

func errMsg(t *testing.T, res domain.ActionResult) string {
	t.Helper()
	require.NotNil(t, res.Error)
	return *res.Error
}

func TestLoginRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		req  domain.LoginRequest
	}{
		{"empty email", domain.LoginRequest{Password: "secret"}},
		{"empty password", domain.LoginRequest{Email: "a@b.com"}},
		{"both empty", domain.LoginRequest{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &fakeProvider{}
			svc := newTestService(provider)

			session, res := svc.Login(context.Background(), tc.req)

			assert.Nil(t, session)
			assert.Equal(t, domain.MsgEmailPasswordRequired, errMsg(t, res))
			assert.Zero(t, provider.signInCalls, "must not reach the provider")
		})
	}
}

func TestLoginInvalidEmailFormat(t *testing.T) {
	for _, email := range []string{"nope", "a@b", "a b@c.com", "@b.com", "a@.com "} {
		provider := &fakeProvider{}
		svc := newTestService(provider)

		session, res := svc.Login(context.Background(), domain.LoginRequest{
			Email:    email,
			Password: "secret",
		})

		assert.Nil(t, session, email)
		assert.Equal(t, domain.MsgInvalidEmail, errMsg(t, res), email)
		assert.Zero(t, provider.signInCalls, email)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	provider := &fakeProvider{
		signInErr: errors.New("Invalid login credentials"),
	}
	svc := newTestService(provider)

	session, res := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "a@b.com",
		Password: "wrong",
	})

	assert.Nil(t, session)
	assert.Equal(t, domain.MsgInvalidCredentials, errMsg(t, res))
	assert.Equal(t, 1, provider.signInCalls)
}

func TestLoginOtherProviderErrorIsFlattened(t *testing.T) {
	provider := &fakeProvider{
		signInErr: errors.New("upstream timeout contacting identity store"),
	}
	svc := newTestService(provider)

	_, res := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "a@b.com",
		Password: "secret",
	})

	msg := errMsg(t, res)
	assert.Equal(t, domain.MsgLoginFailed, msg)
	assert.NotContains(t, msg, "upstream", "raw provider text must not leak")
}

func TestLoginSuccess(t *testing.T) {
	provider := &fakeProvider{
		session: &domain.Session{AccessToken: "tok"},
	}
	svc := newTestService(provider)

	session, res := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "a@b.com",
		Password: "x",
	})

	assert.Nil(t, res.Error)
	require.NotNil(t, session)
	assert.Equal(t, "tok", session.AccessToken)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(provider)

	res := svc.Register(context.Background(), domain.RegisterRequest{
		Email:           "a@b.com",
		Password:        "Abc123!@",
		ConfirmPassword: "Abc123!#",
		Name:            "A",
	})

	assert.Equal(t, domain.MsgPasswordMismatch, errMsg(t, res))
	assert.Zero(t, provider.signUpCalls)
}

func TestRegisterWeakPassword(t *testing.T) {
	// too short, no uppercase, no lowercase, no digit, no symbol
	weak := []string{
		"Ab1!",
		"abc123!@abc",
		"ABC123!@ABC",
		"Abcdef!@gh",
		"Abcdef123gh",
	}

	for _, password := range weak {
		provider := &fakeProvider{}
		svc := newTestService(provider)

		res := svc.Register(context.Background(), domain.RegisterRequest{
			Email:           "a@b.com",
			Password:        password,
			ConfirmPassword: password,
			Name:            "A",
		})

		assert.Equal(t, domain.MsgWeakPassword, errMsg(t, res), password)
		assert.Zero(t, provider.signUpCalls, password)
	}
}

func TestRegisterForwardsNameAsMetadata(t *testing.T) {
	provider := &fakeProvider{user: &domain.User{ID: "u1"}}
	svc := newTestService(provider)

	res := svc.Register(context.Background(), domain.RegisterRequest{
		Email:           "a@b.com",
		Password:        "Abc123!@",
		ConfirmPassword: "Abc123!@",
		Name:            "A",
	})

	assert.Nil(t, res.Error)
	require.Equal(t, 1, provider.signUpCalls)
	assert.Equal(t, "a@b.com", provider.lastSignUp.Email)
	assert.Equal(t, "A", provider.lastSignUp.Data["name"])
}

func TestRegisterEmailProviderError(t *testing.T) {
	for _, raw := range []string{
		"User already registered with this Email",
		"Unable to validate email address: invalid format",
	} {
		provider := &fakeProvider{signUpErr: errors.New(raw)}
		svc := newTestService(provider)

		res := svc.Register(context.Background(), domain.RegisterRequest{
			Email:           "a@b.com",
			Password:        "Abc123!@",
			ConfirmPassword: "Abc123!@",
			Name:            "A",
		})

		assert.Equal(t, domain.MsgEmailInUse, errMsg(t, res), raw)
	}
}

func TestRegisterOtherProviderError(t *testing.T) {
	provider := &fakeProvider{signUpErr: errors.New("service unavailable")}
	svc := newTestService(provider)

	res := svc.Register(context.Background(), domain.RegisterRequest{
		Email:           "a@b.com",
		Password:        "Abc123!@",
		ConfirmPassword: "Abc123!@",
		Name:            "A",
	})

	assert.Equal(t, domain.MsgRegistrationFailed, errMsg(t, res))
}

func TestLogoutForwardsRawProviderError(t *testing.T) {
	provider := &fakeProvider{signOutErr: errors.New("session_not_found")}
	svc := newTestService(provider)

	res := svc.Logout(context.Background(), "tok")

	assert.Equal(t, "session_not_found", errMsg(t, res))
	assert.Equal(t, 1, provider.signOutCalls)
}

func TestLogoutSuccess(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(provider)

	res := svc.Logout(context.Background(), "tok")

	assert.Nil(t, res.Error)
}

func TestCurrentUserSwallowsProviderError(t *testing.T) {
	provider := &fakeProvider{getUserErr: errors.New("401 unauthorized")}
	svc := newTestService(provider)

	user := svc.CurrentUser(context.Background(), "tok")

	assert.Nil(t, user)
}

func TestCurrentUserNoToken(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(provider)

	assert.Nil(t, svc.CurrentUser(context.Background(), ""))
	assert.Zero(t, provider.getUserCalls)
}

func TestCurrentSession(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":   "user-1",
		"email": "a@b.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc := newTestService(&fakeProvider{})

	session := svc.CurrentSession(context.Background(), token)

	require.NotNil(t, session)
	assert.Equal(t, token, session.AccessToken)
	require.NotNil(t, session.User)
	assert.Equal(t, "user-1", session.User.ID)
	assert.Equal(t, "a@b.com", session.User.Email)
	assert.Greater(t, session.ExpiresAt, time.Now().Unix())
}

func TestCurrentSessionInvalidToken(t *testing.T) {
	svc := newTestService(&fakeProvider{})

	assert.Nil(t, svc.CurrentSession(context.Background(), "garbage"))
	assert.Nil(t, svc.CurrentSession(context.Background(), ""))
}

func TestCurrentSessionExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc := newTestService(&fakeProvider{})

	assert.Nil(t, svc.CurrentSession(context.Background(), token))
}
