// Package domain
package domain

import "context"

// Fixed user-facing messages returned by the auth facade. Provider
// error text is never forwarded for login/register so that failures
// are indistinguishable to a caller probing for existing accounts.
const (
	MsgEmailPasswordRequired = "Email and password are required."
	MsgInvalidEmail          = "Please enter a valid email address."
	MsgInvalidCredentials    = "Invalid email or password."
	MsgLoginFailed           = "Could not authenticate user. Please try again."
	MsgPasswordMismatch      = "Passwords do not match"
	MsgWeakPassword          = "Password must be at least 8 characters and include uppercase, lowercase, number and special character."
	MsgEmailInUse            = "Email is already in use or invalid."
	MsgRegistrationFailed    = "Registration failed. Please try again."
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
}

// ActionResult is the uniform result shape of mutating auth
// operations. A nil Error signals success; there is no success
// payload, callers re-fetch the session separately.
type ActionResult struct {
	Error *string `json:"error"`
}

func OkResult() ActionResult {
	return ActionResult{}
}

func ErrResult(msg string) ActionResult {
	return ActionResult{Error: &msg}
}

type SignUpParams struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

// AuthProvider is the port for the hosted authentication backend. It
// owns credential storage, password hashing and token issuance; this
// service only forwards to it.
type AuthProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, params SignUpParams) (*User, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*User, error)
}

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*Session, ActionResult)
	Register(ctx context.Context, req RegisterRequest) ActionResult
	Logout(ctx context.Context, accessToken string) ActionResult
	CurrentUser(ctx context.Context, accessToken string) *User
	CurrentSession(ctx context.Context, accessToken string) *Session
}
