// Package gotrue is an HTTP client for the hosted authentication API
// (a GoTrue-compatible backend). It implements domain.AuthProvider and
// surfaces provider error messages verbatim so callers can match on
// them.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/favour-22/alx-polly/internal/domain"
)

const requestTimeout = 10 * time.Second

type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		http: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// APIError is a non-2xx provider response. Message carries the
// provider's own description of the failure.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var session domain.Session
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", payload, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (c *Client) SignUp(ctx context.Context, params domain.SignUpParams) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/signup", "", params, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/user", accessToken, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("gotrue: marshal request failed: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("gotrue: build request failed: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gotrue: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return parseError(res)
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("gotrue: decode response failed: %w", err)
	}

	return nil
}

// errorBody covers the shapes the provider uses across endpoints.
type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func parseError(res *http.Response) error {
	apiErr := &APIError{
		Status:  res.StatusCode,
		Message: res.Status,
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err != nil {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}

	switch {
	case body.ErrorDescription != "":
		apiErr.Message = body.ErrorDescription
	case body.Msg != "":
		apiErr.Message = body.Msg
	case body.Message != "":
		apiErr.Message = body.Message
	case body.Error != "":
		apiErr.Message = body.Error
	}

	return apiErr
}
