package gotrue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favour-22/alx-polly/internal/domain"
)

func TestSignInWithPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok",
			"token_type":   "bearer",
			"expires_in":   3600,
			"user":         map[string]any{"id": "user-1", "email": "a@b.com"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	session, err := client.SignInWithPassword(context.Background(), "a@b.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "tok", session.AccessToken)
	require.NotNil(t, session.User)
	assert.Equal(t, "user-1", session.User.ID)
}

func TestSignInErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid login credentials",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	_, err := client.SignInWithPassword(context.Background(), "a@b.com", "wrong")

	require.Error(t, err)
	assert.Equal(t, "Invalid login credentials", err.Error())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestSignUpForwardsMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/signup", r.URL.Path)

		var params domain.SignUpParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "A", params.Data["name"])

		json.NewEncoder(w).Encode(map[string]any{"id": "user-1", "email": params.Email})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	user, err := client.SignUp(context.Background(), domain.SignUpParams{
		Email:    "a@b.com",
		Password: "Abc123!@",
		Data:     map[string]any{"name": "A"},
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestSignUpDuplicateEmailMsg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"code": 422,
			"msg":  "User already registered",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	_, err := client.SignUp(context.Background(), domain.SignUpParams{Email: "a@b.com", Password: "x"})

	require.Error(t, err)
	assert.Equal(t, "User already registered", err.Error())
}

func TestSignOutSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	require.NoError(t, client.SignOut(context.Background(), "tok"))
}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"id":            "user-1",
			"email":         "a@b.com",
			"user_metadata": map[string]any{"name": "A"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	user, err := client.GetUser(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "A", user.UserMetadata["name"])
}

func TestNonJSONErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	_, err := client.GetUser(context.Background(), "tok")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
