package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medchain/portal/internal/config"
	"github.com/medchain/portal/internal/domain"
	apperrors "github.com/medchain/portal/pkg/util"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.UpstreamConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, zap.NewNop())
}

func TestLogin_ReturnsAccessToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])
		assert.Equal(t, "pw", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	}))

	cred, err := client.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", cred)
}

func TestLogin_SurfacesUpstreamDetail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	}))

	_, err := client.Login(context.Background(), "a@b.com", "bad")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAuthFailed))
	assert.Equal(t, "Incorrect email or password", apperrors.ToDomainError(err).Message)
}

func TestLogin_FallbackMessageWhenNoDetail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "Login failed. Please try again.", apperrors.ToDomainError(err).Message)
}

func TestLogin_MissingTokenInResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"unexpected": "shape"})
	}))

	_, err := client.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAuthFailed))
}

func TestVerify_ReturnsCanonicalIdentity(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/verify", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       7,
			"email":    "a@b.com",
			"username": "alice",
			"role":     "patient",
		})
	}))

	identity, err := client.Verify(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "7", identity.ID)
	assert.Equal(t, "a@b.com", identity.Email)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, domain.RolePatient, identity.Role)
}

func TestVerify_MissingEmailIsRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7, "role": "patient"})
	}))

	_, err := client.Verify(context.Background(), "tok-123")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeVerificationFailed))
}

func TestVerify_RejectedToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))

	_, err := client.Verify(context.Background(), "tok-123")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeVerificationFailed))
}

func TestSignup_ReturnsCreatedUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/signup", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": 9, "email": "new@b.com", "username": "newbie", "role": "patient"},
		})
	}))

	identity, err := client.Signup(context.Background(), domain.SignupData{
		Email: "new@b.com", Username: "newbie", Password: "pw", Role: domain.RolePatient,
	})
	require.NoError(t, err)
	assert.Equal(t, "9", identity.ID)
	assert.Equal(t, "new@b.com", identity.Email)
}

func TestProfileExists(t *testing.T) {
	exists := true
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/patients/profile/exists", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]bool{"exists": exists})
	}))

	status, err := client.ProfileExists(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.True(t, status.Exists)

	exists = false
	status, err = client.ProfileExists(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.False(t, status.Exists)
}

func TestProxiedCall_401MapsToVerificationFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.PatientDashboard(context.Background(), "stale-tok")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeVerificationFailed))
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(config.UpstreamConfig{BaseURL: srv.URL, TimeoutSeconds: 1}, zap.NewNop())
	srv.Close()

	_, err := client.Verify(context.Background(), "tok-123")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUpstreamUnavailable))
}
