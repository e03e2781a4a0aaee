package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/medchain/portal/internal/config"
	"github.com/medchain/portal/internal/domain"
	apperrors "github.com/medchain/portal/pkg/util"
)

// Client talks to the MedChain API on behalf of portal clients. It is the only
// place a credential leaves the gateway: callers pass it per request and the
// client attaches it as a bearer header.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

// New builds a client for the configured upstream.
func New(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

// Login exchanges credentials for a bearer token. It establishes no session;
// the returned token must still be verified before its identity is trusted.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, status, err := c.send(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if !is2xx(status) {
		return "", apperrors.NewAuthError(detailMessage(body, "Login failed. Please try again."))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.AccessToken == "" {
		return "", apperrors.NewAuthError("Authentication failed: no token received")
	}
	return payload.AccessToken, nil
}

// Verify asks the upstream to validate the credential and returns the
// canonical identity, including the role the portal authorizes against.
func (c *Client) Verify(ctx context.Context, credential string) (*domain.UserIdentity, error) {
	body, status, err := c.send(ctx, http.MethodGet, "/auth/verify", credential, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, apperrors.NewVerificationError(detailMessage(body, "Session verification failed"), nil)
	}

	var payload struct {
		ID       json.Number `json:"id"`
		Email    string      `json:"email"`
		Username string      `json:"username"`
		Role     string      `json:"role"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.NewVerificationError("invalid user data received", err)
	}
	if payload.Email == "" {
		return nil, apperrors.NewVerificationError("invalid user data received", nil)
	}

	return &domain.UserIdentity{
		ID:       payload.ID.String(),
		Email:    payload.Email,
		Username: payload.Username,
		Role:     domain.Role(payload.Role),
	}, nil
}

// Signup registers a new user. Like Login it establishes no session.
func (c *Client) Signup(ctx context.Context, data domain.SignupData) (*domain.UserIdentity, error) {
	body, status, err := c.send(ctx, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    data.Email,
		"username": data.Username,
		"password": data.Password,
		"role":     string(data.Role),
	})
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, apperrors.NewAuthError(detailMessage(body, "Signup failed. Please try again."))
	}

	var payload struct {
		User struct {
			ID       json.Number `json:"id"`
			Email    string      `json:"email"`
			Username string      `json:"username"`
			Role     string      `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.NewAuthError("Signup failed. Please try again.")
	}

	return &domain.UserIdentity{
		ID:       payload.User.ID.String(),
		Email:    payload.User.Email,
		Username: payload.User.Username,
		Role:     domain.Role(payload.User.Role),
	}, nil
}

// send issues a JSON request and reads the whole response. Transport failures
// come back as NetworkError; HTTP status handling is left to the caller.
func (c *Client) send(ctx context.Context, method, path, credential string, payload any) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, apperrors.NewInternalError(err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, apperrors.NewInternalError(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, apperrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, apperrors.NewNetworkError(err)
	}
	return body, resp.StatusCode, nil
}

// rejection maps a non-2xx proxied response. Every 401 means the credential is
// no longer honored upstream, regardless of which call tripped it.
func rejection(body []byte, status int, fallback string) error {
	if status == http.StatusUnauthorized {
		return apperrors.NewVerificationError("session rejected upstream", nil)
	}
	return apperrors.NewDomainError(apperrors.CodeUpstreamRejected, detailMessage(body, fallback), status, nil)
}

// detailMessage extracts the upstream error detail when present.
func detailMessage(body []byte, fallback string) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fallback
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
