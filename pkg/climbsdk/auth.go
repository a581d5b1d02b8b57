package climbsdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/climblog/pkg/session"
)

// Login exchanges credentials for a bearer token. The token is returned as
// is; nothing is stored.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp map[string]any
	if err := c.Request(ctx, http.MethodPost, "/login", LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return "", fmt.Errorf("error logging in: %w", err)
	}

	token := tokenFromBody(resp)
	if token == "" {
		return "", fmt.Errorf("error logging in: %w", &APIError{
			Kind:       KindDecode,
			StatusCode: http.StatusOK,
			Message:    "login response did not contain a token",
		})
	}
	return token, nil
}

// Register creates an account. The response carries a token for the new
// account which callers may hand to session.Manager.Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.Request(ctx, http.MethodPost, "/register", req, &resp); err != nil {
		return RegisterResponse{}, fmt.Errorf("error registering account: %w", err)
	}
	return resp, nil
}

// Logout tells the API the session is over. Tokens are not revoked
// server-side, so callers must still clear the local session.
func (c *Client) Logout(ctx context.Context) (MessageResponse, error) {
	var resp MessageResponse
	if err := c.Request(ctx, http.MethodGet, "/logout", nil, &resp); err != nil {
		return MessageResponse{}, fmt.Errorf("error logging out: %w", err)
	}
	return resp, nil
}

// DeleteAccount removes the signed-in user and everything they own.
func (c *Client) DeleteAccount(ctx context.Context) (MessageResponse, error) {
	var resp MessageResponse
	if err := c.Request(ctx, http.MethodDelete, "/delete", nil, &resp); err != nil {
		return MessageResponse{}, fmt.Errorf("error deleting account: %w", err)
	}
	return resp, nil
}

// Authenticate logs in and installs the token as the current session.
func (c *Client) Authenticate(ctx context.Context, sessions *session.Manager, username, password string) (session.Session, error) {
	token, err := c.Login(ctx, username, password)
	if err != nil {
		return session.Session{}, err
	}
	return sessions.Login(ctx, token)
}

func tokenFromBody(body map[string]any) string {
	for _, key := range []string{TokenFieldAccessToken, TokenFieldDescriptive} {
		if s, ok := body[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
