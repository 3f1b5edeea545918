// internal/api/auth.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tutorlink-client/internal/common/jsonutil"
	"tutorlink-client/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type oauthRequest struct {
	Provider string `json:"provider"`
	Token    string `json:"token"`
	Role     string `json:"role,omitempty"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var raw json.RawMessage
	body := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "auth_login", body, &raw); err != nil {
		return nil, err
	}
	return parseAuthResponse(raw)
}

// Register creates an account and signs it in immediately.
func (c *Client) Register(ctx context.Context, firstName, lastName, email, password, role string) (*session.Session, error) {
	var raw json.RawMessage
	body := registerRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
		Role:      role,
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", "auth_register", body, &raw); err != nil {
		return nil, err
	}
	return parseAuthResponse(raw)
}

// OAuthExchange trades a provider token (Google, Facebook, Apple) for a
// platform session.
func (c *Client) OAuthExchange(ctx context.Context, provider, providerToken, role string) (*session.Session, error) {
	var raw json.RawMessage
	body := oauthRequest{Provider: provider, Token: providerToken, Role: role}
	if err := c.do(ctx, http.MethodPost, "/auth/oauth", "auth_oauth", body, &raw); err != nil {
		return nil, err
	}
	return parseAuthResponse(raw)
}

// parseAuthResponse tolerates the auth endpoints' shape drift: token and user
// fields appear at the top level or under "user"/"data".
func parseAuthResponse(raw json.RawMessage) (*session.Session, error) {
	m := jsonutil.UnwrapObject(raw)

	token := jsonutil.StringAt(m, "accessToken", "token", "access_token")
	if token == "" {
		return nil, fmt.Errorf("auth response carried no access token")
	}

	sess := &session.Session{
		AccessToken:  token,
		RefreshToken: jsonutil.StringAt(m, "refreshToken", "refresh_token"),
		UserID:       jsonutil.StringAt(m, "user._id", "user.id", "userId", "_id"),
		UserRole:     jsonutil.StringAt(m, "user.role", "role", "userRole"),
		CreatedAt:    time.Now(),
	}
	if expiresIn := jsonutil.NumberAt(m, "expiresIn", "expires_in"); expiresIn > 0 {
		sess.ExpiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
	}
	return sess, nil
}
