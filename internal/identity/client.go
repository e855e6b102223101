// Package identity is a thin client for the hosted identity service, the
// external system of record for credentials and session tokens. The
// application never stores or renews tokens itself; it only forwards
// credentials and asks who a token belongs to.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/enbat/horizon-server-go/internal/config"
	apperrors "github.com/enbat/horizon-server-go/internal/errors"
)

// User is the identity service's record of a registered user.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			// Per-request timeouts come from the context.
			Timeout: 0,
		},
	}
}

// SignUp creates credentials for a new user. The returned user is the
// identity-service record; the caller is responsible for any application
// rows that should accompany it.
func (c *Client) SignUp(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}

	var user User
	if err := c.do(ctx, http.MethodPost, "/signup", "", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignInWithPassword exchanges credentials for an access token.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", body, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", apperrors.Auth("Identity service returned no access token")
	}
	return resp.AccessToken, nil
}

// SignOut revokes the session behind the token. A failure here still leaves
// the caller logged out locally; the identity service owns token lifetime.
func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/logout", token, nil, nil)
}

// GetUser resolves an access token to its user, or fails if the token is
// missing, expired, or revoked.
func (c *Client) GetUser(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, dest any) error {
	timeout := config.IdentityReadTimeout
	if method != http.MethodGet {
		timeout = config.IdentityWriteTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperrors.External("identity", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperrors.External("identity", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("method", method).Str("path", path).
			Dur("duration", time.Since(start)).Msg("identity request failed")
		return apperrors.External("identity", err)
	}
	defer resp.Body.Close()

	log.Debug().Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).Dur("duration", time.Since(start)).
		Msg("identity request completed")

	if resp.StatusCode >= 400 {
		return c.mapError(resp)
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return apperrors.External("identity", err)
		}
	}
	return nil
}

// mapError converts an identity-service error body into an AppError, keeping
// the remote message so it can surface to the user unchanged.
func (c *Client) mapError(resp *http.Response) error {
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	message := body.Msg
	if message == "" {
		message = body.Message
	}
	if message == "" {
		message = body.ErrorDescription
	}
	if message == "" {
		message = fmt.Sprintf("identity service returned status %d", resp.StatusCode)
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return apperrors.Auth(message)
	}
	return apperrors.External("identity", fmt.Errorf("%s", message))
}
