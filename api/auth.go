package api

import (
	"context"
	"net/http"

	"event-portal/models"
)

// Login performs the primary credential check. When the account has
// two-factor enabled the response carries RequiresTwoFactor and a TempToken
// instead of an access token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   models.LoginRequest{Email: email, Password: password},
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyTwoFactor exchanges the temporary token and a one-time code for a
// full access token.
func (c *Client) VerifyTwoFactor(ctx context.Context, code, tempToken string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/verify-2fa",
		body: map[string]string{
			"code":       code,
			"temp_token": tempToken,
		},
		out: &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, in models.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: in, out: &user}); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me", token: token, out: &user}); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/logout", token: token})
}

// SetupTwoFactor starts enrolment and returns the secret and backup codes.
func (c *Client) SetupTwoFactor(ctx context.Context, token string) (*models.TwoFactorSetup, error) {
	var setup models.TwoFactorSetup
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/2fa/setup", token: token, out: &setup}); err != nil {
		return nil, err
	}
	return &setup, nil
}

// ConfirmTwoFactor turns two-factor on with the first code from the authenticator.
func (c *Client) ConfirmTwoFactor(ctx context.Context, token, code string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/2fa/verify",
		token:  token,
		body:   map[string]string{"token": code},
	})
}
