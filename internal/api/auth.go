package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"wisata/internal/auth/models"
)

// AuthClient covers the authentication endpoints. Unlike the resource
// clients these surface failures as errors: the sign-in and verification
// flows show them directly to the user.
type AuthClient struct {
	c *Client
}

// Auth returns the authentication client.
func (c *Client) Auth() *AuthClient {
	return &AuthClient{c: c}
}

// LoginResult is a successful credential exchange. Verified is false on
// the upstream's 403 path: valid credentials, unverified email, token
// still issued so the holder can complete verification.
type LoginResult struct {
	Token    string
	User     models.User
	Verified bool
}

type loginPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a bearer token.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	env, status, raw, err := a.c.postJSON(ctx, "auth.login", "/login", body, false, "Login failed")
	if err != nil {
		return nil, err
	}
	if status == 0 {
		// Transport failure; the envelope carries the cause.
		return nil, errors.New(env.Message)
	}
	if status != http.StatusOK && status != http.StatusForbidden {
		return nil, errors.New(env.Message)
	}

	// 403 bodies never pass normalization with their payload intact, so
	// the token/user pair is read from the raw body for both outcomes.
	var parsed struct {
		Message string       `json:"message"`
		Data    loginPayload `json:"data"`
	}
	if uerr := json.Unmarshal(raw, &parsed); uerr != nil {
		return nil, fmt.Errorf("decode login response: %w", uerr)
	}
	if parsed.Data.Token == "" || parsed.Data.User.ID == 0 {
		return nil, errors.New("malformed login response: missing token or user")
	}

	return &LoginResult{
		Token:    parsed.Data.Token,
		User:     parsed.Data.User,
		Verified: status != http.StatusForbidden,
	}, nil
}

// Logout notifies the upstream that the given token's session ended.
// The token is passed explicitly because the local session store has
// already been cleared by the time this runs.
func (a *AuthClient) Logout(ctx context.Context, token string) error {
	status, _, err := a.c.request(ctx, "auth.logout", http.MethodPost, "/logout", nil, "application/json", token)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("logout rejected with status %d", status)
	}
	return nil
}

// VerifyResult is a successful email verification: a fresh full-access
// token and the now-verified user record.
type VerifyResult struct {
	AccessToken string
	User        models.User
}

// VerifyEmail submits the one-time code. The upstream requires the code
// as an integer.
func (a *AuthClient) VerifyEmail(ctx context.Context, email string, otp int) (*VerifyResult, error) {
	body := map[string]any{"email": email, "otp": otp}
	env, status, _, err := a.c.postJSON(ctx, "auth.verify", "/verify-email", body, false, "Verification failed")
	if err != nil {
		return nil, err
	}
	if status == 0 || !env.Success {
		return nil, errors.New(env.Message)
	}

	var payload struct {
		AccessToken string      `json:"access_token"`
		User        models.User `json:"user"`
	}
	if uerr := json.Unmarshal(env.Data, &payload); uerr != nil {
		return nil, fmt.Errorf("decode verification response: %w", uerr)
	}
	if payload.AccessToken == "" || payload.User.ID == 0 {
		return nil, errors.New("malformed verification response: missing token or user")
	}
	return &VerifyResult{AccessToken: payload.AccessToken, User: payload.User}, nil
}

// ResendOTP asks the upstream to email a fresh one-time code.
func (a *AuthClient) ResendOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	env, status, _, err := a.c.postJSON(ctx, "auth.resend_otp", "/resend-verification-otp", body, false, "Failed to resend OTP")
	if err != nil {
		return err
	}
	if status == 0 || !env.Success {
		return errors.New(env.Message)
	}
	return nil
}
