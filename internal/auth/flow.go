package auth

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"wisata/internal/api"
	"wisata/internal/auth/models"
)

// AuthAPI is the slice of the upstream client the flows need.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	VerifyEmail(ctx context.Context, email string, otp int) (*api.VerifyResult, error)
	ResendOTP(ctx context.Context, email string) error
}

// Flow drives the interactive sign-in and verification sequences on top
// of the session manager.
type Flow struct {
	api     AuthAPI
	manager *Manager
	log     *slog.Logger
}

// NewFlow wires the flows to the upstream client and the manager.
func NewFlow(authAPI AuthAPI, manager *Manager, log *slog.Logger) *Flow {
	if log == nil {
		log = slog.Default()
	}
	return &Flow{api: authAPI, manager: manager, log: log}
}

// SignInResult is the outcome of a successful credential exchange,
// including where the session holder should land next.
type SignInResult struct {
	User       models.User
	Verified   bool
	RedirectTo string
}

// SignIn exchanges credentials, opens the session and picks the landing
// location. Unverified accounts still get a session; they are routed to
// the verification page (admins skip it).
func (f *Flow) SignIn(ctx context.Context, email, password, userAgent string) (*SignInResult, error) {
	res, err := f.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := f.manager.Login(res.User, res.Token, res.Verified, DeviceLabel(userAgent)); err != nil {
		return nil, err
	}

	redirect := "/"
	switch {
	case res.User.IsAdmin():
		redirect = "/admin"
	case !res.Verified:
		redirect = "/verify-email"
	}

	return &SignInResult{User: res.User, Verified: res.Verified, RedirectTo: redirect}, nil
}

// VerifyResult is the outcome of a completed email verification.
type VerifyResult struct {
	User       models.User
	RedirectTo string
}

// VerifyOTP validates the code locally, submits it, and promotes the
// session to verified on success. The upstream wants the code as an
// integer, so leading zeros survive only through the string check.
func (f *Flow) VerifyOTP(ctx context.Context, email, code string) (*VerifyResult, error) {
	if email == "" {
		return nil, errors.New("Email not found. Please register again.")
	}
	code = strings.TrimSpace(code)
	if len(code) != 6 || !digitsOnly(code) {
		return nil, errors.New("Please enter complete OTP code")
	}
	otp, err := strconv.Atoi(code)
	if err != nil {
		return nil, errors.New("Please enter complete OTP code")
	}

	res, err := f.api.VerifyEmail(ctx, email, otp)
	if err != nil {
		return nil, err
	}

	if err := f.manager.Login(res.User, res.AccessToken, true, ""); err != nil {
		return nil, err
	}
	f.manager.VerifyEmail()

	redirect := "/"
	if res.User.IsAdmin() {
		redirect = "/admin"
	}
	return &VerifyResult{User: res.User, RedirectTo: redirect}, nil
}

// Resend asks the upstream to email a fresh code.
func (f *Flow) Resend(ctx context.Context, email string) error {
	if email == "" {
		return errors.New("Email not found. Please register again.")
	}
	return f.api.ResendOTP(ctx, email)
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
