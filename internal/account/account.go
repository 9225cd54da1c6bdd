// Package account is the auth flow and the only writer of the stored credential.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/openmined/pdfdesk/internal/appstate"
	"github.com/openmined/pdfdesk/internal/pdfsdk"
	"github.com/openmined/pdfdesk/internal/utils"
)

const MinPasswordLength = 6

var (
	ErrNotLoggedIn      = errors.New("account: not logged in")
	ErrSessionExpired   = errors.New("account: session expired")
	ErrMissingLogin     = errors.New("account: username and password are required")
	ErrPasswordMismatch = errors.New("account: passwords do not match")
	ErrPasswordTooShort = errors.New("account: password too short")
	ErrMissingResetCode = errors.New("account: reset token missing")
)

type Account struct {
	sdk   *pdfsdk.PDFSDK
	creds *appstate.Credentials
	now   func() time.Time
}

func New(sdk *pdfsdk.PDFSDK, creds *appstate.Credentials) *Account {
	return &Account{sdk: sdk, creds: creds, now: time.Now}
}

// Restore loads the stored credential and confirms it with /auth/me.
// A rejected or expired credential is discarded.
func (a *Account) Restore(ctx context.Context) (*pdfsdk.User, error) {
	token, err := a.creds.Token()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	if claims, err := ParseClaims(token); err == nil && claims.ExpiresAt != nil && claims.ExpiresAt.Before(a.now()) {
		slog.Debug("stored credential expired", "subject", claims.Subject, "expired", claims.ExpiresAt.Time)
		if err := a.Logout(); err != nil {
			return nil, err
		}
		return nil, ErrSessionExpired
	}

	a.sdk.SetToken(token)
	return a.fetchUser(ctx)
}

// Login stores the new credential, then loads the profile exactly like a restore.
func (a *Account) Login(ctx context.Context, username, password string) (*pdfsdk.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingLogin
	}

	resp, err := a.sdk.Auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	if err := a.creds.Store(resp.AccessToken); err != nil {
		return nil, fmt.Errorf("store credential: %w", err)
	}
	a.sdk.SetToken(resp.AccessToken)

	slog.Debug("logged in", "username", username, "token", utils.MaskSecret(resp.AccessToken))
	return a.fetchUser(ctx)
}

func (a *Account) Signup(ctx context.Context, email, username, password, confirm string) (*pdfsdk.User, error) {
	if err := utils.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password, confirm); err != nil {
		return nil, err
	}

	return a.sdk.Auth.Signup(ctx, &pdfsdk.SignupRequest{
		Email:    email,
		Username: strings.TrimSpace(username),
		Password: password,
	})
}

// Logout discards the credential. The theme preference is untouched.
func (a *Account) Logout() error {
	a.sdk.SetToken("")
	return a.creds.Discard()
}

func (a *Account) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := utils.ValidateEmail(email); err != nil {
		return "", err
	}

	resp, err := a.sdk.Auth.ForgotPassword(ctx, email)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (a *Account) ResetPassword(ctx context.Context, resetToken, password, confirm string) (string, error) {
	if resetToken == "" {
		return "", ErrMissingResetCode
	}
	if err := validatePassword(password, confirm); err != nil {
		return "", err
	}

	resp, err := a.sdk.Auth.ResetPassword(ctx, &pdfsdk.ResetPasswordRequest{
		Token:       resetToken,
		NewPassword: password,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Token returns the current credential for building locator URLs.
func (a *Account) Token() (string, error) {
	token, err := a.creds.Token()
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// HandleUnauthorized discards the credential after any 401 from the API.
func (a *Account) HandleUnauthorized(err error) error {
	if !errors.Is(err, pdfsdk.ErrUnauthorized) {
		return err
	}
	if discardErr := a.Logout(); discardErr != nil {
		slog.Warn("discard credential", "error", discardErr)
	}
	return fmt.Errorf("%w: %w", ErrSessionExpired, err)
}

func (a *Account) fetchUser(ctx context.Context) (*pdfsdk.User, error) {
	user, err := a.sdk.Auth.Me(ctx)
	if err == nil {
		return user, nil
	}

	// connectivity problems keep the credential, only a rejection discards it
	if errors.Is(err, pdfsdk.ErrUnauthorized) {
		return nil, a.HandleUnauthorized(err)
	}
	return nil, err
}

func validatePassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ParseClaims reads the token's registered claims without verifying the signature.
// The server stays the authority; this only lets the client skip credentials it knows are stale.
func ParseClaims(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}
	return claims, nil
}
