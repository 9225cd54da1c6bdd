package pdfsdk

import (
	"context"

	"github.com/imroc/req/v3"
)

const (
	authLogin          = "/auth/login"
	authSignup         = "/auth/signup"
	authMe             = "/auth/me"
	authForgotPassword = "/auth/forgot-password"
	authResetPassword  = "/auth/reset-password"
)

type AuthAPI struct {
	client *req.Client
}

func newAuthAPI(client *req.Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// Login exchanges username and password (form encoded) for an access token.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (resp *TokenResponse, err error) {
	res, err := a.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": username,
			"password": password,
		}).
		SetSuccessResult(&resp).
		Post(authLogin)

	if err := handleAPIError(res, err, "auth login"); err != nil {
		return nil, err
	}

	return resp, nil
}

func (a *AuthAPI) Signup(ctx context.Context, params *SignupRequest) (resp *User, err error) {
	res, err := a.client.R().
		SetContext(ctx).
		SetBody(params).
		SetSuccessResult(&resp).
		Post(authSignup)

	if err := handleAPIError(res, err, "auth signup"); err != nil {
		return nil, err
	}

	return resp, nil
}

// Me returns the profile of the credential's owner. A 401 wraps ErrUnauthorized.
func (a *AuthAPI) Me(ctx context.Context) (resp *User, err error) {
	res, err := a.client.R().
		SetContext(ctx).
		SetSuccessResult(&resp).
		Get(authMe)

	if err := handleAPIError(res, err, "auth me"); err != nil {
		return nil, err
	}

	return resp, nil
}

func (a *AuthAPI) ForgotPassword(ctx context.Context, email string) (resp *MessageResponse, err error) {
	res, err := a.client.R().
		SetContext(ctx).
		SetBody(&ForgotPasswordRequest{Email: email}).
		SetSuccessResult(&resp).
		Post(authForgotPassword)

	if err := handleAPIError(res, err, "auth forgot password"); err != nil {
		return nil, err
	}

	return resp, nil
}

func (a *AuthAPI) ResetPassword(ctx context.Context, params *ResetPasswordRequest) (resp *MessageResponse, err error) {
	res, err := a.client.R().
		SetContext(ctx).
		SetBody(params).
		SetSuccessResult(&resp).
		Post(authResetPassword)

	if err := handleAPIError(res, err, "auth reset password"); err != nil {
		return nil, err
	}

	return resp, nil
}
