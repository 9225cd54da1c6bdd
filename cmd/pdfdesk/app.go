package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openmined/pdfdesk/internal/account"
	"github.com/openmined/pdfdesk/internal/appstate"
	"github.com/openmined/pdfdesk/internal/config"
	"github.com/openmined/pdfdesk/internal/library"
	"github.com/openmined/pdfdesk/internal/pdfsdk"
	"github.com/openmined/pdfdesk/internal/upload"
	"github.com/openmined/pdfdesk/internal/utils"
	"github.com/spf13/cobra"
)

// app is the composition root shared by the commands.
type app struct {
	cfg     *config.Config
	state   *appstate.Context
	sdk     *pdfsdk.PDFSDK
	account *account.Account
	library *library.Store
	locator *pdfsdk.Locator
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg := configFrom(cmd)

	if err := utils.EnsureDir(cfg.StateDir); err != nil {
		return nil, fmt.Errorf("state dir: %w", err)
	}

	state, err := appstate.Open(cfg.StateDBPath())
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}

	sdk, err := pdfsdk.New(cfg.ServerURL)
	if err != nil {
		state.Close()
		return nil, err
	}

	store, err := library.New(sdk.Documents)
	if err != nil {
		sdk.Close()
		state.Close()
		return nil, err
	}

	slog.Debug("app ready", "server", cfg.ServerURL, "state", cfg.StateDBPath())

	return &app{
		cfg:     cfg,
		state:   state,
		sdk:     sdk,
		account: account.New(sdk, state.Credentials),
		library: store,
		locator: sdk.Locator,
	}, nil
}

func (a *app) Close() {
	a.sdk.Close()
	if err := a.state.Close(); err != nil {
		slog.Warn("close state", "error", err)
	}
}

// requireLogin restores the stored session and confirms it with the server.
func (a *app) requireLogin(ctx context.Context) (*pdfsdk.User, error) {
	return a.account.Restore(ctx)
}

// check discards the credential when err is a 401.
func (a *app) check(err error) error {
	if err == nil {
		return nil
	}
	return a.account.HandleUnauthorized(err)
}

// userMessage is the text printed for a failed command.
func userMessage(err error) string {
	var batchErr *upload.BatchError
	var apiErr *pdfsdk.APIError

	switch {
	case errors.As(err, &batchErr):
		return "Some uploads failed:\n" + batchErr.Error()
	case errors.Is(err, upload.ErrNoValidFiles):
		return upload.MsgNoValidFiles
	case errors.Is(err, library.ErrDeleteDeclined):
		return "Delete cancelled"
	case errors.Is(err, library.ErrFetchFailed), errors.Is(err, library.ErrDeleteFailed):
		if errors.Is(err, pdfsdk.ErrConnection) {
			return account.MsgCannotConnect
		}
		return library.UserMessage(err)
	case errors.Is(err, errLoginToView):
		return msgLoginToView
	case errors.Is(err, pdfsdk.ErrNotFound):
		return library.MsgNotFound
	case errors.Is(err, pdfsdk.ErrConnection),
		errors.Is(err, pdfsdk.ErrUnauthorized),
		errors.Is(err, account.ErrNotLoggedIn),
		errors.Is(err, account.ErrSessionExpired),
		errors.Is(err, account.ErrMissingLogin),
		errors.Is(err, account.ErrPasswordMismatch),
		errors.Is(err, account.ErrPasswordTooShort),
		errors.Is(err, utils.ErrEmailEmpty),
		errors.Is(err, utils.ErrEmailInvalid),
		errors.As(err, &apiErr):
		return account.UserMessage(err)
	}
	return err.Error()
}
