package account

import (
	"errors"

	"github.com/openmined/pdfdesk/internal/pdfsdk"
	"github.com/openmined/pdfdesk/internal/utils"
)

const (
	MsgCannotConnect   = "Cannot connect to server. Please make sure the backend is running."
	MsgSomethingWrong  = "Something went wrong. Please try again."
	MsgPasswordsDiffer = "Passwords do not match"
	MsgPasswordShort   = "Password must be at least 6 characters"
	MsgLoginRequired   = "Please log in to continue"
	MsgSessionExpired  = "Your session has expired. Please log in again."
	MsgInvalidEmail    = "Please enter a valid email address"
)

// UserMessage turns an account or api error into the text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, pdfsdk.ErrConnection):
		return MsgCannotConnect
	case errors.Is(err, ErrPasswordMismatch):
		return MsgPasswordsDiffer
	case errors.Is(err, ErrPasswordTooShort):
		return MsgPasswordShort
	case errors.Is(err, utils.ErrEmailEmpty), errors.Is(err, utils.ErrEmailInvalid):
		return MsgInvalidEmail
	case errors.Is(err, ErrSessionExpired):
		return MsgSessionExpired
	case errors.Is(err, ErrNotLoggedIn), errors.Is(err, ErrMissingLogin):
		return MsgLoginRequired
	}
	return pdfsdk.ErrorDetail(err, MsgSomethingWrong)
}
