package pdfsdk

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/imroc/req/v3"
)

var (
	// sdk common
	ErrNoServerURL = errors.New("sdk: server url missing")
	ErrNoToken     = errors.New("sdk: credential missing")

	// transport
	ErrConnection = errors.New("sdk: cannot connect to server")

	// status classes
	ErrUnauthorized = errors.New("sdk: unauthorized")
	ErrNotFound     = errors.New("sdk: not found")
)

// APIError is a non-2xx response from the PDF API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d - %s", e.Status, e.Detail)
}

// Unwrap maps the status onto the sentinels callers branch on.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// errorBody is the API's error envelope. detail is a string, or a list of
// validation entries for malformed requests.
type errorBody struct {
	Detail any `json:"detail"`
}

func (b *errorBody) message() string {
	switch d := b.Detail.(type) {
	case string:
		return d
	case []any:
		msgs := make([]string, 0, len(d))
		for _, item := range d {
			if m, ok := item.(map[string]any); ok {
				if msg, ok := m["msg"].(string); ok {
					msgs = append(msgs, msg)
				}
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// ErrorDetail returns the server supplied detail of err, or fallback.
func ErrorDetail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// handleAPIError converts a req outcome into the sdk's error taxonomy
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		if resp == nil || resp.Response == nil {
			return fmt.Errorf("%s: %w: %w", operation, ErrConnection, requestErr)
		}
		return fmt.Errorf("%s: %w", operation, requestErr)
	}

	if resp.IsErrorState() {
		apiErr := &APIError{Status: resp.GetStatusCode()}

		var body errorBody
		if raw := resp.Bytes(); len(raw) > 0 {
			if err := jsonUnmarshal(raw, &body); err == nil {
				apiErr.Detail = body.message()
			}
		}

		return fmt.Errorf("%s: %w", operation, apiErr)
	}

	return nil
}
