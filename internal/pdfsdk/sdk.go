package pdfsdk

import (
	"time"

	"github.com/google/uuid"
	"github.com/imroc/req/v3"
	"github.com/openmined/pdfdesk/internal/utils"
	"github.com/openmined/pdfdesk/internal/version"
)

const defaultTimeout = 60 * time.Second

// PDFSDK is the client for the PDF document API.
// Every call is a single attempt; there is no retry policy.
type PDFSDK struct {
	client    *req.Client
	baseURL   string
	Auth      *AuthAPI
	Documents *DocumentAPI
	Locator   *Locator
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string) (*PDFSDK, error) {
	if err := utils.ValidateURL(baseURL); err != nil {
		return nil, ErrNoServerURL
	}

	client := req.C().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetUserAgent(UserAgent).
		SetCommonHeader(HeaderVersion, version.Version).
		SetCommonHeader(HeaderDeviceID, DeviceID).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal).
		OnBeforeRequest(func(_ *req.Client, r *req.Request) error {
			r.SetHeader(HeaderRequestID, uuid.NewString())
			return nil
		})

	return &PDFSDK{
		client:    client,
		baseURL:   baseURL,
		Auth:      newAuthAPI(client),
		Documents: newDocumentAPI(client),
		Locator:   NewLocator(baseURL),
	}, nil
}

// SetToken attaches the bearer credential to every subsequent request.
// An empty token removes it.
func (s *PDFSDK) SetToken(token string) {
	if token == "" {
		s.client.Headers.Del("Authorization")
		return
	}
	s.client.SetCommonBearerAuthToken(token)
}

func (s *PDFSDK) BaseURL() string {
	return s.baseURL
}

func (s *PDFSDK) Close() {
	s.client.GetTransport().CloseIdleConnections()
}
