package pdfsdk

import (
	"net/url"
	"strconv"
	"strings"
)

// tokenParam is the query parameter the view endpoint reads the credential from
const tokenParam = "token"

// Locator builds fetchable addresses for protected document streams.
//
// The rendering engine issues its own GET and cannot attach an Authorization header,
// so the credential travels in the query string. A locator URL is exactly as sensitive
// as the credential: never log it unmasked, never persist it.
type Locator struct {
	baseURL string
}

func NewLocator(baseURL string) *Locator {
	return &Locator{baseURL: strings.TrimRight(baseURL, "/")}
}

// ViewURL returns {base}/pdf/{id}/view?token={credential}
func (l *Locator) ViewURL(id int64, credential string) (string, error) {
	if credential == "" {
		return "", ErrNoToken
	}

	q := url.Values{}
	q.Set(tokenParam, credential)

	return l.baseURL + "/pdf/" + strconv.FormatInt(id, 10) + "/view?" + q.Encode(), nil
}

// MaskedKeys lists the query keys that must be masked before a locator URL is logged.
func (l *Locator) MaskedKeys() []string {
	return []string{tokenParam}
}
