package utils

import "net/url"

func MaskSecret(s string) string {
	if len(s) <= 4 {
		return "*****"
	}
	return s[:4] + "*****"
}

// MaskURL masks the value of every query parameter named in keys.
// Locator URLs carry the credential in the query string and must pass through here before logging.
func MaskURL(raw string, keys ...string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "*****"
	}

	q := u.Query()
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			q.Set(k, MaskSecret(v))
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
