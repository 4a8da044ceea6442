package auth

import (
	"net/url"
	"strings"
)

// ReadCookieValue extracts the named cookie from a raw Cookie header.
// The header is split on ";", each segment on its first "=", and the
// value is url-decoded. Returns false when the cookie is absent.
func ReadCookieValue(header, name string) (string, bool) {
	if header == "" {
		return "", false
	}

	for _, segment := range strings.Split(header, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(segment), "=")
		if !found || key != name {
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			return decoded, true
		}
		return value, true
	}

	return "", false
}
