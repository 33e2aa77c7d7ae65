package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// UnknownSource is used when the URL hostname cannot be determined.
const UnknownSource = "Unknown"

// ValidateURL checks that raw is a non-empty absolute URL with a host.
// It returns the trimmed URL on success.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: please enter a URL", ErrInvalidInput)
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: please enter a valid URL", ErrInvalidInput)
	}

	return raw, nil
}

// SourceFromURL returns the hostname of raw without a leading "www.".
// It never fails: unparsable input yields UnknownSource.
func SourceFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return UnknownSource
	}

	host := u.Hostname()
	if host == "" {
		return UnknownSource
	}

	return strings.TrimPrefix(host, "www.")
}
