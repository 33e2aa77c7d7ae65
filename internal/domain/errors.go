package domain

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidInput marks a request rejected before any network call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned by stores for unknown link ids.
	ErrNotFound = errors.New("link not found")

	// ErrStoreUnavailable wraps every other store failure.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrExtraction marks a failed call to the AI content service.
	ErrExtraction = errors.New("extraction failed")
)

// Message returns the user-facing part of err: the text after the sentinel
// prefix when err wraps one of the errors above as "%w: ...".
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{ErrInvalidInput, ErrNotFound, ErrStoreUnavailable, ErrExtraction} {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return rest
		}
	}
	return msg
}
