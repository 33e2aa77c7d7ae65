// Package ai talks to the hosted language model used for page analysis,
// classification and grounded chat.
package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the service answers without any text.
var ErrEmptyResponse = errors.New("empty response from AI")

// Completion is a single system + user exchange.
type Completion struct {
	System string
	User   string
	// JSON asks the service for a JSON object response.
	JSON bool
}

// Client is the narrow surface the rest of the service depends on.
type Client interface {
	// Generate reads and analyses the page at url and returns the raw
	// response envelope as JSON.
	Generate(ctx context.Context, url string) ([]byte, error)
	// Complete runs one chat completion and returns the message content.
	Complete(ctx context.Context, c Completion) (string, error)
}
