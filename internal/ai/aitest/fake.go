// Package aitest provides an in-memory ai.Client for tests.
package aitest

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/linkvault/internal/ai"
)

// Fake answers Generate with Envelope and Complete with Reply (or the matching
// error). It records every call.
type Fake struct {
	Envelope    []byte
	GenerateErr error

	Reply       string
	CompleteErr error
	// Replies overrides Reply per system prompt when set.
	Replies map[string]string

	mu          sync.Mutex
	Generated   []string
	Completions []ai.Completion
}

var _ ai.Client = (*Fake)(nil)

func (f *Fake) Generate(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Generated = append(f.Generated, url)
	if f.GenerateErr != nil {
		return nil, f.GenerateErr
	}
	return f.Envelope, nil
}

func (f *Fake) Complete(_ context.Context, c ai.Completion) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Completions = append(f.Completions, c)
	if f.CompleteErr != nil {
		return "", f.CompleteErr
	}
	if r, ok := f.Replies[c.System]; ok {
		return r, nil
	}
	return f.Reply, nil
}

// Calls returns the number of Generate and Complete calls so far.
func (f *Fake) Calls() (generate, complete int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Generated), len(f.Completions)
}
