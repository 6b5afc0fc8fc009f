// Package reasoning defines the port to the external natural-language
// reasoning service. Its output is untrusted text: callers must parse and
// validate it, and fall back to deterministic output when the call fails.
package reasoning

import (
	"context"
	"errors"
)

// Errors returned by reasoning clients. Callers treat any error from
// Complete as a recoverable fault that routes to the fallback path.
var (
	// ErrUnavailable is returned when no reasoning service is configured
	// or the service cannot be reached.
	ErrUnavailable = errors.New("reasoning service unavailable")
)

// Client is the completion port to the reasoning service.
type Client interface {
	// Complete sends a prompt and returns the raw completion text.
	// The returned text is untrusted and may not be well-formed.
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// Stub is a deterministic Client that always reports the service as
// unavailable, forcing callers onto their fallback path. Used when no
// API key is configured and throughout the tests.
type Stub struct{}

// NewStub creates a new stub reasoning client.
func NewStub() *Stub {
	return &Stub{}
}

// Complete always returns ErrUnavailable.
func (*Stub) Complete(context.Context, string, float64) (string, error) {
	return "", ErrUnavailable
}

// Ensure Stub implements Client interface.
var _ Client = (*Stub)(nil)
