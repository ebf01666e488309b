package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// NoResponse is returned as the reply text when the model answers with no
// candidate text.
const NoResponse = "No response from Gemini API"

var (
	ErrMissingAPIKey     = errors.New("llm: API key not configured")
	ErrCircuitOpen       = errors.New("llm: circuit breaker open")
	ErrMalformedResponse = errors.New("llm: malformed response")
)

// Generator turns a prompt into the model's raw reply text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// UpstreamError is a non-2xx answer from the model provider.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// IsTransient reports whether a failed call is worth retrying: network
// failures, timeouts, 429 and 5xx answers. A missing key, a cancelled
// caller, an undecodable body and other 4xx answers are permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMissingAPIKey) || errors.Is(err, ErrMalformedResponse) ||
		errors.Is(err, context.Canceled) {
		return false
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode == http.StatusTooManyRequests || upstream.StatusCode >= 500
	}
	return true
}
