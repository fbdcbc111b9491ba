package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrTruncated marks feedback cut off by the MaxTokens limit.
var ErrTruncated = errors.New("feedback truncated at max tokens")

// ProviderError reports a request the hosted model did not serve.
// Status is the HTTP status when the provider returned one, zero otherwise.
type ProviderError struct {
	Provider string
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	switch {
	case e.Status == http.StatusTooManyRequests:
		return fmt.Sprintf("%s: rate limited: %v", e.Provider, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: HTTP %d: %v", e.Provider, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s unavailable: %v", e.Provider, e.Err)
	}
	return e.Provider + " unavailable"
}

func (e *ProviderError) Unwrap() error { return e.Err }

// RateLimited reports whether the provider rejected the request with 429.
func (e *ProviderError) RateLimited() bool { return e.Status == http.StatusTooManyRequests }

// FeedbackError reports a response that arrived but cannot be used as
// feedback: malformed JSON, a schema violation, or truncation.
type FeedbackError struct {
	Schema  string
	Content json.RawMessage
	Err     error
}

func (e *FeedbackError) Error() string {
	if e.Schema == "" {
		return fmt.Sprintf("unusable feedback: %v", e.Err)
	}
	return fmt.Sprintf("unusable %s: %v", e.Schema, e.Err)
}

func (e *FeedbackError) Unwrap() error { return e.Err }

// providerError wraps a transport failure from the named provider.
func providerError(provider string, status int, err error) error {
	return &ProviderError{Provider: provider, Status: status, Err: err}
}
