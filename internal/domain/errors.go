package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrURLRequired is returned when an analysis request carries no url.
	ErrURLRequired = errors.New("url required")

	// ErrInvalidURL is returned when the url does not look like a YouTube
	// video link.
	ErrInvalidURL = errors.New("invalid url")

	// ErrParse is returned when no decodable JSON object can be located in
	// an AI completion. Callers must fall back, never surface it.
	ErrParse = errors.New("no decodable JSON object in AI response")

	// ErrAIDisabled is returned when no AI provider is configured.
	ErrAIDisabled = errors.New("AI provider not configured")
)

// ProviderError wraps a failed external call (metadata fetch or AI
// completion). It is absorbed at the analysis boundary and never turns into a
// non-200 response.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
