package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies a provider failure by what the caller should do about it.
type Kind string

const (
	KindAuth      Kind = "auth"
	KindRateLimit Kind = "rate_limit"
	KindTimeout   Kind = "timeout"
	KindServer    Kind = "server"
	KindTransport Kind = "transport"
)

// Sentinels for errors.Is against an *APIError.
var (
	ErrAuth      = errors.New("authentication failed")
	ErrRateLimit = errors.New("rate limited")
	ErrTimeout   = errors.New("request timed out")
	ErrServer    = errors.New("provider returned an error status")
	ErrTransport = errors.New("transport failure")

	// ErrTruncated means the model stopped at its token limit.
	ErrTruncated = errors.New("response truncated at token limit")
)

// APIError is a failed call to a model provider.
type APIError struct {
	Provider   string
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d): %s", e.Provider, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAuth:
		return e.Kind == KindAuth
	case ErrRateLimit:
		return e.Kind == KindRateLimit
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrServer:
		return e.Kind == KindServer
	case ErrTransport:
		return e.Kind == KindTransport
	}
	return false
}

// Remedy suggests what the user can do next.
func (e *APIError) Remedy() string {
	switch e.Kind {
	case KindAuth:
		return "check the API key for " + e.Provider
	case KindRateLimit:
		return "wait a moment and try again"
	case KindTimeout:
		return "the deck may be too large; raise the timeout or use --skip-llm for rule-based scoring only"
	case KindTransport:
		return "check network connectivity and try again"
	}
	return "try again later or use --skip-llm for rule-based scoring only"
}

// kindForStatus maps a non-2xx HTTP status to a Kind.
func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusTooManyRequests:
		return KindRateLimit
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return KindTimeout
	}
	return KindServer
}

func statusError(provider string, status int, message string) *APIError {
	return &APIError{
		Provider:   provider,
		Kind:       kindForStatus(status),
		StatusCode: status,
		Message:    message,
	}
}

// transportError classifies a failure that produced no HTTP response.
func transportError(provider string, err error) *APIError {
	kind := KindTransport
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTimeout
	}
	return &APIError{Provider: provider, Kind: kind, Message: err.Error(), Err: err}
}
