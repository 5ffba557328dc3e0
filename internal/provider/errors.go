package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
)

// StatusError is a provider API failure with its HTTP status.
type StatusError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error { return e.Err }

// Friendly replaces SDK and network errors with messages a user can act on.
// The original error stays reachable through errors.Unwrap.
func Friendly(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}

	var oaiErr *openai.Error
	if errors.As(err, &oaiErr) {
		return &StatusError{StatusCode: oaiErr.StatusCode, Message: statusMessage(oaiErr.StatusCode, oaiErr.Message), Err: err}
	}
	var antErr *anthropic.Error
	if errors.As(err, &antErr) {
		return &StatusError{StatusCode: antErr.StatusCode, Message: statusMessage(antErr.StatusCode, ""), Err: err}
	}

	if msg := networkMessage(err); msg != err.Error() {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}

// statusMessage prefers the provider's own message and falls back to a
// description of the status code.
func statusMessage(statusCode int, providerMsg string) string {
	if providerMsg != "" {
		return providerMsg
	}
	switch statusCode {
	case 401:
		return "authentication failed, check your API key"
	case 403:
		return "access denied, your API key may not have the required permissions"
	case 404:
		return "model or endpoint not found"
	case 429:
		return "rate limited, too many requests"
	case 500:
		return "internal server error on the provider side"
	case 502, 503:
		return "provider service temporarily unavailable"
	case 529:
		return "provider is overloaded, please try again later"
	}
	return "request failed"
}

func networkMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection refused (is the service running?)"
	case strings.Contains(msg, "no such host"):
		return "host not found (check the URL)"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "connection timed out"
	case strings.Contains(msg, "reset by peer"):
		return "connection reset by server"
	case strings.Contains(msg, "EOF"):
		return "connection closed unexpectedly"
	}
	return msg
}
