package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind separates retryable infrastructure faults from non-retryable
// request faults.
type ErrorKind string

const (
	// KindTransient marks timeouts, rate limits and 5xx-equivalent failures.
	KindTransient ErrorKind = "transient"
	// KindPermanent marks authentication and malformed-request failures.
	KindPermanent ErrorKind = "permanent"
)

// CallError is the error surface of the reasoning call gateway. Only
// transient call errors are retried; everything else propagates to the
// invoking phase.
type CallError struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *CallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s call error (%s, HTTP %d): %s", e.Kind, e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s call error (%s): %s", e.Kind, e.Provider, e.Message)
}

func (e *CallError) Unwrap() error { return e.Err }

// Transient builds a retryable call error.
func Transient(provider, message string, err error) *CallError {
	return &CallError{Kind: KindTransient, Provider: provider, Message: message, Err: err}
}

// Permanent builds a non-retryable call error.
func Permanent(provider, message string, err error) *CallError {
	return &CallError{Kind: KindPermanent, Provider: provider, Message: message, Err: err}
}

// IsTransient reports whether err is a retryable call error.
func IsTransient(err error) bool {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Kind == KindTransient
	}
	return false
}

// IsPermanent reports whether err is a non-retryable call error.
func IsPermanent(err error) bool {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Kind == KindPermanent
	}
	return false
}

// KindForStatusCode classifies an HTTP status code from a provider.
// Rate limits and server errors are transient; auth and request errors
// are permanent.
func KindForStatusCode(statusCode int) ErrorKind {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return KindTransient
	default:
		return KindPermanent
	}
}

// classifyTransportError maps a transport-level failure to a call error.
// Context cancellation is never retried; other network failures are.
func classifyTransportError(provider string, err error) *CallError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Permanent(provider, "request cancelled", err)
	}
	return Transient(provider, "transport failure", err)
}
