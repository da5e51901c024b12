// Package gateway provides a uniform interface to the upstream capability
// providers: geocoding, nearby-places search, directions, and generative
// text. Every call is bounded by the caller's context deadline and returns
// either a typed payload or a typed *Error. The gateway never retries;
// retry policy belongs to call sites with their own latency budgets.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an upstream failure.
type ErrorKind int

const (
	// KindTimeout means the call exceeded its deadline.
	KindTimeout ErrorKind = iota
	// KindRateLimited means the provider rejected the call with a quota error.
	KindRateLimited
	// KindInvalidResponse means the provider answered with a payload the
	// gateway could not interpret.
	KindInvalidResponse
	// KindUnavailable covers transport failures and other upstream errors.
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindRateLimited:
		return "rate_limited"
	case KindInvalidResponse:
		return "invalid_response"
	default:
		return "unavailable"
	}
}

// Error is a typed upstream failure. Orchestrators convert these into
// missing pieces of a composite result or fallback content; they are
// never propagated to HTTP callers.
type Error struct {
	Kind     ErrorKind
	Provider string
	Op       string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Provider, e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds a typed gateway error.
func newError(kind ErrorKind, provider, op string, err error) *Error {
	return &Error{Kind: kind, Provider: provider, Op: op, Err: err}
}

// wrapTransport classifies a transport-level failure, promoting context
// deadline and cancellation errors to KindTimeout.
func wrapTransport(provider, op string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newError(KindTimeout, provider, op, err)
	}
	return newError(KindUnavailable, provider, op, err)
}

// classifyStatus maps an HTTP status code to an error kind.
func classifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500:
		return KindUnavailable
	default:
		return KindInvalidResponse
	}
}

// KindOf extracts the error kind; ok is false when err is not a gateway error.
func KindOf(err error) (ErrorKind, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return 0, false
}

// IsTimeout reports whether err is a gateway timeout.
func IsTimeout(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindTimeout
}
