package genai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies a failed call for the operator-facing message.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidCredentials
	KindRateLimited
	KindBadRequest
	KindServiceFailure
	KindNetwork
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindRateLimited:
		return "rate_limited"
	case KindBadRequest:
		return "bad_request"
	case KindServiceFailure:
		return "service_failure"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method on failure.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 when no response arrived
	Message string // detail from the service or transport
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("genai %s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("genai %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage is safe to show on the dashboard.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindInvalidCredentials:
		return "The content service rejected the API key. Check the configured credentials."
	case KindRateLimited:
		return "Too many generation requests. Wait a moment and try again."
	case KindBadRequest:
		return "The content service could not process this prompt. Rephrase it and try again."
	case KindServiceFailure:
		return "The content service is temporarily unavailable. Try again later."
	case KindNetwork:
		return "Could not reach the content service. Check the network connection."
	case KindTimeout:
		return "Generation took too long and was abandoned."
	default:
		return "Content generation failed."
	}
}

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func classifyStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindInvalidCredentials
	case code == http.StatusTooManyRequests:
		return KindRateLimited
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return KindBadRequest
	case code >= 500:
		return KindServiceFailure
	default:
		return KindUnknown
	}
}

// transportError classifies a failure that happened before any response.
func transportError(ctx context.Context, err error) *Error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &ne) && ne.Timeout()) {
		return &Error{Kind: KindTimeout, Message: "request timed out", Err: err}
	}
	return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
}
