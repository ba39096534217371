package apiclient

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API call.
type Kind string

const (
	KindUnauthorized  Kind = "unauthorized"
	KindForbidden     Kind = "forbidden"
	KindNotFound      Kind = "not_found"
	KindServerError   Kind = "server_error"
	KindRequestFailed Kind = "request_failed"
	KindNetworkError  Kind = "network_error"
)

// Sentinels for errors.Is; every *Error matches the sentinel of its Kind.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrServerError   = errors.New("server error")
	ErrRequestFailed = errors.New("request failed")
	ErrNetworkError  = errors.New("network error")
)

var kindSentinels = map[Kind]error{
	KindUnauthorized:  ErrUnauthorized,
	KindForbidden:     ErrForbidden,
	KindNotFound:      ErrNotFound,
	KindServerError:   ErrServerError,
	KindRequestFailed: ErrRequestFailed,
	KindNetworkError:  ErrNetworkError,
}

// Error is the single failure type returned by the client. Message is
// always fit to show to the user; Cause is for logs only.
type Error struct {
	Kind    Kind
	Status  int // 0 when no response was received
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Detail is the message plus status and cause, for logging.
func (e *Error) Detail() string {
	s := fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func newError(kind Kind, status int, message string, cause error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Cause: cause}
}

// KindOf returns the kind of err, or "" when err did not come from the client.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// MessageOf returns the user-facing message of err, falling back to fallback
// for errors that did not come from the client.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
