package api

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure into a closed set that callers match on
// with errors.As or IsKind, instead of probing response shapes.
type Kind int

const (
	// KindTransport means no HTTP response was received at all.
	KindTransport Kind = iota
	// KindBadRequest is a 400, usually a validation failure.
	KindBadRequest
	// KindUnauthorized is a 401: missing or invalid credential.
	KindUnauthorized
	// KindForbidden is a 403: authenticated but not allowed.
	KindForbidden
	// KindNotFound is a 404.
	KindNotFound
	// KindClient is any other 4xx.
	KindClient
	// KindServer is any 5xx.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindBadRequest:
		return "bad request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindClient:
		return "client error"
	case KindServer:
		return "server error"
	default:
		return "unknown"
	}
}

// Error is the single failure type the gateway produces. Status is zero for
// transport failures. Message carries the server-supplied text when the
// response body had one, a generic fallback otherwise.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a gateway *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// UserMessage returns the server-supplied message from a gateway error, or
// fallback when err is of another type or carries no message.
func UserMessage(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
