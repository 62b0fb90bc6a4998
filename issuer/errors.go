package issuer

import (
	"errors"
	"fmt"
)

var (
	// ErrNetworkUnreachable reports that no response was received.
	ErrNetworkUnreachable = errors.New("issuer unreachable")
	// ErrUnauthorized reports a 401 response.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden reports a 403 response.
	ErrForbidden = errors.New("forbidden")
	// ErrBadRequest reports a 400 response.
	ErrBadRequest = errors.New("bad request")
	// ErrServerFault reports a 5xx response.
	ErrServerFault = errors.New("issuer server fault")
)

// Error is a failed issuer call. Status is the HTTP status code, or 0 when
// no response was received. Message is the server-provided detail when the
// error body carried one, otherwise a transport-level description. The
// original failure detail is never thrown away: Error unwraps to the
// matching transport sentinel and, for network failures, the causing error.
type Error struct {
	Status  int
	Message string

	cause error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("issuer: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("issuer: status %d", e.Status)
}

// Unwrap exposes the transport sentinel for errors.Is matching, plus the
// underlying cause for network failures.
func (e *Error) Unwrap() []error {
	var chain []error
	if s := sentinelForStatus(e.Status); s != nil {
		chain = append(chain, s)
	}
	if e.cause != nil {
		chain = append(chain, e.cause)
	}
	return chain
}

func sentinelForStatus(status int) error {
	switch {
	case status == 0:
		return ErrNetworkUnreachable
	case status == 401:
		return ErrUnauthorized
	case status == 403:
		return ErrForbidden
	case status == 400:
		return ErrBadRequest
	case status >= 500:
		return ErrServerFault
	default:
		return nil
	}
}
