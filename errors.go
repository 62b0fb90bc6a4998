package authgate

import (
	"errors"

	"github.com/taskpilot/authgate/issuer"
	"github.com/taskpilot/authgate/token"
)

// Transport-classified failures surfaced by the issuer client. They are
// re-exported here so callers can match with errors.Is without importing
// the issuer package.
var (
	// ErrNetworkUnreachable reports that no response was received at all.
	ErrNetworkUnreachable = issuer.ErrNetworkUnreachable
	// ErrUnauthorized reports an invalid or expired session (401).
	ErrUnauthorized = issuer.ErrUnauthorized
	// ErrForbidden reports a valid session with insufficient privilege (403).
	ErrForbidden = issuer.ErrForbidden
	// ErrBadRequest reports a malformed client payload (400).
	ErrBadRequest = issuer.ErrBadRequest
	// ErrServerFault reports an issuer-side failure (5xx).
	ErrServerFault = issuer.ErrServerFault
)

var (
	// ErrMalformedCredential reports a credential whose claims segment could
	// not be decoded. Malformed credentials are always treated as expired.
	ErrMalformedCredential = token.ErrMalformed
	// ErrCorruptPersistedState reports an unparseable stored profile
	// snapshot. The store is cleared defensively when this is returned.
	ErrCorruptPersistedState = errors.New("corrupt persisted session state")
	// ErrNoSession reports an operation that requires a stored credential
	// while none is present.
	ErrNoSession = errors.New("no active session")
	// ErrLoginSuperseded reports a login that resolved after a concurrent
	// logout invalidated its generation. Store and state are untouched.
	ErrLoginSuperseded = errors.New("login superseded by logout")
	// ErrManagerNotReady reports use of a Manager that was not built.
	ErrManagerNotReady = errors.New("manager not initialized")
)

// AuthError carries the transport status and the server-provided message of
// a failed issuer call. It unwraps to one of the transport sentinels above.
type AuthError = issuer.Error
