package authgate

import (
	"github.com/taskpilot/authgate/credstore"
	"github.com/taskpilot/authgate/internal/state"
	"github.com/taskpilot/authgate/issuer"
)

// UserProfile is the signed-in account snapshot held in session state and
// persisted alongside the token.
type UserProfile = state.Profile

// Store is the persistent credential store contract. Backends live in the
// credstore package.
type Store = credstore.Store

// Role identifiers assigned by the issuer.
const (
	RoleAdmin = 1
	RoleUser  = 2
)

// LoginResult is returned by a successful sign-in.
type LoginResult struct {
	Token   string
	Message string
	User    UserProfile
}

// RegisterResult is returned by a successful registration. Registration
// never signs the account in.
type RegisterResult struct {
	Message string
}

// Credentials are the sign-in inputs relayed verbatim to the issuer. OTP may
// be empty when the account has no second factor.
type Credentials struct {
	Username string
	Password string
	OTP      string
}

// Registration is the account-creation input.
type Registration struct {
	Username string
	Email    string
	Password string
}

// Navigator is the host application's route changer. The manager calls it
// when a session transition demands a view change: sign-out lands on the
// sign-in route, a guard denial redirects per its Decision.
//
// Implementations must be safe for concurrent use and must not call back
// into the Manager.
type Navigator interface {
	NavigateTo(route string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route string)

func (f NavigatorFunc) NavigateTo(route string) { f(route) }

// LoginRequest et al. are re-exported for callers that talk to the issuer
// client directly.
type (
	LoginRequest    = issuer.LoginRequest
	RegisterRequest = issuer.RegisterRequest
)
