package transport

import (
	"net/http"

	authgate "github.com/taskpilot/authgate"
)

// Authorizer is an http.RoundTripper that attaches the stored credential as
// a bearer Authorization header and forwards every response status to the
// Manager. Responses and errors pass through unmodified; a 401 triggers the
// Manager's forced sign-out as a side effect, never a retry.
type Authorizer struct {
	Manager *authgate.Manager

	// Base performs the actual round trip. nil means http.DefaultTransport.
	Base http.RoundTripper
}

// NewAuthorizer wraps base with credential attachment for the given manager.
func NewAuthorizer(manager *authgate.Manager, base http.RoundTripper) *Authorizer {
	return &Authorizer{Manager: manager, Base: base}
}

// Client returns an http.Client whose transport is this Authorizer.
func (a *Authorizer) Client() *http.Client {
	return &http.Client{Transport: a}
}

func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	base := a.Base
	if base == nil {
		base = http.DefaultTransport
	}

	// Clone before mutating headers; RoundTrippers must not modify the
	// caller's request.
	if token, ok := a.Manager.Token(); ok && req.Header.Get("Authorization") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
		a.Manager.ObserveRequestAuthorized(req.Context())
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		a.Manager.ObserveStatus(req.Context(), 0)
		return resp, err
	}

	a.Manager.ObserveStatus(req.Context(), resp.StatusCode)
	return resp, nil
}
