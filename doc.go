// Package authgate is the client-side session manager for the TaskPilot
// issuer: it establishes, caches, validates, and propagates the signed-in
// identity and role of a single user across an application process.
//
// The package is the single writer of session state. [Manager] orchestrates
// login, registration, logout, and profile refresh; it writes the credential
// store and the in-memory session slot together so they never diverge.
// Admission decisions (the Admit methods returning [Decision]) and
// outgoing-request authorization (the transport package) both read through
// the Manager.
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Manager], [Builder], [Config],
// [Decision], and value types (UserProfile, AuditEvent, MetricsSnapshot).
// The session state slot lives under internal/ and is never exported; store
// backends, the issuer client, claim decoding, and the HTTP adapters live in
// their own packages.
//
// # What this package must NOT do
//
//   - Verify token signatures or issue credentials. The issuer owns token
//     cryptography; this side only decodes claims and fails closed on expiry.
//   - Retry, re-login, or otherwise create outgoing requests as a reaction
//     to an authorization failure.
//   - Render UI or perform navigation itself; guards return decisions and
//     the caller's router performs redirects.
//
// # Concurrency contract
//
// Manager methods are safe to call from multiple goroutines after
// initialization through [Builder.Build]. Session publications are FIFO.
// A logout advances the session generation, so a login that resolves after
// a concurrent logout is discarded rather than resurrecting the session.
package authgate
