// Package transport attaches the stored session credential to outgoing HTTP
// requests and reports response statuses back to the session manager.
//
// # Architecture boundaries
//
// This package translates http.RoundTripper semantics into Manager calls.
// It does NOT decide what a status means — the Manager owns the reaction,
// including the forced sign-out on 401.
//
// # What this package must NOT do
//
//   - Retry, replay, or issue follow-up requests.
//   - Swallow or rewrite errors and responses; callers see exactly what the
//     wire produced.
//   - Inspect or parse the credential it attaches.
package transport
