// Package middleware exposes HTTP adapters for the session manager's
// admission gate, for hosts that render their views server-side.
//
// # Guards
//
//   - [RequireAuthenticated] — signed-in sessions only.
//   - [RequireAdmin] — signed-in sessions holding the admin role.
//   - [RequireGuest] — signed-out visitors only (sign-in, registration).
//
// Each guard asks the Manager for a Decision and either passes the request
// through or issues the redirect the Decision names.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Manager calls. It does NOT
// implement admission logic itself — all decisions are delegated to the
// Manager's gate.
package middleware
