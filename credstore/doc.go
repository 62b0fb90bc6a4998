// Package credstore provides durable key-value persistence for the current
// credential and profile snapshot.
//
// The contract is deliberately dumb: all operations are synchronous and
// total. A backend failure is reported as "absent" on reads and ignored on
// writes — validation of content is the token inspector's job, and reacting
// to a missing session is the session manager's. Both slots are always
// written and cleared together, never independently.
package credstore
