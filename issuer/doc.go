// Package issuer is the HTTP client for the authentication server that
// issues and validates credentials. The server is a black box to this
// module: the client sends login/register payloads, relays the otp string
// opaquely, and surfaces non-2xx responses as [Error] values carrying the
// transport status and the server-provided message.
package issuer
