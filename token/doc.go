// Package token decodes credential claims without contacting the network.
//
// The client side of the system never holds verification keys: signatures
// belong to the issuer. This package therefore only splits the credential,
// base64url-decodes the claims segment, and inspects the embedded expiry.
// Every decode failure is reported as expired — fail closed, never open.
package token
