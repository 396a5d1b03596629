// Package auth authenticates every request entering the gantry-mcp endpoint.
//
// # Credential Paths
//
// Incoming bearer credentials take one of two trust paths, picked by a
// structural classification (Classify):
//
//   - Structured identity tokens (three dot-separated base64url segments)
//     are verified against the external identity provider's machine API
//     with a server-held secret. The verified subject becomes the UserID.
//
//   - Everything else is an opaque platform API key. No verification call
//     is made here; the key is passed straight through and the platform
//     verifies it on first use.
//
// The classification grants no trust by itself. A malformed three-segment
// string still routes to the structured path and is rejected there with an
// authentication error rather than falling through to the opaque path.
//
// # AuthContext
//
// Both paths produce the same normalized AuthContext, attached to the
// request context by the Middleware gate and read by handlers via
// FromContext. Handlers never touch request headers.
//
// # Failure Semantics
//
// Authentication failures are the only error class allowed to short-circuit
// before the protocol dispatcher. They are always rendered as HTTP 401 with
// a WWW-Authenticate challenge naming the realm and error code, and a JSON
// body {error, error_description}. Verification exceptions surface their
// message in the description and never become a 500.
package auth
