// ABOUTME: Structural classification of bearer credentials into identity tokens vs API keys
// ABOUTME: Decides which verification path a credential takes, grants no trust itself

package auth

import (
	"strings"
)

// CredentialShape is the derived shape of a bearer credential.
type CredentialShape int

const (
	// OpaqueKey is a platform-issued API key, verified only by the
	// downstream platform on first use.
	OpaqueKey CredentialShape = iota

	// StructuredToken structurally resembles a provider-issued identity
	// token and is routed to the identity verifier.
	StructuredToken
)

// String returns the shape name for logging.
func (s CredentialShape) String() string {
	if s == StructuredToken {
		return "structured_token"
	}
	return "opaque_key"
}

// Classify inspects a non-empty bearer credential and picks a verification
// path. A credential is StructuredToken only if it has exactly three
// non-empty dot-separated segments where every segment is plausible
// base64url content. This is a syntactic pre-filter, not a signature check:
// a malformed three-segment string still routes to the structured path and
// is rejected there, rather than silently falling through to the opaque path.
func Classify(raw string) CredentialShape {
	segments := strings.Split(raw, ".")
	if len(segments) != 3 {
		return OpaqueKey
	}
	for _, seg := range segments {
		if !plausibleBase64URL(seg) {
			return OpaqueKey
		}
	}
	return StructuredToken
}

// plausibleBase64URL reports whether s is non-empty and contains only
// characters from the unpadded base64url alphabet.
func plausibleBase64URL(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
