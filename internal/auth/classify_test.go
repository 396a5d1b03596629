// ABOUTME: Tests for structural credential classification
// ABOUTME: Covers the three-segment base64url heuristic and opaque fallthrough

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStructuredToken(t *testing.T) {
	// A real signed token always has three base64url segments.
	claims := jwt.MapClaims{
		"sub": "user_2x8Qk",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("classify-test-secret"))
	require.NoError(t, err)

	assert.Equal(t, StructuredToken, Classify(token))
}

func TestClassifyShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want CredentialShape
	}{
		{"three plausible segments", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ1In0.c2ln", StructuredToken},
		{"single char segments", "a.b.c", StructuredToken},
		{"segments with url alphabet", "a-b_c.0-1_2.x-y_z", StructuredToken},
		{"opaque platform key", "sk_live_8f3a2b1c9d", OpaqueKey},
		{"two segments", "abc.def", OpaqueKey},
		{"four segments", "a.b.c.d", OpaqueKey},
		{"empty middle segment", "abc..def", OpaqueKey},
		{"trailing dot", "abc.def.", OpaqueKey},
		{"leading dot", ".abc.def", OpaqueKey},
		{"padding characters", "ab==.cd.ef", OpaqueKey},
		{"plus is not base64url", "a+b.cd.ef", OpaqueKey},
		{"slash is not base64url", "a/b.cd.ef", OpaqueKey},
		{"whitespace inside segment", "ab c.de.fg", OpaqueKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.raw), "Classify(%q)", tt.raw)
		})
	}
}

func TestCredentialShapeString(t *testing.T) {
	assert.Equal(t, "structured_token", StructuredToken.String())
	assert.Equal(t, "opaque_key", OpaqueKey.String())
}
