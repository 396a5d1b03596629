// ABOUTME: Authorization context for tracking caller identity through request handlers
// ABOUTME: Provides WithAuth/FromContext for propagating auth info via context

package auth

import (
	"context"
)

// ClientID is the fixed identifier this server reports for every
// authorization context it constructs, regardless of credential path.
const ClientID = "gantry-mcp"

// Scope labels attached to the two credential paths.
const (
	ScopeOpenID = "openid"
	ScopeAPIKey = "apikey"
)

// AuthContext is the normalized authorization object built once per request.
// It is the sole carrier of caller identity into resource and tool handlers;
// handlers never read request headers directly. Immutable after construction.
type AuthContext struct {
	Token    string   // raw bearer credential, forwarded to the platform API
	Scopes   []string // {"openid"} for identity tokens, {"apikey"} for platform keys
	ClientID string   // always ClientID

	// Extra fields populated only on the structured-token path.
	UserID        *string // verified subject identifier, nil for opaque keys
	IdentityToken *string // the raw identity token, nil for opaque keys
}

// HasScope reports whether the context carries the given scope.
func (a *AuthContext) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// authContextKey is the key type for storing AuthContext in context.Context.
type authContextKey struct{}

// WithAuth returns a new context with the AuthContext attached.
func WithAuth(ctx context.Context, auth *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, auth)
}

// FromContext retrieves the AuthContext from the context, returning nil if not present.
func FromContext(ctx context.Context) *AuthContext {
	val := ctx.Value(authContextKey{})
	if val == nil {
		return nil
	}
	auth, ok := val.(*AuthContext)
	if !ok {
		return nil
	}
	return auth
}
