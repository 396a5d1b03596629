// ABOUTME: HTTP request gate that authenticates every MCP entry method
// ABOUTME: Extracts the bearer credential, builds the AuthContext, and emits 401 challenges

package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// setCORSHeaders adds CORS headers. Present on every response, including
// error responses, so browser-based clients can read challenge details.
func setCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Mcp-Session-Id, Mcp-Protocol-Version")
	h.Set("Access-Control-Expose-Headers", "Mcp-Session-Id, WWW-Authenticate")
	h.Set("Access-Control-Max-Age", "86400")
}

// challengeError is the JSON body of a 401 response.
type challengeError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// writeChallenge writes a 401 response with a WWW-Authenticate challenge
// naming the realm, error code, and description.
func writeChallenge(w http.ResponseWriter, code, description string) {
	// Quotes inside the description would break the challenge parameter syntax.
	escaped := strings.ReplaceAll(description, `"`, `'`)
	w.Header().Set("WWW-Authenticate",
		`Bearer realm="`+Realm+`", error="`+code+`", error_description="`+escaped+`"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(challengeError{Error: code, ErrorDescription: description})
}

// Middleware creates the HTTP request gate for the MCP endpoint. Every read
// and write verb runs through it before reaching the protocol dispatcher:
//
//  1. CORS preflight requests bypass the gate entirely and get a fixed
//     CORS response with no body.
//  2. A missing or malformed bearer is a 401 invalid_token challenge.
//  3. The credential is classified and the matching path is run.
//  4. Any failure is a 401 with the failure message in the description,
//     never a 500.
//
// On success the AuthContext is attached to the request context with
// WithAuth, where handlers retrieve it via FromContext.
func Middleware(builder *ContextBuilder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			setCORSHeaders(w.Header())

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				writeChallenge(w, ErrorCodeInvalidToken, "Missing or invalid access token")
				return
			}

			authCtx, err := builder.Build(r.Context(), token)
			if err != nil {
				var authErr *AuthError
				if errors.As(err, &authErr) {
					logger.Debug("authentication failed",
						"code", authErr.Code,
						"description", authErr.Description,
					)
					writeChallenge(w, authErr.Code, authErr.Description)
					return
				}
				// Unexpected failures still map to 401 semantics with the
				// message interpolated into the description.
				logger.Warn("authentication failed with unexpected error", "error", err)
				writeChallenge(w, ErrorCodeInvalidToken, "Authentication failed: "+err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), authCtx)))
		})
	}
}
