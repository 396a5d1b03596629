// ABOUTME: Identity token verification against the external identity provider
// ABOUTME: Builds the normalized AuthContext for both credential paths

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Realm is the protection realm named in WWW-Authenticate challenges.
const Realm = "OAuth"

// Error codes used in 401 challenge responses (RFC 6750).
const (
	ErrorCodeInvalidToken = "invalid_token"
)

// AuthError is an authentication failure. It always maps to HTTP 401 with a
// WWW-Authenticate challenge; it is never converted to a 500.
type AuthError struct {
	Code        string // RFC 6750 error code, e.g. "invalid_token"
	Description string // human-readable description, safe to surface to the caller
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// invalidToken builds an AuthError with the invalid_token code.
func invalidToken(format string, args ...any) *AuthError {
	return &AuthError{Code: ErrorCodeInvalidToken, Description: fmt.Sprintf(format, args...)}
}

// TokenVerifier validates a structured identity token and extracts the
// stable subject identifier from the verified payload.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (subject string, err error)
}

// IdentityVerifier implements TokenVerifier against the identity provider's
// machine verification API using a server-held secret.
type IdentityVerifier struct {
	verifyURL string
	secretKey string
	client    *http.Client
}

// NewIdentityVerifier creates a verifier for the given provider endpoint.
// The secret key authenticates this server to the provider; it is never
// sent to the automation platform.
func NewIdentityVerifier(verifyURL, secretKey string) (*IdentityVerifier, error) {
	if verifyURL == "" {
		return nil, errors.New("identity verify URL is required")
	}
	if secretKey == "" {
		return nil, errors.New("identity secret key is required")
	}
	return &IdentityVerifier{
		verifyURL: verifyURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// verifyResponse is the provider's verification payload. Only the subject
// is consumed; everything else in the payload is provider-internal.
type verifyResponse struct {
	Subject string `json:"sub"`
}

// Verify calls the provider's verification API. A verification failure or a
// verified payload without a subject both surface as errors; the caller maps
// them to 401 semantics.
func (v *IdentityVerifier) Verify(ctx context.Context, token string) (string, error) {
	payload, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return "", fmt.Errorf("encoding verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.secretKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling identity provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading identity provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := providerErrorMessage(body)
		return "", fmt.Errorf("identity provider rejected token (status %d): %s", resp.StatusCode, msg)
	}

	var verified verifyResponse
	if err := json.Unmarshal(body, &verified); err != nil {
		return "", fmt.Errorf("decoding identity provider response: %w", err)
	}
	if verified.Subject == "" {
		return "", errors.New("verified token has no subject")
	}
	return verified.Subject, nil
}

// providerErrorMessage pulls a message out of a provider error body, falling
// back to the raw body when it is not the expected JSON shape.
func providerErrorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	if len(body) == 0 {
		return "no error detail"
	}
	return string(body)
}

// ContextBuilder turns a raw bearer credential into an AuthContext. Exactly
// one AuthContext is built per request.
type ContextBuilder struct {
	verifier TokenVerifier
}

// NewContextBuilder creates a builder backed by the given verifier. The
// verifier is only consulted for structured tokens.
func NewContextBuilder(verifier TokenVerifier) *ContextBuilder {
	return &ContextBuilder{verifier: verifier}
}

// Build classifies the credential and runs the matching path.
//
// Structured tokens are verified against the identity provider; any
// verification failure becomes an AuthError carrying the failure message.
// Opaque keys skip verification entirely: the platform issued the key and
// verifies it on first use, so a second check here would add a round trip
// with no added guarantee.
func (b *ContextBuilder) Build(ctx context.Context, raw string) (*AuthContext, error) {
	switch Classify(raw) {
	case StructuredToken:
		if b.verifier == nil {
			return nil, invalidToken("identity verification is not configured")
		}
		subject, err := b.verifier.Verify(ctx, raw)
		if err != nil {
			return nil, invalidToken("token verification failed: %v", err)
		}
		if subject == "" {
			return nil, invalidToken("token verification failed: empty subject")
		}
		token := raw
		return &AuthContext{
			Token:         raw,
			Scopes:        []string{ScopeOpenID},
			ClientID:      ClientID,
			UserID:        &subject,
			IdentityToken: &token,
		}, nil

	default:
		return &AuthContext{
			Token:    raw,
			Scopes:   []string{ScopeAPIKey},
			ClientID: ClientID,
		}, nil
	}
}
