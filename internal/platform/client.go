// ABOUTME: Typed HTTP client for the Gantry automation platform API
// ABOUTME: Owns request signing, error shaping, and pagination cursor handling

package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// maxPages caps cursor-following on list calls so a misbehaving backend
// cannot loop the adapter forever.
const maxPages = 32

// maxErrorBody limits how much of an error response body is read.
const maxErrorBody = 1 << 16

// APIError is a non-2xx response from the platform API.
type APIError struct {
	Status  int    // HTTP status code
	Code    string // platform error code, may be empty
	Message string // human-readable message
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("platform API error (status %d, %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("platform API error (status %d): %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a platform 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Config holds configuration for a platform client.
type Config struct {
	BaseURL string
	Token   string // the caller's bearer credential, forwarded on every request

	HTTPClient *http.Client // optional; defaults to a client with no timeout
	Logger     *slog.Logger // optional
}

// Client is a per-request platform API client bound to one caller's
// credential. It holds no mutable state and is safe for the sequential use
// a single tool invocation makes of it.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient creates a client bound to the given credential. Timeouts are
// caller-supplied request parameters passed to the platform, not enforced
// locally, so the underlying HTTP client carries no timeout of its own;
// cancellation flows through the request context.
func NewClient(cfg Config) *Client {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpc:   httpc,
		logger:  logger,
	}
}

// do performs a JSON request against the platform API. A nil out skips
// response decoding. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.send(ctx, method, path, query, body, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading platform response: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding platform response: %w", err)
	}
	return nil
}

// doRaw performs a request and returns the raw response body and content
// type. Used for binary payloads like screenshots.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, string, error) {
	resp, err := c.send(ctx, method, path, query, body, "")
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading platform response: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// send issues the request and maps non-2xx responses to *APIError. The
// caller owns the response body on success.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, accept string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("building platform request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Request-Id", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling platform API: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, readAPIError(resp)
	}
	return resp, nil
}

// readAPIError shapes a non-2xx response into an *APIError.
func readAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{Status: resp.StatusCode}
	var parsed struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil {
		apiErr.Code = parsed.Code
		if parsed.Message != "" {
			apiErr.Message = parsed.Message
		} else {
			apiErr.Message = parsed.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// page is the wire shape of one page of a cursor-paginated list response.
type page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor"`
}

// listAll follows next_cursor until the backend reports no more pages.
func listAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var items []T
	cursor := ""
	for i := 0; i < maxPages; i++ {
		q := url.Values{}
		for k, vs := range query {
			q[k] = vs
		}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var p page[T]
		if err := c.do(ctx, http.MethodGet, path, q, nil, &p); err != nil {
			return nil, err
		}
		items = append(items, p.Items...)
		if p.NextCursor == "" {
			return items, nil
		}
		cursor = p.NextCursor
	}
	c.logger.Warn("pagination cap reached", "path", path, "pages", maxPages)
	return items, nil
}
