// ABOUTME: Client for the documentation search backend
// ABOUTME: Separate credential and base URL from the platform API

package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DocHit is one documentation search result.
type DocHit struct {
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// DocsClient queries the documentation search backend. Unlike Client it is
// process-wide: the docs backend takes a server credential, not the
// caller's.
type DocsClient struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewDocsClient creates a docs search client. The API key is optional; some
// deployments front a public index.
func NewDocsClient(baseURL, apiKey string) *DocsClient {
	return &DocsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Search queries the docs index. Limit caps the number of hits; zero lets
// the backend choose.
func (d *DocsClient) Search(ctx context.Context, query string, limit int) ([]DocHit, error) {
	body := map[string]any{"query": query}
	if limit > 0 {
		body["limit"] = limit
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding docs query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building docs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	resp, err := d.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling docs backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("docs backend error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var result struct {
		Hits []DocHit `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding docs response: %w", err)
	}
	return result.Hits, nil
}
