// ABOUTME: Browser pool operations against the platform API
// ABOUTME: Pools keep warm browser sessions for acquire/release cycling

package platform

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// BrowserPool is a set of pre-warmed browser sessions.
type BrowserPool struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Size      int       `json:"size"`
	Available int       `json:"available"`
	InUse     int       `json:"in_use"`
	Stealth   bool      `json:"stealth,omitempty"`
	Headless  bool      `json:"headless,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// CreateBrowserPoolRequest holds parameters for creating a pool.
type CreateBrowserPoolRequest struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Stealth  bool   `json:"stealth,omitempty"`
	Headless bool   `json:"headless,omitempty"`
	ProxyID  string `json:"proxy_id,omitempty"`
}

// CreateBrowserPool provisions a new pool.
func (c *Client) CreateBrowserPool(ctx context.Context, req CreateBrowserPoolRequest) (*BrowserPool, error) {
	var pool BrowserPool
	if err := c.do(ctx, http.MethodPost, "/browser_pools", nil, req, &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

// ListBrowserPools returns all pools owned by the caller.
func (c *Client) ListBrowserPools(ctx context.Context) ([]BrowserPool, error) {
	return listAll[BrowserPool](ctx, c, "/browser_pools", nil)
}

// GetBrowserPool fetches a pool by id or name; the platform resolves either.
func (c *Client) GetBrowserPool(ctx context.Context, idOrName string) (*BrowserPool, error) {
	var pool BrowserPool
	if err := c.do(ctx, http.MethodGet, "/browser_pools/"+url.PathEscape(idOrName), nil, nil, &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

// DeleteBrowserPool removes a pool and terminates its sessions.
func (c *Client) DeleteBrowserPool(ctx context.Context, idOrName string) error {
	return c.do(ctx, http.MethodDelete, "/browser_pools/"+url.PathEscape(idOrName), nil, nil, nil)
}

// FlushBrowserPool discards the pool's current sessions and rewarms it.
func (c *Client) FlushBrowserPool(ctx context.Context, idOrName string) error {
	return c.do(ctx, http.MethodPost, "/browser_pools/"+url.PathEscape(idOrName)+"/flush", nil, nil, nil)
}

// AcquireBrowser checks a session out of the pool. The timeout is forwarded
// to the platform, which does the waiting.
func (c *Client) AcquireBrowser(ctx context.Context, idOrName string, timeoutSeconds int) (*Browser, error) {
	body := map[string]int{}
	if timeoutSeconds > 0 {
		body["timeout_seconds"] = timeoutSeconds
	}
	var browser Browser
	if err := c.do(ctx, http.MethodPost, "/browser_pools/"+url.PathEscape(idOrName)+"/acquire", nil, body, &browser); err != nil {
		return nil, err
	}
	return &browser, nil
}

// ReleaseBrowser returns a session to its pool.
func (c *Client) ReleaseBrowser(ctx context.Context, idOrName, sessionID string) error {
	body := map[string]string{"session_id": sessionID}
	return c.do(ctx, http.MethodPost, "/browser_pools/"+url.PathEscape(idOrName)+"/release", nil, body, nil)
}
