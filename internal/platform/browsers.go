// ABOUTME: Browser session operations against the platform API
// ABOUTME: Create, list, get, and delete remote browser VMs

package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Browser is a remote browser session owned by the platform.
type Browser struct {
	SessionID   string    `json:"session_id"`
	CDPWSURL    string    `json:"cdp_ws_url,omitempty"`
	LiveViewURL string    `json:"browser_live_view_url,omitempty"`
	Headless    bool      `json:"headless,omitempty"`
	Stealth     bool      `json:"stealth,omitempty"`
	ProfileName string    `json:"profile_name,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// CreateBrowserRequest holds parameters for creating a browser session.
// ProfileName and ProfileID address the same profile namespace two ways and
// are mutually exclusive; the tool layer rejects requests carrying both.
type CreateBrowserRequest struct {
	ProfileName    string `json:"profile_name,omitempty"`
	ProfileID      string `json:"profile_id,omitempty"`
	ProxyID        string `json:"proxy_id,omitempty"`
	Stealth        bool   `json:"stealth,omitempty"`
	Headless       bool   `json:"headless,omitempty"`
	ViewportWidth  int    `json:"viewport_width,omitempty"`
	ViewportHeight int    `json:"viewport_height,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// CreateBrowser provisions a new browser session.
func (c *Client) CreateBrowser(ctx context.Context, req CreateBrowserRequest) (*Browser, error) {
	var browser Browser
	if err := c.do(ctx, http.MethodPost, "/browsers", nil, req, &browser); err != nil {
		return nil, err
	}
	return &browser, nil
}

// ListBrowsers returns all live browser sessions for the caller.
func (c *Client) ListBrowsers(ctx context.Context) ([]Browser, error) {
	return listAll[Browser](ctx, c, "/browsers", nil)
}

// GetBrowser fetches a single browser session by id.
func (c *Client) GetBrowser(ctx context.Context, sessionID string) (*Browser, error) {
	var browser Browser
	if err := c.do(ctx, http.MethodGet, "/browsers/"+url.PathEscape(sessionID), nil, nil, &browser); err != nil {
		return nil, err
	}
	return &browser, nil
}

// DeleteBrowser terminates a browser session.
func (c *Client) DeleteBrowser(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	return c.do(ctx, http.MethodDelete, "/browsers/"+url.PathEscape(sessionID), nil, nil, nil)
}
