// ABOUTME: Proxy configuration operations against the platform API
// ABOUTME: Proxies are attached to browsers at create time via proxy_id

package platform

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Proxy is a platform-managed or user-supplied proxy configuration.
type Proxy struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "datacenter", "residential", or "custom"
	Country   string    `json:"country,omitempty"`
	Host      string    `json:"host,omitempty"`
	Port      int       `json:"port,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// CreateProxyRequest holds parameters for registering a proxy. Host, Port,
// Username, and Password only apply to the "custom" type.
type CreateProxyRequest struct {
	Type     string `json:"type"`
	Country  string `json:"country,omitempty"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// CreateProxy registers a new proxy configuration.
func (c *Client) CreateProxy(ctx context.Context, req CreateProxyRequest) (*Proxy, error) {
	var proxy Proxy
	if err := c.do(ctx, http.MethodPost, "/proxies", nil, req, &proxy); err != nil {
		return nil, err
	}
	return &proxy, nil
}

// ListProxies returns all proxy configurations owned by the caller.
func (c *Client) ListProxies(ctx context.Context) ([]Proxy, error) {
	return listAll[Proxy](ctx, c, "/proxies", nil)
}

// DeleteProxy removes a proxy configuration.
func (c *Client) DeleteProxy(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/proxies/"+url.PathEscape(id), nil, nil, nil)
}
