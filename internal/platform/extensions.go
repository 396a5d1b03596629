// ABOUTME: Browser extension operations against the platform API
// ABOUTME: Uploaded extensions are referenced by id or name at browser create time

package platform

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Extension is an uploaded browser extension.
type Extension struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// ListExtensions returns all uploaded extensions for the caller.
func (c *Client) ListExtensions(ctx context.Context) ([]Extension, error) {
	return listAll[Extension](ctx, c, "/browser_extensions", nil)
}

// DeleteExtension removes an uploaded extension by id or name.
func (c *Client) DeleteExtension(ctx context.Context, idOrName string) error {
	return c.do(ctx, http.MethodDelete, "/browser_extensions/"+url.PathEscape(idOrName), nil, nil, nil)
}
