// ABOUTME: Browser profile operations against the platform API
// ABOUTME: Profiles persist cookies and local storage across sessions, addressed by name

package platform

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Profile is a persisted browser state bundle addressed by name.
type Profile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	LastUsedAt time.Time `json:"last_used_at,omitzero"`
}

// CreateProfile registers a new named profile. State is captured when a
// browser is launched with save_changes against this profile.
func (c *Client) CreateProfile(ctx context.Context, name string) (*Profile, error) {
	var profile Profile
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/profiles", nil, body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListProfiles returns all profiles owned by the caller.
func (c *Client) ListProfiles(ctx context.Context) ([]Profile, error) {
	return listAll[Profile](ctx, c, "/profiles", nil)
}

// GetProfile fetches a profile by name.
func (c *Client) GetProfile(ctx context.Context, name string) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/profiles/"+url.PathEscape(name), nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteProfile removes a profile and its stored state.
func (c *Client) DeleteProfile(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/profiles/"+url.PathEscape(name), nil, nil, nil)
}
