// ABOUTME: Session replay recording operations against the platform API
// ABOUTME: Replays are best-effort at every call site; absence never fails the caller

package platform

import (
	"context"
	"net/http"
	"net/url"
)

// Replay is a recording of a browser session, viewable at ViewURL.
type Replay struct {
	ReplayID string `json:"replay_id"`
	ViewURL  string `json:"view_url,omitempty"`
}

// StartReplay begins recording the given browser session.
func (c *Client) StartReplay(ctx context.Context, sessionID string) (*Replay, error) {
	var replay Replay
	path := "/browsers/" + url.PathEscape(sessionID) + "/replays"
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &replay); err != nil {
		return nil, err
	}
	return &replay, nil
}

// StopReplay finalizes a recording so it becomes viewable.
func (c *Client) StopReplay(ctx context.Context, sessionID, replayID string) error {
	path := "/browsers/" + url.PathEscape(sessionID) + "/replays/" + url.PathEscape(replayID) + "/stop"
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}
