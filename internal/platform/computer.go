// ABOUTME: OS-level input and screen operations on a browser session's VM
// ABOUTME: Mouse, keyboard, scroll, cursor position, and screenshot capture

package platform

import (
	"context"
	"net/http"
	"net/url"
)

// CursorPosition is the current mouse location on the session's screen.
type CursorPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// computerPath builds the path for a computer-control action.
func computerPath(sessionID, action string) string {
	return "/browsers/" + url.PathEscape(sessionID) + "/computer/" + action
}

// ClickMouse clicks at the given coordinates. Button defaults to "left"
// when empty.
func (c *Client) ClickMouse(ctx context.Context, sessionID string, x, y int, button string) error {
	body := map[string]any{"x": x, "y": y}
	if button != "" {
		body["button"] = button
	}
	return c.do(ctx, http.MethodPost, computerPath(sessionID, "click_mouse"), nil, body, nil)
}

// MoveMouse moves the cursor to the given coordinates.
func (c *Client) MoveMouse(ctx context.Context, sessionID string, x, y int) error {
	body := map[string]any{"x": x, "y": y}
	return c.do(ctx, http.MethodPost, computerPath(sessionID, "move_mouse"), nil, body, nil)
}

// TypeText types the given text with the VM keyboard.
func (c *Client) TypeText(ctx context.Context, sessionID, text string) error {
	body := map[string]string{"text": text}
	return c.do(ctx, http.MethodPost, computerPath(sessionID, "type_text"), nil, body, nil)
}

// PressKey presses one or more keys simultaneously (a chord like
// ["ctrl", "a"] presses both).
func (c *Client) PressKey(ctx context.Context, sessionID string, keys []string) error {
	body := map[string]any{"keys": keys}
	return c.do(ctx, http.MethodPost, computerPath(sessionID, "press_key"), nil, body, nil)
}

// Scroll scrolls at the given coordinates by the given deltas.
func (c *Client) Scroll(ctx context.Context, sessionID string, x, y, deltaX, deltaY int) error {
	body := map[string]any{"x": x, "y": y, "delta_x": deltaX, "delta_y": deltaY}
	return c.do(ctx, http.MethodPost, computerPath(sessionID, "scroll"), nil, body, nil)
}

// GetCursorPosition returns the current mouse location.
func (c *Client) GetCursorPosition(ctx context.Context, sessionID string) (*CursorPosition, error) {
	var pos CursorPosition
	if err := c.do(ctx, http.MethodGet, computerPath(sessionID, "cursor_position"), nil, nil, &pos); err != nil {
		return nil, err
	}
	return &pos, nil
}

// Screenshot captures the session's screen, returning the image bytes and
// their mime type.
func (c *Client) Screenshot(ctx context.Context, sessionID string) ([]byte, string, error) {
	data, contentType, err := c.doRaw(ctx, http.MethodGet, computerPath(sessionID, "screenshot"), nil, nil)
	if err != nil {
		return nil, "", err
	}
	if contentType == "" {
		contentType = "image/png"
	}
	return data, contentType, nil
}
