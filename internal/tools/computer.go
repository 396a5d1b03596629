// ABOUTME: computer_action tool for OS-level input on a browser session's VM
// ABOUTME: Coordinate presence is checked per action, zero is a valid position

package tools

import (
	"context"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
)

const computerActionSchema = `{
	"type": "object",
	"properties": {
		"action": {"type": "string", "enum": ["click", "move", "type", "press_key", "scroll", "get_position", "screenshot"]},
		"session_id": {"type": "string", "description": "Browser session id"},
		"x": {"type": "integer", "minimum": 0},
		"y": {"type": "integer", "minimum": 0},
		"button": {"type": "string", "enum": ["left", "middle", "right"], "description": "Mouse button (click, defaults to left)"},
		"text": {"type": "string", "description": "Text to type (type)"},
		"keys": {"type": "array", "items": {"type": "string"}, "description": "Keys to press as a chord (press_key)"},
		"delta_x": {"type": "integer"},
		"delta_y": {"type": "integer"}
	},
	"required": ["action", "session_id"]
}`

type computerHandlers struct {
	deps Deps
}

// computerActionTool drives the mouse, keyboard, and screen of a session VM.
func computerActionTool(deps Deps) *Definition {
	h := &computerHandlers{deps: deps}
	return &Definition{
		Name:        "computer_action",
		Description: "Control a browser session's VM directly: click, move the mouse, type text, press keys, scroll, read the cursor position, or take a screenshot.",
		InputSchema: computerActionSchema,
		Handler:     h.perform,
	}
}

func (h *computerHandlers) perform(ctx context.Context, authCtx *auth.AuthContext, args map[string]any) (*Result, error) {
	client := h.deps.Platform(authCtx)

	sessionID := stringArg(args, "session_id")
	if sessionID == "" {
		return NewErrorResult("computer_action: session_id is required"), nil
	}

	switch action := stringArg(args, "action"); action {
	case "click":
		x, hasX := intArg(args, "x")
		y, hasY := intArg(args, "y")
		if !hasX || !hasY {
			return NewErrorResult("computer_action: click: x and y are required"), nil
		}
		if err := client.ClickMouse(ctx, sessionID, x, y, stringArg(args, "button")); err != nil {
			return upstreamError("computer_action", "click", err), nil
		}
		return NewTextResult("Clicked at (%d, %d).", x, y), nil

	case "move":
		x, hasX := intArg(args, "x")
		y, hasY := intArg(args, "y")
		if !hasX || !hasY {
			return NewErrorResult("computer_action: move: x and y are required"), nil
		}
		if err := client.MoveMouse(ctx, sessionID, x, y); err != nil {
			return upstreamError("computer_action", "move", err), nil
		}
		return NewTextResult("Moved cursor to (%d, %d).", x, y), nil

	case "type":
		text := stringArg(args, "text")
		if text == "" {
			return NewErrorResult("computer_action: type: text is required"), nil
		}
		if err := client.TypeText(ctx, sessionID, text); err != nil {
			return upstreamError("computer_action", "type", err), nil
		}
		return NewTextResult("Typed %d characters.", len(text)), nil

	case "press_key":
		keys := stringSliceArg(args, "keys")
		if len(keys) == 0 {
			return NewErrorResult("computer_action: press_key: keys is required"), nil
		}
		if err := client.PressKey(ctx, sessionID, keys); err != nil {
			return upstreamError("computer_action", "press_key", err), nil
		}
		return NewTextResult("Pressed keys."), nil

	case "scroll":
		x, hasX := intArg(args, "x")
		y, hasY := intArg(args, "y")
		if !hasX || !hasY {
			return NewErrorResult("computer_action: scroll: x and y are required"), nil
		}
		deltaX := intArgOr(args, "delta_x", 0)
		deltaY := intArgOr(args, "delta_y", 0)
		if err := client.Scroll(ctx, sessionID, x, y, deltaX, deltaY); err != nil {
			return upstreamError("computer_action", "scroll", err), nil
		}
		return NewTextResult("Scrolled at (%d, %d) by (%d, %d).", x, y, deltaX, deltaY), nil

	case "get_position":
		pos, err := client.GetCursorPosition(ctx, sessionID)
		if err != nil {
			return upstreamError("computer_action", "get_position", err), nil
		}
		return NewJSONResult(pos), nil

	case "screenshot":
		data, contentType, err := client.Screenshot(ctx, sessionID)
		if err != nil {
			return upstreamError("computer_action", "screenshot", err), nil
		}
		return &Result{Content: []Content{ImageContent(data, contentType)}}, nil

	default:
		return NewErrorResult("computer_action: unknown action %q", action), nil
	}
}
