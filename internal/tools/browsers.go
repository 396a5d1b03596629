// ABOUTME: manage_browsers tool for browser session lifecycle
// ABOUTME: Create carries the mutually-exclusive profile and co-required viewport checks

package tools

import (
	"context"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

const manageBrowsersSchema = `{
	"type": "object",
	"properties": {
		"action": {"type": "string", "enum": ["create", "list", "get", "delete"]},
		"session_id": {"type": "string", "description": "Browser session id (get, delete)"},
		"profile_name": {"type": "string", "description": "Launch with the named profile (create)"},
		"profile_id": {"type": "string", "description": "Launch with the profile id (create)"},
		"proxy_id": {"type": "string", "description": "Route traffic through this proxy (create)"},
		"stealth": {"type": "boolean"},
		"headless": {"type": "boolean"},
		"viewport_width": {"type": "integer", "minimum": 1},
		"viewport_height": {"type": "integer", "minimum": 1},
		"timeout_seconds": {"type": "integer", "minimum": 1}
	},
	"required": ["action"]
}`

type browserHandlers struct {
	deps Deps
}

// manageBrowsersTool creates, lists, gets, and deletes browser sessions.
func manageBrowsersTool(deps Deps) *Definition {
	h := &browserHandlers{deps: deps}
	return &Definition{
		Name:        "manage_browsers",
		Description: "Manage remote browser sessions: create a browser, list live sessions, get one session, or delete it.",
		InputSchema: manageBrowsersSchema,
		Handler:     h.manage,
	}
}

func (h *browserHandlers) manage(ctx context.Context, authCtx *auth.AuthContext, args map[string]any) (*Result, error) {
	client := h.deps.Platform(authCtx)

	switch action := stringArg(args, "action"); action {
	case "create":
		return h.create(ctx, client, args), nil

	case "list":
		browsers, err := client.ListBrowsers(ctx)
		if err != nil {
			return upstreamError("manage_browsers", "list", err), nil
		}
		if len(browsers) == 0 {
			return NewTextResult("No live browser sessions."), nil
		}
		return NewJSONResult(browsers), nil

	case "get":
		sessionID := stringArg(args, "session_id")
		if sessionID == "" {
			return NewErrorResult("manage_browsers: get: session_id is required"), nil
		}
		browser, err := client.GetBrowser(ctx, sessionID)
		if err != nil {
			if platform.IsNotFound(err) {
				return NewErrorResult("manage_browsers: get: browser %q not found", sessionID), nil
			}
			return upstreamError("manage_browsers", "get", err), nil
		}
		return NewJSONResult(browser), nil

	case "delete":
		sessionID := stringArg(args, "session_id")
		if sessionID == "" {
			return NewErrorResult("manage_browsers: delete: session_id is required"), nil
		}
		if err := client.DeleteBrowser(ctx, sessionID); err != nil {
			return upstreamError("manage_browsers", "delete", err), nil
		}
		return NewTextResult("Browser session %s deleted.", sessionID), nil

	default:
		return NewErrorResult("manage_browsers: unknown action %q", action), nil
	}
}

func (h *browserHandlers) create(ctx context.Context, client *platform.Client, args map[string]any) *Result {
	profileName := stringArg(args, "profile_name")
	profileID := stringArg(args, "profile_id")
	if profileName != "" && profileID != "" {
		return NewErrorResult("manage_browsers: create: profile_name and profile_id are mutually exclusive")
	}

	width, hasWidth := intArg(args, "viewport_width")
	height, hasHeight := intArg(args, "viewport_height")
	if hasWidth != hasHeight {
		return NewErrorResult("manage_browsers: create: viewport_width and viewport_height must be provided together")
	}

	browser, err := client.CreateBrowser(ctx, platform.CreateBrowserRequest{
		ProfileName:    profileName,
		ProfileID:      profileID,
		ProxyID:        stringArg(args, "proxy_id"),
		Stealth:        boolArg(args, "stealth"),
		Headless:       boolArg(args, "headless"),
		ViewportWidth:  width,
		ViewportHeight: height,
		TimeoutSeconds: intArgOr(args, "timeout_seconds", 0),
	})
	if err != nil {
		return upstreamError("manage_browsers", "create", err)
	}
	return NewJSONResult(browser)
}
