// ABOUTME: manage_browser_pools tool for warm browser pool lifecycle
// ABOUTME: Acquire/release cycle a session in and out of a pool

package tools

import (
	"context"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

const manageBrowserPoolsSchema = `{
	"type": "object",
	"properties": {
		"action": {"type": "string", "enum": ["create", "list", "get", "delete", "flush", "acquire", "release"]},
		"id_or_name": {"type": "string", "description": "Pool id or name (get, delete, flush, acquire, release)"},
		"name": {"type": "string", "description": "Pool name (create)"},
		"size": {"type": "integer", "minimum": 1, "description": "Number of warm sessions (create)"},
		"stealth": {"type": "boolean"},
		"headless": {"type": "boolean"},
		"proxy_id": {"type": "string"},
		"session_id": {"type": "string", "description": "Session to return to the pool (release)"},
		"timeout_seconds": {"type": "integer", "minimum": 1, "description": "How long the platform waits for a free session (acquire)"}
	},
	"required": ["action"]
}`

type poolHandlers struct {
	deps Deps
}

// manageBrowserPoolsTool manages warm browser pools.
func manageBrowserPoolsTool(deps Deps) *Definition {
	h := &poolHandlers{deps: deps}
	return &Definition{
		Name:        "manage_browser_pools",
		Description: "Manage pools of pre-warmed browser sessions: create, list, get, delete, or flush a pool, and acquire or release sessions.",
		InputSchema: manageBrowserPoolsSchema,
		Handler:     h.manage,
	}
}

func (h *poolHandlers) manage(ctx context.Context, authCtx *auth.AuthContext, args map[string]any) (*Result, error) {
	client := h.deps.Platform(authCtx)
	action := stringArg(args, "action")

	// Every non-create, non-list action addresses one pool.
	idOrName := stringArg(args, "id_or_name")
	switch action {
	case "get", "delete", "flush", "acquire", "release":
		if idOrName == "" {
			return NewErrorResult("manage_browser_pools: %s: id_or_name is required", action), nil
		}
	}

	switch action {
	case "create":
		name := stringArg(args, "name")
		size, hasSize := intArg(args, "size")
		if name == "" || !hasSize {
			return NewErrorResult("manage_browser_pools: create: name and size are required"), nil
		}
		pool, err := client.CreateBrowserPool(ctx, platform.CreateBrowserPoolRequest{
			Name:     name,
			Size:     size,
			Stealth:  boolArg(args, "stealth"),
			Headless: boolArg(args, "headless"),
			ProxyID:  stringArg(args, "proxy_id"),
		})
		if err != nil {
			return upstreamError("manage_browser_pools", "create", err), nil
		}
		return NewJSONResult(pool), nil

	case "list":
		pools, err := client.ListBrowserPools(ctx)
		if err != nil {
			return upstreamError("manage_browser_pools", "list", err), nil
		}
		if len(pools) == 0 {
			return NewTextResult("No browser pools found."), nil
		}
		return NewJSONResult(pools), nil

	case "get":
		pool, err := client.GetBrowserPool(ctx, idOrName)
		if err != nil {
			if platform.IsNotFound(err) {
				return NewErrorResult("manage_browser_pools: get: pool %q not found", idOrName), nil
			}
			return upstreamError("manage_browser_pools", "get", err), nil
		}
		return NewJSONResult(pool), nil

	case "delete":
		if err := client.DeleteBrowserPool(ctx, idOrName); err != nil {
			return upstreamError("manage_browser_pools", "delete", err), nil
		}
		return NewTextResult("Browser pool %s deleted.", idOrName), nil

	case "flush":
		if err := client.FlushBrowserPool(ctx, idOrName); err != nil {
			return upstreamError("manage_browser_pools", "flush", err), nil
		}
		return NewTextResult("Browser pool %s flushed.", idOrName), nil

	case "acquire":
		browser, err := client.AcquireBrowser(ctx, idOrName, intArgOr(args, "timeout_seconds", 0))
		if err != nil {
			return upstreamError("manage_browser_pools", "acquire", err), nil
		}
		return NewJSONResult(browser), nil

	case "release":
		sessionID := stringArg(args, "session_id")
		if sessionID == "" {
			return NewErrorResult("manage_browser_pools: release: session_id is required"), nil
		}
		if err := client.ReleaseBrowser(ctx, idOrName, sessionID); err != nil {
			return upstreamError("manage_browser_pools", "release", err), nil
		}
		return NewTextResult("Session %s released to pool %s.", sessionID, idOrName), nil

	default:
		return NewErrorResult("manage_browser_pools: unknown action %q", action), nil
	}
}
