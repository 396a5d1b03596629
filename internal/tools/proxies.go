// ABOUTME: manage_proxies tool for proxy configurations
// ABOUTME: Custom proxies carry host/port credentials, managed ones a country

package tools

import (
	"context"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

const manageProxiesSchema = `{
	"type": "object",
	"properties": {
		"action": {"type": "string", "enum": ["create", "list", "delete"]},
		"proxy_id": {"type": "string", "description": "Proxy id (delete)"},
		"type": {"type": "string", "enum": ["datacenter", "residential", "custom"], "description": "Proxy type (create)"},
		"country": {"type": "string", "description": "ISO country code for managed proxies (create)"},
		"host": {"type": "string", "description": "Custom proxy host (create, type=custom)"},
		"port": {"type": "integer", "minimum": 1, "maximum": 65535},
		"username": {"type": "string"},
		"password": {"type": "string"}
	},
	"required": ["action"]
}`

type proxyHandlers struct {
	deps Deps
}

// manageProxiesTool creates, lists, and deletes proxy configurations.
func manageProxiesTool(deps Deps) *Definition {
	h := &proxyHandlers{deps: deps}
	return &Definition{
		Name:        "manage_proxies",
		Description: "Manage proxy configurations attached to browsers at create time: create, list, or delete a proxy.",
		InputSchema: manageProxiesSchema,
		Handler:     h.manage,
	}
}

func (h *proxyHandlers) manage(ctx context.Context, authCtx *auth.AuthContext, args map[string]any) (*Result, error) {
	client := h.deps.Platform(authCtx)

	switch action := stringArg(args, "action"); action {
	case "create":
		proxyType := stringArg(args, "type")
		if proxyType == "" {
			return NewErrorResult("manage_proxies: create: type is required"), nil
		}
		if proxyType == "custom" && stringArg(args, "host") == "" {
			return NewErrorResult("manage_proxies: create: host is required for custom proxies"), nil
		}
		proxy, err := client.CreateProxy(ctx, platform.CreateProxyRequest{
			Type:     proxyType,
			Country:  stringArg(args, "country"),
			Host:     stringArg(args, "host"),
			Port:     intArgOr(args, "port", 0),
			Username: stringArg(args, "username"),
			Password: stringArg(args, "password"),
		})
		if err != nil {
			return upstreamError("manage_proxies", "create", err), nil
		}
		return NewJSONResult(proxy), nil

	case "list":
		proxies, err := client.ListProxies(ctx)
		if err != nil {
			return upstreamError("manage_proxies", "list", err), nil
		}
		if len(proxies) == 0 {
			return NewTextResult("No proxies found."), nil
		}
		return NewJSONResult(proxies), nil

	case "delete":
		id := stringArg(args, "proxy_id")
		if id == "" {
			return NewErrorResult("manage_proxies: delete: proxy_id is required"), nil
		}
		if err := client.DeleteProxy(ctx, id); err != nil {
			return upstreamError("manage_proxies", "delete", err), nil
		}
		return NewTextResult("Proxy %s deleted.", id), nil

	default:
		return NewErrorResult("manage_proxies: unknown action %q", action), nil
	}
}
