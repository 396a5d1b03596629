// ABOUTME: manage_extensions tool for uploaded browser extensions
// ABOUTME: Upload happens out of band; this covers list and delete

package tools

import (
	"context"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

const manageExtensionsSchema = `{
	"type": "object",
	"properties": {
		"action": {"type": "string", "enum": ["list", "delete"]},
		"id_or_name": {"type": "string", "description": "Extension id or name (delete)"}
	},
	"required": ["action"]
}`

type extensionHandlers struct {
	deps Deps
}

// manageExtensionsTool lists and deletes uploaded browser extensions.
func manageExtensionsTool(deps Deps) *Definition {
	h := &extensionHandlers{deps: deps}
	return &Definition{
		Name:        "manage_extensions",
		Description: "Manage uploaded browser extensions: list them or delete one by id or name.",
		InputSchema: manageExtensionsSchema,
		Handler:     h.manage,
	}
}

func (h *extensionHandlers) manage(ctx context.Context, authCtx *auth.AuthContext, args map[string]any) (*Result, error) {
	client := h.deps.Platform(authCtx)

	switch action := stringArg(args, "action"); action {
	case "list":
		extensions, err := client.ListExtensions(ctx)
		if err != nil {
			return upstreamError("manage_extensions", "list", err), nil
		}
		if len(extensions) == 0 {
			return NewTextResult("No extensions found."), nil
		}
		return NewJSONResult(extensions), nil

	case "delete":
		idOrName := stringArg(args, "id_or_name")
		if idOrName == "" {
			return NewErrorResult("manage_extensions: delete: id_or_name is required"), nil
		}
		if err := client.DeleteExtension(ctx, idOrName); err != nil {
			if platform.IsNotFound(err) {
				return NewErrorResult("manage_extensions: delete: extension %q not found", idOrName), nil
			}
			return upstreamError("manage_extensions", "delete", err), nil
		}
		return NewTextResult("Extension %s deleted.", idOrName), nil

	default:
		return NewErrorResult("manage_extensions: unknown action %q", action), nil
	}
}
