// ABOUTME: manage_profiles tool for persisted browser profiles
// ABOUTME: Profiles are addressed by name throughout

package tools

import (
	"context"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

const manageProfilesSchema = `{
	"type": "object",
	"properties": {
		"action": {"type": "string", "enum": ["setup", "list", "delete"]},
		"name": {"type": "string", "description": "Profile name (setup, delete)"}
	},
	"required": ["action"]
}`

type profileHandlers struct {
	deps Deps
}

// manageProfilesTool sets up, lists, and deletes browser profiles.
func manageProfilesTool(deps Deps) *Definition {
	h := &profileHandlers{deps: deps}
	return &Definition{
		Name:        "manage_profiles",
		Description: "Manage browser profiles that persist cookies and local storage: set up a named profile, list profiles, or delete one.",
		InputSchema: manageProfilesSchema,
		Handler:     h.manage,
	}
}

func (h *profileHandlers) manage(ctx context.Context, authCtx *auth.AuthContext, args map[string]any) (*Result, error) {
	client := h.deps.Platform(authCtx)

	switch action := stringArg(args, "action"); action {
	case "setup":
		name := stringArg(args, "name")
		if name == "" {
			return NewErrorResult("manage_profiles: setup: name is required"), nil
		}
		profile, err := client.CreateProfile(ctx, name)
		if err != nil {
			return upstreamError("manage_profiles", "setup", err), nil
		}
		return NewJSONResult(profile), nil

	case "list":
		profiles, err := client.ListProfiles(ctx)
		if err != nil {
			return upstreamError("manage_profiles", "list", err), nil
		}
		if len(profiles) == 0 {
			return NewTextResult("No profiles found."), nil
		}
		return NewJSONResult(profiles), nil

	case "delete":
		name := stringArg(args, "name")
		if name == "" {
			return NewErrorResult("manage_profiles: delete: name is required"), nil
		}
		if err := client.DeleteProfile(ctx, name); err != nil {
			if platform.IsNotFound(err) {
				return NewErrorResult("manage_profiles: delete: profile %q not found", name), nil
			}
			return upstreamError("manage_profiles", "delete", err), nil
		}
		return NewTextResult("Profile %s deleted.", name), nil

	default:
		return NewErrorResult("manage_profiles: unknown action %q", action), nil
	}
}
