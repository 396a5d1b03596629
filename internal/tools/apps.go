// ABOUTME: manage_apps tool for deployed apps, deployments, and invocations
// ABOUTME: Async invokes follow the event stream to a terminal snapshot

package tools

import (
	"context"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

const manageAppsSchema = `{
	"type": "object",
	"properties": {
		"action": {"type": "string", "enum": ["list_apps", "invoke", "get_deployment", "list_deployments", "get_invocation"]},
		"app_name": {"type": "string", "description": "App name (invoke; optional filter for list_apps, list_deployments)"},
		"action_name": {"type": "string", "description": "App action to invoke (invoke)"},
		"version": {"type": "string", "description": "App version (invoke; optional filter for list_apps)"},
		"payload": {"type": "string", "description": "JSON payload passed to the action (invoke)"},
		"async": {"type": "boolean", "description": "Invoke asynchronously and follow the invocation to completion"},
		"deployment_id": {"type": "string", "description": "Deployment id (get_deployment)"},
		"invocation_id": {"type": "string", "description": "Invocation id (get_invocation)"}
	},
	"required": ["action"]
}`

type appHandlers struct {
	deps Deps
}

// manageAppsTool lists apps and deployments and invokes app actions.
func manageAppsTool(deps Deps) *Definition {
	h := &appHandlers{deps: deps}
	return &Definition{
		Name:        "manage_apps",
		Description: "Work with deployed apps: list apps, invoke an app action, inspect deployments, or fetch an invocation.",
		InputSchema: manageAppsSchema,
		Handler:     h.manage,
	}
}

func (h *appHandlers) manage(ctx context.Context, authCtx *auth.AuthContext, args map[string]any) (*Result, error) {
	client := h.deps.Platform(authCtx)

	switch action := stringArg(args, "action"); action {
	case "list_apps":
		apps, err := client.ListApps(ctx, stringArg(args, "app_name"), stringArg(args, "version"))
		if err != nil {
			return upstreamError("manage_apps", "list_apps", err), nil
		}
		if len(apps) == 0 {
			return NewTextResult("No apps found."), nil
		}
		return NewJSONResult(apps), nil

	case "invoke":
		return h.invoke(ctx, client, args), nil

	case "get_deployment":
		id := stringArg(args, "deployment_id")
		if id == "" {
			return NewErrorResult("manage_apps: get_deployment: deployment_id is required"), nil
		}
		dep, err := client.GetDeployment(ctx, id)
		if err != nil {
			if platform.IsNotFound(err) {
				return NewErrorResult("manage_apps: get_deployment: deployment %q not found", id), nil
			}
			return upstreamError("manage_apps", "get_deployment", err), nil
		}
		return NewJSONResult(dep), nil

	case "list_deployments":
		deps, err := client.ListDeployments(ctx, stringArg(args, "app_name"))
		if err != nil {
			return upstreamError("manage_apps", "list_deployments", err), nil
		}
		if len(deps) == 0 {
			return NewTextResult("No deployments found."), nil
		}
		return NewJSONResult(deps), nil

	case "get_invocation":
		id := stringArg(args, "invocation_id")
		if id == "" {
			return NewErrorResult("manage_apps: get_invocation: invocation_id is required"), nil
		}
		inv, err := client.GetInvocation(ctx, id)
		if err != nil {
			if platform.IsNotFound(err) {
				return NewErrorResult("manage_apps: get_invocation: invocation %q not found", id), nil
			}
			return upstreamError("manage_apps", "get_invocation", err), nil
		}
		return NewJSONResult(inv), nil

	default:
		return NewErrorResult("manage_apps: unknown action %q", action), nil
	}
}

func (h *appHandlers) invoke(ctx context.Context, client *platform.Client, args map[string]any) *Result {
	appName := stringArg(args, "app_name")
	actionName := stringArg(args, "action_name")
	if appName == "" || actionName == "" {
		return NewErrorResult("manage_apps: invoke: app_name and action_name are required")
	}

	async := boolArg(args, "async")
	inv, err := client.InvokeAction(ctx, platform.InvokeActionRequest{
		AppName:    appName,
		ActionName: actionName,
		Version:    stringArg(args, "version"),
		Payload:    stringArg(args, "payload"),
		Async:      async,
	})
	if err != nil {
		return upstreamError("manage_apps", "invoke", err)
	}

	if async && !inv.Status.IsTerminal() {
		events, err := client.FollowInvocationEvents(ctx, inv.ID)
		if err != nil {
			return upstreamError("manage_apps", "invoke", err)
		}
		inv = followInvocation(inv, events, h.deps.Logger)
	}

	if inv.Error != "" {
		return NewErrorResult("manage_apps: invoke: invocation %s failed: %s", inv.ID, inv.Error)
	}
	if inv.Status == platform.InvocationFailed {
		return NewErrorResult("manage_apps: invoke: invocation %s failed", inv.ID)
	}
	return NewJSONResult(inv)
}
