// ABOUTME: execute_playwright_code tool: run Playwright code against a session
// ABOUTME: Sessions created here are owned and torn down on every exit path

package tools

import (
	"context"
	"strings"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

const executePlaywrightCodeSchema = `{
	"type": "object",
	"properties": {
		"code": {"type": "string", "description": "Playwright code to run against the session's browser"},
		"session_id": {"type": "string", "description": "Reuse an existing browser session; omitted means a throwaway session is created and deleted afterwards"},
		"profile_name": {"type": "string", "description": "Profile for a created session"},
		"proxy_id": {"type": "string", "description": "Proxy for a created session"},
		"stealth": {"type": "boolean"},
		"headless": {"type": "boolean"},
		"timeout_seconds": {"type": "integer", "minimum": 1, "description": "Platform-side execution limit"}
	},
	"required": ["code"]
}`

type playwrightHandlers struct {
	deps Deps
}

// executePlaywrightCodeTool runs Playwright code remotely, managing the
// session and replay lifecycle around the run.
func executePlaywrightCodeTool(deps Deps) *Definition {
	h := &playwrightHandlers{deps: deps}
	return &Definition{
		Name:        "execute_playwright_code",
		Description: "Run Playwright code against a remote browser. Reuses the given session or creates a temporary one, records a replay when possible, and cleans up sessions it created.",
		InputSchema: executePlaywrightCodeSchema,
		Handler:     h.execute,
	}
}

func (h *playwrightHandlers) execute(ctx context.Context, authCtx *auth.AuthContext, args map[string]any) (*Result, error) {
	code := stringArg(args, "code")
	if code == "" {
		return NewErrorResult("execute_playwright_code: code is required"), nil
	}

	client := h.deps.Platform(authCtx)

	sessionID := stringArg(args, "session_id")
	owned := false
	if sessionID == "" {
		browser, err := client.CreateBrowser(ctx, platform.CreateBrowserRequest{
			ProfileName:    stringArg(args, "profile_name"),
			ProxyID:        stringArg(args, "proxy_id"),
			Stealth:        boolArg(args, "stealth"),
			Headless:       boolArg(args, "headless"),
			TimeoutSeconds: intArgOr(args, "timeout_seconds", 0),
		})
		if err != nil {
			return upstreamError("execute_playwright_code", "create_session", err), nil
		}
		sessionID = browser.SessionID
		owned = true
	}
	// Owned sessions must not outlive the call, even if the caller
	// disconnected mid-run.
	defer func() {
		if !owned {
			return
		}
		cleanupCtx := context.WithoutCancel(ctx)
		if err := client.DeleteBrowser(cleanupCtx, sessionID); err != nil {
			h.deps.Logger.Warn("failed to delete owned browser session",
				"session_id", sessionID,
				"error", err,
			)
		}
	}()

	// Replays are best-effort: a platform without replay support still
	// executes the code.
	var replay *platform.Replay
	if r, err := client.StartReplay(ctx, sessionID); err == nil {
		replay = r
	} else {
		h.deps.Logger.Debug("replay not started", "session_id", sessionID, "error", err)
	}
	defer func() {
		if replay == nil {
			return
		}
		cleanupCtx := context.WithoutCancel(ctx)
		if err := client.StopReplay(cleanupCtx, sessionID, replay.ReplayID); err != nil {
			h.deps.Logger.Debug("replay not stopped", "session_id", sessionID, "error", err)
		}
	}()

	result, err := client.ExecuteCode(ctx, sessionID, code, intArgOr(args, "timeout_seconds", 0))
	if err != nil {
		return upstreamError("execute_playwright_code", "execute", err), nil
	}

	var b strings.Builder
	b.WriteString(result.Output)
	if result.Logs != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Logs:\n")
		b.WriteString(result.Logs)
	}
	if replay != nil && replay.ViewURL != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Replay: ")
		b.WriteString(replay.ViewURL)
	}
	if b.Len() == 0 {
		return NewTextResult("Code executed with no output."), nil
	}
	return NewTextResult("%s", b.String()), nil
}
