// ABOUTME: exec_command tool for running shell commands in a session VM
// ABOUTME: Non-zero exit codes are error results with stdout/stderr preserved

package tools

import (
	"context"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
)

const execCommandSchema = `{
	"type": "object",
	"properties": {
		"session_id": {"type": "string", "description": "Browser session id"},
		"command": {"type": "string", "description": "Shell command to run inside the session VM"},
		"timeout_seconds": {"type": "integer", "minimum": 1, "description": "Platform-side execution limit"}
	},
	"required": ["session_id", "command"]
}`

type execHandlers struct {
	deps Deps
}

// execCommandTool runs a shell command inside an existing session's VM.
func execCommandTool(deps Deps) *Definition {
	h := &execHandlers{deps: deps}
	return &Definition{
		Name:        "exec_command",
		Description: "Run a shell command inside a browser session's VM and return its exit code, stdout, and stderr.",
		InputSchema: execCommandSchema,
		Handler:     h.exec,
	}
}

func (h *execHandlers) exec(ctx context.Context, authCtx *auth.AuthContext, args map[string]any) (*Result, error) {
	sessionID := stringArg(args, "session_id")
	command := stringArg(args, "command")
	if sessionID == "" || command == "" {
		return NewErrorResult("exec_command: session_id and command are required"), nil
	}

	client := h.deps.Platform(authCtx)
	result, err := client.Exec(ctx, sessionID, command, intArgOr(args, "timeout_seconds", 0))
	if err != nil {
		return upstreamError("exec_command", "exec", err), nil
	}

	if result.ExitCode != 0 {
		out := NewJSONResult(result)
		out.IsError = true
		return out, nil
	}
	return NewJSONResult(result), nil
}
