// ABOUTME: Command and code execution inside a browser session's VM
// ABOUTME: Shell exec and remote Playwright code runs, timeouts forwarded to the platform

package platform

import (
	"context"
	"net/http"
	"net/url"
)

// ExecResult is the outcome of a shell command run in the session VM.
type ExecResult struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty"`
}

// ExecutionResult is the outcome of a remote code execution.
type ExecutionResult struct {
	Output string `json:"output,omitempty"`
	Logs   string `json:"logs,omitempty"`
}

// Exec runs a shell command inside the session VM. The timeout is a
// platform-side limit, not enforced locally.
func (c *Client) Exec(ctx context.Context, sessionID, command string, timeoutSeconds int) (*ExecResult, error) {
	body := map[string]any{"command": command}
	if timeoutSeconds > 0 {
		body["timeout_seconds"] = timeoutSeconds
	}
	var result ExecResult
	path := "/browsers/" + url.PathEscape(sessionID) + "/process/exec"
	if err := c.do(ctx, http.MethodPost, path, nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExecuteCode runs Playwright code against the session's browser on the
// platform side, connected over CDP.
func (c *Client) ExecuteCode(ctx context.Context, sessionID, code string, timeoutSeconds int) (*ExecutionResult, error) {
	body := map[string]any{"code": code}
	if timeoutSeconds > 0 {
		body["timeout_seconds"] = timeoutSeconds
	}
	var result ExecutionResult
	path := "/browsers/" + url.PathEscape(sessionID) + "/execute"
	if err := c.do(ctx, http.MethodPost, path, nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
