// ABOUTME: Tests for execute_playwright_code session and replay lifecycle
// ABOUTME: Owned sessions are deleted on both success and failure paths

package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

// playwrightFake records the platform calls the tool makes.
type playwrightFake struct {
	mu       sync.Mutex
	calls    []string
	execFail bool
}

func (f *playwrightFake) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *playwrightFake) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *playwrightFake) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/browsers":
			f.record("create")
			json.NewEncoder(w).Encode(platform.Browser{SessionID: "owned-1"})

		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/browsers/"):
			f.record("delete " + strings.TrimPrefix(r.URL.Path, "/browsers/"))
			w.WriteHeader(http.StatusNoContent)

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/replays"):
			f.record("start_replay")
			json.NewEncoder(w).Encode(platform.Replay{ReplayID: "rep-1", ViewURL: "https://replays.example/rep-1"})

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/replays/rep-1/stop"):
			f.record("stop_replay")
			w.WriteHeader(http.StatusNoContent)

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/execute"):
			f.record("execute")
			if f.execFail {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"error": "syntax error in code"})
				return
			}
			json.NewEncoder(w).Encode(platform.ExecutionResult{Output: "page title: Example"})

		default:
			http.NotFound(w, r)
		}
	}
}

func TestExecutePlaywrightCode(t *testing.T) {
	t.Run("creates, runs, and deletes an owned session", func(t *testing.T) {
		fake := &playwrightFake{}
		tool := executePlaywrightCodeTool(platformDeps(t, fake.handler()))

		result, err := tool.Handler(context.Background(), testAuthContext(), map[string]any{
			"code": "await page.goto('https://example.com')",
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "page title: Example")
		assert.Contains(t, result.Content[0].Text, "https://replays.example/rep-1")

		assert.Equal(t, []string{"create", "start_replay", "execute", "stop_replay", "delete owned-1"}, fake.recorded())
	})

	t.Run("deletes the owned session even when execution fails", func(t *testing.T) {
		fake := &playwrightFake{execFail: true}
		tool := executePlaywrightCodeTool(platformDeps(t, fake.handler()))

		result, err := tool.Handler(context.Background(), testAuthContext(), map[string]any{
			"code": "await page.goto(",
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "syntax error")

		calls := fake.recorded()
		assert.Contains(t, calls, "delete owned-1")
	})

	t.Run("never deletes a caller-provided session", func(t *testing.T) {
		fake := &playwrightFake{}
		tool := executePlaywrightCodeTool(platformDeps(t, fake.handler()))

		result, err := tool.Handler(context.Background(), testAuthContext(), map[string]any{
			"code":       "await page.reload()",
			"session_id": "caller-sess",
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)

		for _, call := range fake.recorded() {
			assert.NotContains(t, call, "delete", "caller sessions are referenced, not owned")
			assert.NotEqual(t, "create", call)
		}
	})

	t.Run("replay failure does not fail the run", func(t *testing.T) {
		tool := executePlaywrightCodeTool(platformDeps(t, func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasSuffix(r.URL.Path, "/replays"):
				w.WriteHeader(http.StatusNotImplemented)
			case strings.HasSuffix(r.URL.Path, "/execute"):
				json.NewEncoder(w).Encode(platform.ExecutionResult{Output: "ok"})
			default:
				http.NotFound(w, r)
			}
		}))

		result, err := tool.Handler(context.Background(), testAuthContext(), map[string]any{
			"code":       "await page.reload()",
			"session_id": "caller-sess",
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "ok", result.Content[0].Text)
	})

	t.Run("missing code fails immediately", func(t *testing.T) {
		fake := &playwrightFake{}
		tool := executePlaywrightCodeTool(platformDeps(t, fake.handler()))

		result, err := tool.Handler(context.Background(), testAuthContext(), map[string]any{})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Empty(t, fake.recorded())
	})
}
