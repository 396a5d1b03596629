// ABOUTME: Tests for the manage_browsers tool's precondition checks
// ABOUTME: Bad parameter combinations must fail before any platform call

package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

// platformDeps builds tool Deps backed by a fake platform server.
func platformDeps(t *testing.T, handler http.HandlerFunc) Deps {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return Deps{
		Platform: func(authCtx *auth.AuthContext) *platform.Client {
			return platform.NewClient(platform.Config{BaseURL: srv.URL, Token: authCtx.Token})
		},
		Logger: slog.Default(),
	}
}

func TestManageBrowsersCreate(t *testing.T) {
	t.Run("profile_name and profile_id are mutually exclusive", func(t *testing.T) {
		var calls atomic.Int32
		deps := platformDeps(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		})
		tool := manageBrowsersTool(deps)

		result, err := tool.Handler(context.Background(), testAuthContext(), map[string]any{
			"action":       "create",
			"profile_name": "work",
			"profile_id":   "prof-123",
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "mutually exclusive")
		assert.Zero(t, calls.Load(), "precondition failures must not reach the platform")
	})

	t.Run("viewport dimensions must come together", func(t *testing.T) {
		var calls atomic.Int32
		deps := platformDeps(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		})
		tool := manageBrowsersTool(deps)

		result, err := tool.Handler(context.Background(), testAuthContext(), map[string]any{
			"action":         "create",
			"viewport_width": float64(1280),
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "viewport_width and viewport_height")
		assert.Zero(t, calls.Load())
	})

	t.Run("create forwards parameters and returns the session", func(t *testing.T) {
		deps := platformDeps(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/browsers", r.URL.Path)

			var req platform.CreateBrowserRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "work", req.ProfileName)
			assert.Equal(t, 1280, req.ViewportWidth)
			assert.Equal(t, 720, req.ViewportHeight)
			assert.True(t, req.Stealth)

			json.NewEncoder(w).Encode(platform.Browser{SessionID: "sess-1"})
		})
		tool := manageBrowsersTool(deps)

		result, err := tool.Handler(context.Background(), testAuthContext(), map[string]any{
			"action":          "create",
			"profile_name":    "work",
			"stealth":         true,
			"viewport_width":  float64(1280),
			"viewport_height": float64(720),
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "sess-1")
	})
}

func TestManageBrowsersList(t *testing.T) {
	t.Run("empty list gets a sentinel message", func(t *testing.T) {
		deps := platformDeps(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
		})
		tool := manageBrowsersTool(deps)

		result, err := tool.Handler(context.Background(), testAuthContext(), map[string]any{"action": "list"})
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "No live browser sessions.", result.Content[0].Text)
	})
}

func TestManageBrowsersGet(t *testing.T) {
	t.Run("missing session is a named not-found error", func(t *testing.T) {
		deps := platformDeps(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "no such browser"})
		})
		tool := manageBrowsersTool(deps)

		result, err := tool.Handler(context.Background(), testAuthContext(), map[string]any{
			"action":     "get",
			"session_id": "sess-gone",
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "sess-gone")
		assert.Contains(t, result.Content[0].Text, "not found")
	})

	t.Run("missing session_id fails before the platform call", func(t *testing.T) {
		var calls atomic.Int32
		deps := platformDeps(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		})
		tool := manageBrowsersTool(deps)

		result, err := tool.Handler(context.Background(), testAuthContext(), map[string]any{"action": "get"})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Zero(t, calls.Load())
	})
}
