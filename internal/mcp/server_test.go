// ABOUTME: Tests for the MCP HTTP server: sessions, dispatch, and wire errors
// ABOUTME: Validates the Streamable HTTP method handling and error codes

package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/platform"
	"github.com/gantrylabs/gantry-mcp/internal/resources"
	"github.com/gantrylabs/gantry-mcp/internal/tools"
)

// setupTestServer builds a server with one echo tool and one static
// resource scheme.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	registry := tools.NewRegistry(slog.Default())
	err := registry.Register(&tools.Definition{
		Name:        "echo",
		Description: "Echoes the message back.",
		InputSchema: `{"type": "object", "properties": {"message": {"type": "string"}}, "required": ["message"]}`,
		Handler: func(_ context.Context, _ *auth.AuthContext, args map[string]any) (*tools.Result, error) {
			msg, _ := args["message"].(string)
			return tools.NewTextResult("%s", msg), nil
		},
	})
	if err != nil {
		t.Fatalf("failed to register echo tool: %v", err)
	}

	provider := &resources.Provider{
		Scheme: "things",
		Name:   "things",
		List: func(context.Context, *platform.Client) (any, int, error) {
			return []string{"one", "two"}, 2, nil
		},
		Get: func(_ context.Context, _ *platform.Client, id string) (any, error) {
			if id != "one" {
				return nil, resources.ErrNotFound
			}
			return map[string]string{"id": "one"}, nil
		},
	}
	platformf := func(authCtx *auth.AuthContext) *platform.Client {
		return platform.NewClient(platform.Config{BaseURL: "http://unused.invalid", Token: authCtx.Token})
	}
	resolver, err := resources.NewResolver(platformf, []*resources.Provider{provider}, slog.Default())
	if err != nil {
		t.Fatalf("failed to build resolver: %v", err)
	}

	server, err := NewServer(Config{
		Registry: registry,
		Resolver: resolver,
		Logger:   slog.Default(),
	})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return server
}

func testAuth(token string) *auth.AuthContext {
	return &auth.AuthContext{Token: token, Scopes: []string{auth.ScopeAPIKey}, ClientID: auth.ClientID}
}

// doRPC posts a JSON-RPC body, simulating the auth middleware by attaching
// the AuthContext to the request context.
func doRPC(t *testing.T, server *Server, authCtx *auth.AuthContext, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("Mcp-Session-Id", sessionID)
	}
	if authCtx != nil {
		req = req.WithContext(auth.WithAuth(req.Context(), authCtx))
	}
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	return rr
}

// initialize runs the handshake and returns the new session id.
func initialize(t *testing.T, server *Server, authCtx *auth.AuthContext) string {
	t.Helper()
	rr := doRPC(t, server, authCtx, "", `{"jsonrpc": "2.0", "id": 1, "method": "initialize"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("initialize returned status %d", rr.Code)
	}
	sessionID := rr.Header().Get("Mcp-Session-Id")
	if sessionID == "" {
		t.Fatal("initialize did not return a session id")
	}
	return sessionID
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) JSONRPCResponse {
	t.Helper()
	var resp JSONRPCResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestInitialize(t *testing.T) {
	server := setupTestServer(t)

	rr := doRPC(t, server, testAuth("tok-1"), "", `{"jsonrpc": "2.0", "id": 1, "method": "initialize"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if rr.Header().Get("Mcp-Session-Id") == "" {
		t.Error("expected Mcp-Session-Id header")
	}

	resp := decodeResponse(t, rr)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatalf("unexpected result shape: %T", resp.Result)
	}
	if result["protocolVersion"] != latestProtocolVersion {
		t.Errorf("expected protocol version %s, got %v", latestProtocolVersion, result["protocolVersion"])
	}
	info, _ := result["serverInfo"].(map[string]any)
	if info["name"] != serverName {
		t.Errorf("expected server name %s, got %v", serverName, info["name"])
	}
}

func TestSessionValidation(t *testing.T) {
	server := setupTestServer(t)

	t.Run("missing session id is a 400", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), "", `{"jsonrpc": "2.0", "id": 1, "method": "tools/list"}`)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})

	t.Run("unknown session id is a 404", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), "no-such-session", `{"jsonrpc": "2.0", "id": 1, "method": "tools/list"}`)
		if rr.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rr.Code)
		}
	})

	t.Run("unsupported protocol version header is a 400", func(t *testing.T) {
		sessionID := initialize(t, server, testAuth("tok-1"))
		req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{"jsonrpc": "2.0", "id": 1, "method": "ping"}`))
		req.Header.Set("Mcp-Session-Id", sessionID)
		req.Header.Set("Mcp-Protocol-Version", "1999-01-01")
		rr := httptest.NewRecorder()
		server.Handler().ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})
}

func TestNotifications(t *testing.T) {
	server := setupTestServer(t)

	rr := doRPC(t, server, testAuth("tok-1"), "", `{"jsonrpc": "2.0", "method": "notifications/initialized"}`)
	if rr.Code != http.StatusAccepted {
		t.Errorf("expected status 202, got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rr.Body.String())
	}
}

func TestMalformedRequests(t *testing.T) {
	server := setupTestServer(t)

	t.Run("invalid JSON is a parse error", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), "", `{not json`)
		resp := decodeResponse(t, rr)
		if resp.Error == nil || resp.Error.Code != JSONRPCParseError {
			t.Errorf("expected parse error, got %+v", resp.Error)
		}
	})

	t.Run("wrong jsonrpc version is invalid request", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), "", `{"jsonrpc": "1.0", "id": 1, "method": "ping"}`)
		resp := decodeResponse(t, rr)
		if resp.Error == nil || resp.Error.Code != JSONRPCInvalidRequest {
			t.Errorf("expected invalid request, got %+v", resp.Error)
		}
	})

	t.Run("unknown method is method not found", func(t *testing.T) {
		sessionID := initialize(t, server, testAuth("tok-1"))
		rr := doRPC(t, server, testAuth("tok-1"), sessionID, `{"jsonrpc": "2.0", "id": 1, "method": "unknown/method"}`)
		resp := decodeResponse(t, rr)
		if resp.Error == nil || resp.Error.Code != JSONRPCMethodNotFound {
			t.Errorf("expected method not found, got %+v", resp.Error)
		}
	})
}

func TestPing(t *testing.T) {
	server := setupTestServer(t)
	sessionID := initialize(t, server, testAuth("tok-1"))

	rr := doRPC(t, server, testAuth("tok-1"), sessionID, `{"jsonrpc": "2.0", "id": 2, "method": "ping"}`)
	resp := decodeResponse(t, rr)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
}

func TestToolsList(t *testing.T) {
	server := setupTestServer(t)
	sessionID := initialize(t, server, testAuth("tok-1"))

	rr := doRPC(t, server, testAuth("tok-1"), sessionID, `{"jsonrpc": "2.0", "id": 2, "method": "tools/list"}`)
	resp := decodeResponse(t, rr)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}

	raw, _ := json.Marshal(resp.Result)
	var result ListToolsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if len(result.Tools) != 1 || result.Tools[0].Name != "echo" {
		t.Errorf("unexpected tool list: %+v", result.Tools)
	}
	if len(result.Tools[0].InputSchema) == 0 {
		t.Error("expected input schema to be present")
	}
}

func TestToolsCall(t *testing.T) {
	server := setupTestServer(t)
	sessionID := initialize(t, server, testAuth("tok-1"))

	t.Run("dispatches and returns the result", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), sessionID,
			`{"jsonrpc": "2.0", "id": 3, "method": "tools/call", "params": {"name": "echo", "arguments": {"message": "hi"}}}`)
		resp := decodeResponse(t, rr)
		if resp.Error != nil {
			t.Fatalf("unexpected error: %+v", resp.Error)
		}

		raw, _ := json.Marshal(resp.Result)
		var result tools.Result
		if err := json.Unmarshal(raw, &result); err != nil {
			t.Fatalf("failed to decode result: %v", err)
		}
		if result.IsError || len(result.Content) != 1 || result.Content[0].Text != "hi" {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("unknown tool is a JSON-RPC error", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), sessionID,
			`{"jsonrpc": "2.0", "id": 3, "method": "tools/call", "params": {"name": "nope"}}`)
		resp := decodeResponse(t, rr)
		if resp.Error == nil || resp.Error.Code != JSONRPCInvalidParams {
			t.Errorf("expected invalid params, got %+v", resp.Error)
		}
	})

	t.Run("schema violation is an error result, not a protocol error", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), sessionID,
			`{"jsonrpc": "2.0", "id": 3, "method": "tools/call", "params": {"name": "echo", "arguments": {}}}`)
		resp := decodeResponse(t, rr)
		if resp.Error != nil {
			t.Fatalf("expected a result, got protocol error %+v", resp.Error)
		}

		raw, _ := json.Marshal(resp.Result)
		var result tools.Result
		if err := json.Unmarshal(raw, &result); err != nil {
			t.Fatalf("failed to decode result: %v", err)
		}
		if !result.IsError {
			t.Error("expected an error result")
		}
	})

	t.Run("missing tool name is invalid params", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), sessionID,
			`{"jsonrpc": "2.0", "id": 3, "method": "tools/call", "params": {}}`)
		resp := decodeResponse(t, rr)
		if resp.Error == nil || resp.Error.Code != JSONRPCInvalidParams {
			t.Errorf("expected invalid params, got %+v", resp.Error)
		}
	})
}

func TestResources(t *testing.T) {
	server := setupTestServer(t)
	sessionID := initialize(t, server, testAuth("tok-1"))

	t.Run("list advertises the roots", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), sessionID, `{"jsonrpc": "2.0", "id": 4, "method": "resources/list"}`)
		resp := decodeResponse(t, rr)
		if resp.Error != nil {
			t.Fatalf("unexpected error: %+v", resp.Error)
		}

		raw, _ := json.Marshal(resp.Result)
		var result ListResourcesResult
		if err := json.Unmarshal(raw, &result); err != nil {
			t.Fatalf("failed to decode result: %v", err)
		}
		if len(result.Resources) != 1 || result.Resources[0].URI != "things://" {
			t.Errorf("unexpected resources: %+v", result.Resources)
		}
	})

	t.Run("read resolves a root", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), sessionID,
			`{"jsonrpc": "2.0", "id": 4, "method": "resources/read", "params": {"uri": "things://"}}`)
		resp := decodeResponse(t, rr)
		if resp.Error != nil {
			t.Fatalf("unexpected error: %+v", resp.Error)
		}

		raw, _ := json.Marshal(resp.Result)
		var result ReadResourceResult
		if err := json.Unmarshal(raw, &result); err != nil {
			t.Fatalf("failed to decode result: %v", err)
		}
		if len(result.Contents) != 1 || !strings.Contains(result.Contents[0].Text, "one") {
			t.Errorf("unexpected contents: %+v", result.Contents)
		}
	})

	t.Run("missing entity maps to resource-not-found", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), sessionID,
			`{"jsonrpc": "2.0", "id": 4, "method": "resources/read", "params": {"uri": "things://missing"}}`)
		resp := decodeResponse(t, rr)
		if resp.Error == nil || resp.Error.Code != JSONRPCResourceNotFound {
			t.Errorf("expected resource not found, got %+v", resp.Error)
		}
	})

	t.Run("invalid URI maps to invalid params", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), sessionID,
			`{"jsonrpc": "2.0", "id": 4, "method": "resources/read", "params": {"uri": "bogus"}}`)
		resp := decodeResponse(t, rr)
		if resp.Error == nil || resp.Error.Code != JSONRPCInvalidParams {
			t.Errorf("expected invalid params, got %+v", resp.Error)
		}
	})
}

func TestPrompts(t *testing.T) {
	server := setupTestServer(t)
	sessionID := initialize(t, server, testAuth("tok-1"))

	t.Run("list returns the catalogue", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), sessionID, `{"jsonrpc": "2.0", "id": 5, "method": "prompts/list"}`)
		resp := decodeResponse(t, rr)
		if resp.Error != nil {
			t.Fatalf("unexpected error: %+v", resp.Error)
		}

		raw, _ := json.Marshal(resp.Result)
		var result ListPromptsResult
		if err := json.Unmarshal(raw, &result); err != nil {
			t.Fatalf("failed to decode result: %v", err)
		}
		if len(result.Prompts) == 0 {
			t.Error("expected at least one prompt")
		}
	})

	t.Run("get returns messages", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), sessionID,
			`{"jsonrpc": "2.0", "id": 5, "method": "prompts/get", "params": {"name": "automate_website"}}`)
		resp := decodeResponse(t, rr)
		if resp.Error != nil {
			t.Fatalf("unexpected error: %+v", resp.Error)
		}

		raw, _ := json.Marshal(resp.Result)
		var result GetPromptResult
		if err := json.Unmarshal(raw, &result); err != nil {
			t.Fatalf("failed to decode result: %v", err)
		}
		if len(result.Messages) != 1 || result.Messages[0].Content.Text == "" {
			t.Errorf("unexpected prompt result: %+v", result)
		}
	})

	t.Run("unknown prompt is invalid params", func(t *testing.T) {
		rr := doRPC(t, server, testAuth("tok-1"), sessionID,
			`{"jsonrpc": "2.0", "id": 5, "method": "prompts/get", "params": {"name": "nope"}}`)
		resp := decodeResponse(t, rr)
		if resp.Error == nil || resp.Error.Code != JSONRPCInvalidParams {
			t.Errorf("expected invalid params, got %+v", resp.Error)
		}
	})
}

func TestSessionTermination(t *testing.T) {
	server := setupTestServer(t)

	deleteSession := func(sessionID string, authCtx *auth.AuthContext) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/mcp", nil)
		if sessionID != "" {
			req.Header.Set("Mcp-Session-Id", sessionID)
		}
		if authCtx != nil {
			req = req.WithContext(auth.WithAuth(req.Context(), authCtx))
		}
		rr := httptest.NewRecorder()
		server.Handler().ServeHTTP(rr, req)
		return rr
	}

	t.Run("owner can terminate", func(t *testing.T) {
		sessionID := initialize(t, server, testAuth("tok-owner"))
		rr := deleteSession(sessionID, testAuth("tok-owner"))
		if rr.Code != http.StatusNoContent {
			t.Errorf("expected status 204, got %d", rr.Code)
		}

		// The session is gone now.
		rr2 := doRPC(t, server, testAuth("tok-owner"), sessionID, `{"jsonrpc": "2.0", "id": 1, "method": "ping"}`)
		if rr2.Code != http.StatusNotFound {
			t.Errorf("expected status 404 after termination, got %d", rr2.Code)
		}
	})

	t.Run("other credentials cannot terminate", func(t *testing.T) {
		sessionID := initialize(t, server, testAuth("tok-owner"))
		rr := deleteSession(sessionID, testAuth("tok-other"))
		if rr.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rr.Code)
		}
	})

	t.Run("missing session header is a 400", func(t *testing.T) {
		rr := deleteSession("", testAuth("tok-owner"))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})

	t.Run("unknown session is a 404", func(t *testing.T) {
		rr := deleteSession("no-such-session", testAuth("tok-owner"))
		if rr.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rr.Code)
		}
	})
}

func TestMethodNotAllowed(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rr.Code)
	}
}
