// ABOUTME: MCP-compatible HTTP server implementing the Streamable HTTP transport
// ABOUTME: Single /mcp endpoint: POST JSON-RPC, DELETE session termination

package mcp

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/resources"
	"github.com/gantrylabs/gantry-mcp/internal/tools"
)

// Supported MCP protocol versions
var supportedProtocolVersions = map[string]bool{
	"2025-03-26": true,
	"2025-06-18": true,
}

// latestProtocolVersion is the version advertised in initialize responses
const latestProtocolVersion = "2025-06-18"

// MaxRequestBodySize is the maximum allowed size for request bodies (1MB).
const MaxRequestBodySize = 1 << 20

// serverName and serverVersion identify this server in initialize responses.
const (
	serverName    = "gantry-mcp"
	serverVersion = "1.0.0"
)

// JSON-RPC 2.0 types

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Standard JSON-RPC error codes, plus the MCP resource-not-found code.
const (
	JSONRPCParseError       = -32700
	JSONRPCInvalidRequest   = -32600
	JSONRPCMethodNotFound   = -32601
	JSONRPCInvalidParams    = -32602
	JSONRPCInternalError    = -32603
	JSONRPCResourceNotFound = -32002
)

// MCP wire types

// ToolInfo represents an MCP tool definition.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ListToolsResult is the result for tools/list.
type ListToolsResult struct {
	Tools []ToolInfo `json:"tools"`
}

// CallToolParams are the params for tools/call.
type CallToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ListResourcesResult is the result for resources/list.
type ListResourcesResult struct {
	Resources []resources.Descriptor `json:"resources"`
}

// ReadResourceParams are the params for resources/read.
type ReadResourceParams struct {
	URI string `json:"uri"`
}

// ReadResourceResult is the result for resources/read.
type ReadResourceResult struct {
	Contents []resources.Contents `json:"contents"`
}

// mcpSession tracks an active MCP client session.
type mcpSession struct {
	id              string
	protocolVersion string
	ownerToken      string // credential used at initialize, checked on DELETE
	createdAt       time.Time
}

// sessionStore manages active MCP sessions (in-memory).
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*mcpSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*mcpSession)}
}

func (s *sessionStore) create(protocolVersion, ownerToken string) *mcpSession {
	sess := &mcpSession{
		id:              uuid.New().String(),
		protocolVersion: protocolVersion,
		ownerToken:      ownerToken,
		createdAt:       time.Now(),
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess
}

func (s *sessionStore) get(id string) (*mcpSession, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	return sess, ok
}

func (s *sessionStore) delete(id string) bool {
	s.mu.Lock()
	_, existed := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	return existed
}

// Config holds configuration for the MCP server.
type Config struct {
	Registry *tools.Registry
	Resolver *resources.Resolver
	Prompts  []Prompt
	Logger   *slog.Logger
}

// Server implements the MCP Streamable HTTP transport over one endpoint.
// Authentication happens upstream: the auth middleware attaches an
// AuthContext before any request reaches this handler, so handlers here
// read the context, never headers.
type Server struct {
	registry *tools.Registry
	resolver *resources.Resolver
	prompts  []Prompt
	logger   *slog.Logger
	sessions *sessionStore
}

// NewServer creates a new MCP server with the given configuration.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if cfg.Resolver == nil {
		return nil, errors.New("resolver is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	prompts := cfg.Prompts
	if prompts == nil {
		prompts = DefaultPrompts()
	}

	return &Server{
		registry: cfg.Registry,
		resolver: cfg.Resolver,
		prompts:  prompts,
		logger:   logger,
		sessions: newSessionStore(),
	}, nil
}

// Handler returns the single MCP endpoint handler, to be mounted behind the
// auth middleware.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handleMCP)
}

// handleMCP dispatches on HTTP method per the Streamable HTTP transport.
func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handlePost(w, r)
	case http.MethodGet:
		// No server-initiated SSE streams.
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	case http.MethodDelete:
		s.handleDelete(w, r)
	default:
		w.Header().Set("Allow", "POST, DELETE")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// handleDelete terminates a session. Only the credential that created a
// session may terminate it.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("Mcp-Session-Id")
	if sessionID == "" {
		http.Error(w, "Bad Request: missing Mcp-Session-Id", http.StatusBadRequest)
		return
	}

	sess, ok := s.sessions.get(sessionID)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if sess.ownerToken != "" {
		authCtx := auth.FromContext(r.Context())
		if authCtx == nil || authCtx.Token != sess.ownerToken {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	s.sessions.delete(sessionID)
	s.logger.Info("MCP session terminated", "session_id", sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// handlePost processes JSON-RPC messages sent via HTTP POST.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("Mcp-Session-Id")
	protoVersion := r.Header.Get("Mcp-Protocol-Version")

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		s.sendJSONRPCError(w, nil, JSONRPCParseError, "failed to read request body", nil)
		return
	}
	if int64(len(body)) > MaxRequestBodySize {
		s.sendJSONRPCError(w, nil, JSONRPCInvalidRequest, "request body too large", nil)
		return
	}

	var req JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.sendJSONRPCError(w, nil, JSONRPCParseError, "invalid JSON", nil)
		return
	}

	if req.JSONRPC != "2.0" {
		s.sendJSONRPCError(w, req.ID, JSONRPCInvalidRequest, "invalid JSON-RPC version", nil)
		return
	}

	isInitialize := req.Method == "initialize"
	isNotification := len(req.ID) == 0 || string(req.ID) == "null"

	// The protocol version header is optional; when present it must name a
	// version we speak. Not required on initialize.
	if !isInitialize && protoVersion != "" && !supportedProtocolVersions[protoVersion] {
		http.Error(w, "Bad Request: unsupported MCP-Protocol-Version", http.StatusBadRequest)
		return
	}

	if !isInitialize && !isNotification {
		if sessionID == "" {
			http.Error(w, "Bad Request: missing Mcp-Session-Id", http.StatusBadRequest)
			return
		}
		if _, ok := s.sessions.get(sessionID); !ok {
			// Session expired or invalid; the client must re-initialize.
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
	}

	s.logger.Debug("MCP request",
		"method", req.Method,
		"is_notification", isNotification,
		"session_id", sessionID,
	)

	// Notifications: accept and return HTTP 202 with no body.
	if isNotification {
		if !strings.HasPrefix(req.Method, "notifications/") {
			s.logger.Warn("received notification for non-notification method", "method", req.Method)
		}
		w.WriteHeader(http.StatusAccepted)
		return
	}

	switch req.Method {
	case "initialize":
		s.handleInitialize(w, r, req)
	case "ping":
		s.sendJSONRPCResult(w, req.ID, map[string]any{})
	case "tools/list":
		s.handleToolsList(w, req)
	case "tools/call":
		s.handleToolsCall(w, r, req)
	case "resources/list":
		s.handleResourcesList(w, req)
	case "resources/read":
		s.handleResourcesRead(w, r, req)
	case "prompts/list":
		s.handlePromptsList(w, req)
	case "prompts/get":
		s.handlePromptsGet(w, req)
	default:
		s.sendJSONRPCError(w, req.ID, JSONRPCMethodNotFound, "method not found", nil)
	}
}

// handleInitialize handles the MCP initialize handshake and creates a session.
func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request, req JSONRPCRequest) {
	ownerToken := ""
	if authCtx := auth.FromContext(r.Context()); authCtx != nil {
		ownerToken = authCtx.Token
	}

	sess := s.sessions.create(latestProtocolVersion, ownerToken)
	s.logger.Info("MCP session created",
		"session_id", sess.id,
		"protocol_version", sess.protocolVersion,
	)

	w.Header().Set("Mcp-Session-Id", sess.id)

	result := map[string]any{
		"protocolVersion": latestProtocolVersion,
		"capabilities": map[string]any{
			"tools":     map[string]any{},
			"resources": map[string]any{},
			"prompts":   map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    serverName,
			"version": serverVersion,
		},
	}
	s.sendJSONRPCResult(w, req.ID, result)
}

// handleToolsList handles tools/list requests.
func (s *Server) handleToolsList(w http.ResponseWriter, req JSONRPCRequest) {
	defs := s.registry.Definitions()
	result := ListToolsResult{Tools: make([]ToolInfo, len(defs))}
	for i, def := range defs {
		result.Tools[i] = ToolInfo{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: json.RawMessage(def.InputSchema),
		}
	}
	s.logger.Debug("tools/list", "count", len(defs))
	s.sendJSONRPCResult(w, req.ID, result)
}

// handleToolsCall handles tools/call requests.
func (s *Server) handleToolsCall(w http.ResponseWriter, r *http.Request, req JSONRPCRequest) {
	var params CallToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.sendJSONRPCError(w, req.ID, JSONRPCInvalidParams, "invalid params", nil)
			return
		}
	}
	if params.Name == "" {
		s.sendJSONRPCError(w, req.ID, JSONRPCInvalidParams, "tool name is required", nil)
		return
	}

	authCtx := auth.FromContext(r.Context())
	requestID := uuid.New().String()
	s.logger.Debug("tools/call", "tool_name", params.Name, "request_id", requestID)

	result, err := s.registry.Dispatch(r.Context(), params.Name, authCtx, params.Arguments)
	if err != nil {
		if errors.Is(err, tools.ErrToolNotFound) {
			s.sendJSONRPCError(w, req.ID, JSONRPCInvalidParams, "tool not found", nil)
			return
		}
		s.logger.Warn("tool dispatch failed",
			"tool_name", params.Name,
			"request_id", requestID,
			"error", err,
		)
		s.sendJSONRPCError(w, req.ID, JSONRPCInternalError, "tool execution failed", nil)
		return
	}

	s.logger.Debug("tools/call complete",
		"tool_name", params.Name,
		"request_id", requestID,
		"is_error", result.IsError,
	)
	s.sendJSONRPCResult(w, req.ID, result)
}

// handleResourcesList handles resources/list requests.
func (s *Server) handleResourcesList(w http.ResponseWriter, req JSONRPCRequest) {
	s.sendJSONRPCResult(w, req.ID, ListResourcesResult{Resources: s.resolver.Descriptors()})
}

// handleResourcesRead handles resources/read requests.
func (s *Server) handleResourcesRead(w http.ResponseWriter, r *http.Request, req JSONRPCRequest) {
	var params ReadResourceParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.sendJSONRPCError(w, req.ID, JSONRPCInvalidParams, "invalid params", nil)
			return
		}
	}
	if params.URI == "" {
		s.sendJSONRPCError(w, req.ID, JSONRPCInvalidParams, "resource uri is required", nil)
		return
	}

	authCtx := auth.FromContext(r.Context())
	contents, err := s.resolver.Resolve(r.Context(), authCtx, params.URI)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrInvalidURI):
			s.sendJSONRPCError(w, req.ID, JSONRPCInvalidParams, err.Error(), nil)
		case errors.Is(err, resources.ErrNotFound):
			s.sendJSONRPCError(w, req.ID, JSONRPCResourceNotFound, err.Error(), nil)
		default:
			s.logger.Warn("resource read failed", "uri", params.URI, "error", err)
			s.sendJSONRPCError(w, req.ID, JSONRPCInternalError, "resource read failed", nil)
		}
		return
	}
	s.sendJSONRPCResult(w, req.ID, ReadResourceResult{Contents: []resources.Contents{*contents}})
}

// sendJSONRPCResult sends a successful JSON-RPC response.
func (s *Server) sendJSONRPCResult(w http.ResponseWriter, id json.RawMessage, result any) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("failed to encode JSON-RPC response", "error", err)
	}
}

// sendJSONRPCError sends a JSON-RPC error response.
func (s *Server) sendJSONRPCError(w http.ResponseWriter, id json.RawMessage, code int, message string, data any) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("failed to encode JSON-RPC error response", "error", err)
	}
}
