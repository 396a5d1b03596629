// Package mcp implements the Model Context Protocol server for tool access.
//
// # Overview
//
// MCP (Model Context Protocol) is a standard for AI tool integration. This
// package provides an MCP-compatible HTTP server exposing the browser
// automation tool catalogue, platform resources, and workflow prompts to
// external AI clients.
//
// # Protocol
//
// JSON-RPC 2.0 over the Streamable HTTP transport, on one endpoint:
//
//   - POST /mcp   - JSON-RPC requests (initialize, ping, tools/list,
//     tools/call, resources/list, resources/read, prompts/list, prompts/get)
//   - DELETE /mcp - session termination (Mcp-Session-Id header)
//   - GET /mcp    - 405; no server-initiated streams
//
// Notifications (requests without an id) are accepted with HTTP 202 and no
// body. Sessions are in-memory: initialize creates one and returns its id
// in the Mcp-Session-Id header; every other request must present it.
//
// # Authentication
//
// The server itself never reads credentials. The auth middleware in front
// of it validates the bearer credential and attaches an AuthContext to the
// request context; tools/call and resources/read pass that context down so
// platform calls run under the caller's own credential. A session can only
// be terminated by the credential that created it.
//
// # Tool Execution
//
// Clients call tools/call to execute a tool:
//
//	{
//	  "jsonrpc": "2.0",
//	  "method": "tools/call",
//	  "params": {
//	    "name": "manage_browsers",
//	    "arguments": {"action": "create", "profile_name": "work"}
//	  },
//	  "id": 2
//	}
//
// Tool failures come back as results with isError set, not JSON-RPC errors;
// the only JSON-RPC error a tool call produces is for an unknown tool name.
// Missing resources map to error code -32002.
package mcp
