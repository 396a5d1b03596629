// Package platform is the typed client for the Gantry automation platform
// API: browsers, profiles, browser pools, proxies, extensions, apps with
// deployments and invocations, session replays, and in-VM computer and
// process control.
//
// # Per-Request Clients
//
// A Client is bound to one caller's bearer credential and lives for one
// request. Opaque API keys are forwarded without local verification; the
// platform authenticates them on first use. Construction is cheap, so the
// MCP layer builds a fresh client per tool or resource invocation.
//
// # Error Shape
//
// Every non-2xx response becomes an *APIError carrying the HTTP status and
// the platform's code and message. IsNotFound distinguishes missing
// entities from transport failures, which resource resolution needs.
//
// # Pagination
//
// List operations follow the backend's next_cursor until exhaustion (with
// a page cap), so callers always see complete item sets.
//
// # Invocation Streams
//
// FollowInvocationEvents opens a finite, non-restartable server-sent event
// stream for an async invocation. The stream yields invocation_state
// snapshots and error events; reducing it to a terminal state is the tool
// layer's job.
package platform
