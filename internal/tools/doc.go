// Package tools provides the tool catalogue and its schema-validated
// dispatcher.
//
// # Overview
//
// Every tool is a Definition: a name, a description, a raw JSON Schema for
// its parameters, and a handler. The Registry compiles the schemas once at
// startup and is read-only afterwards, so dispatch runs without locks.
//
// # Dispatch contract
//
// Dispatch resolves the tool by name, validates the arguments against its
// schema, and runs the handler. Everything past name resolution that goes
// wrong comes back as a Result with IsError set, never as a Go error:
// malformed arguments, missing preconditions, and upstream platform failures
// are all responses the caller can read. The only error Dispatch returns is
// ErrToolNotFound, which the protocol layer maps to a JSON-RPC error.
//
// # Handlers
//
// Handlers receive the caller's auth context and build a platform client
// bound to that caller's credential through Deps.Platform. The docs search
// client in Deps.Docs is the one exception: it carries a process-wide
// credential for the documentation backend.
//
// # Catalogue
//
// DefaultRegistry registers the full tool set:
//
//	search_docs              - documentation search
//	manage_browsers          - browser session lifecycle
//	manage_profiles          - persisted browser profiles
//	manage_browser_pools     - warm session pools
//	manage_proxies           - proxy configurations
//	manage_extensions        - uploaded browser extensions
//	manage_apps              - apps, deployments, invocations
//	computer_action          - OS-level input and screenshots
//	exec_command             - shell commands in the session VM
//	execute_playwright_code  - remote Playwright runs
package tools
