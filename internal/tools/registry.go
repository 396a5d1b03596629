// ABOUTME: Read-only registry of named tools with schema-validated dispatch
// ABOUTME: Catches every handler failure and shapes it into an error envelope

package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

// ErrToolNotFound indicates the named tool is not registered.
var ErrToolNotFound = errors.New("tool not found")

// HandlerFunc executes one tool invocation. Handlers receive the caller's
// AuthContext as a required argument; they never read request headers.
type HandlerFunc func(ctx context.Context, authCtx *auth.AuthContext, args map[string]any) (*Result, error)

// Definition declares one tool: its name, description, parameter schema
// (raw JSON Schema), and handler.
type Definition struct {
	Name        string
	Description string
	InputSchema string
	Handler     HandlerFunc
}

// registeredTool pairs a definition with its compiled parameter schema.
type registeredTool struct {
	def    *Definition
	schema *gojsonschema.Schema
}

// Registry holds the tool set. It is populated once at process start and
// read-only afterwards, so dispatch needs no locking: there are no writers
// after initialization.
type Registry struct {
	order  []string
	byName map[string]*registeredTool
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		byName: make(map[string]*registeredTool),
		logger: logger,
	}
}

// Register adds a tool, compiling its parameter schema. Duplicate names and
// invalid schemas are registration errors, caught at startup.
func (r *Registry) Register(def *Definition) error {
	if def.Name == "" {
		return errors.New("tool name is required")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %q has no handler", def.Name)
	}
	if _, exists := r.byName[def.Name]; exists {
		return fmt.Errorf("tool %q already registered", def.Name)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(def.InputSchema))
	if err != nil {
		return fmt.Errorf("compiling schema for tool %q: %w", def.Name, err)
	}

	r.byName[def.Name] = &registeredTool{def: def, schema: schema}
	r.order = append(r.order, def.Name)
	return nil
}

// Definitions returns all tool definitions in registration order.
func (r *Registry) Definitions() []*Definition {
	defs := make([]*Definition, len(r.order))
	for i, name := range r.order {
		defs[i] = r.byName[name].def
	}
	return defs
}

// Dispatch validates args against the tool's schema and runs its handler.
// Every failure past name resolution comes back as an error envelope, never
// as an error: malformed input and handler failures are responses, not
// transport faults. The only error return is ErrToolNotFound.
func (r *Registry) Dispatch(ctx context.Context, name string, authCtx *auth.AuthContext, args map[string]any) (*Result, error) {
	tool, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrToolNotFound, name)
	}

	// No authorization context means the gate was bypassed somehow; fail
	// fast rather than proceed unauthenticated.
	if authCtx == nil {
		return NewErrorResult("%s: authentication required", name), nil
	}

	if args == nil {
		args = map[string]any{}
	}
	validation, err := tool.schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return NewErrorResult("%s: validating parameters: %v", name, err), nil
	}
	if !validation.Valid() {
		return NewErrorResult("%s: invalid parameters: %s", name, formatSchemaErrors(validation)), nil
	}

	result, err := tool.def.Handler(ctx, authCtx, args)
	if err != nil {
		r.logger.Warn("tool handler failed", "tool", name, "error", err)
		return NewErrorResult("%s: %v", name, err), nil
	}
	return result, nil
}

// formatSchemaErrors joins schema violations into one line.
func formatSchemaErrors(result *gojsonschema.Result) string {
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "; ")
}

// Deps wires tool handlers to their collaborators. Platform builds a
// per-request client bound to the caller's credential.
type Deps struct {
	Platform func(*auth.AuthContext) *platform.Client
	Docs     *platform.DocsClient
	Logger   *slog.Logger
}

// DefaultRegistry builds the full tool catalogue.
func DefaultRegistry(deps Deps) (*Registry, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	r := NewRegistry(deps.Logger)

	defs := []*Definition{
		searchDocsTool(deps),
		manageBrowsersTool(deps),
		manageProfilesTool(deps),
		manageBrowserPoolsTool(deps),
		manageProxiesTool(deps),
		manageExtensionsTool(deps),
		manageAppsTool(deps),
		computerActionTool(deps),
		execCommandTool(deps),
		executePlaywrightCodeTool(deps),
	}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}
