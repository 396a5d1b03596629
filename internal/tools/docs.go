// ABOUTME: search_docs tool querying the documentation backend
// ABOUTME: Uses the process-wide docs credential, not the caller's token

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
)

const searchDocsSchema = `{
	"type": "object",
	"properties": {
		"query": {"type": "string", "description": "Search query"},
		"limit": {"type": "integer", "minimum": 1, "maximum": 25, "description": "Maximum number of results"}
	},
	"required": ["query"]
}`

type docsHandlers struct {
	deps Deps
}

// searchDocsTool searches the platform documentation.
func searchDocsTool(deps Deps) *Definition {
	h := &docsHandlers{deps: deps}
	return &Definition{
		Name:        "search_docs",
		Description: "Search the platform documentation and return matching pages with snippets.",
		InputSchema: searchDocsSchema,
		Handler:     h.search,
	}
}

func (h *docsHandlers) search(ctx context.Context, _ *auth.AuthContext, args map[string]any) (*Result, error) {
	query := stringArg(args, "query")
	if query == "" {
		return NewErrorResult("search_docs: query is required"), nil
	}
	if h.deps.Docs == nil {
		return NewErrorResult("search_docs: documentation search is not configured"), nil
	}

	hits, err := h.deps.Docs.Search(ctx, query, intArgOr(args, "limit", 0))
	if err != nil {
		return upstreamError("search_docs", "search", err), nil
	}
	if len(hits) == 0 {
		return NewTextResult("No documentation results for %q.", query), nil
	}

	var b strings.Builder
	for i, hit := range hits {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s\n%s", hit.Title, hit.URL)
		if hit.Snippet != "" {
			b.WriteString("\n")
			b.WriteString(hit.Snippet)
		}
	}
	return NewTextResult("%s", b.String()), nil
}
