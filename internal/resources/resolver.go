// ABOUTME: URI resolver mapping scheme://id resources to platform reads
// ABOUTME: Bare roots list; empty lists render a sentinel, never nothing

package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

// ErrNotFound indicates the URI was well-formed but names no entity.
var ErrNotFound = errors.New("resource not found")

// ErrInvalidURI indicates the URI does not match any registered scheme.
var ErrInvalidURI = errors.New("invalid resource URI")

// Provider serves one URI scheme. List backs the bare root
// (scheme://), Get backs scheme://<id>.
type Provider struct {
	Scheme      string
	Name        string // plural, lower-case: "profiles", "live browser sessions"
	Description string

	List func(ctx context.Context, client *platform.Client) (items any, n int, err error)
	Get  func(ctx context.Context, client *platform.Client, id string) (any, error)
}

// root is the provider's bare root URI.
func (p *Provider) root() string {
	return p.Scheme + "://"
}

// Contents is the resolved payload for one resource read.
type Contents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Descriptor advertises one readable resource root.
type Descriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Resolver routes resource URIs to their scheme provider.
type Resolver struct {
	order     []string
	byScheme  map[string]*Provider
	platformf func(*auth.AuthContext) *platform.Client
	logger    *slog.Logger
}

// NewResolver builds a resolver over the given providers. Providers are
// registered once; the resolver is read-only afterwards.
func NewResolver(platformf func(*auth.AuthContext) *platform.Client, providers []*Provider, logger *slog.Logger) (*Resolver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		byScheme:  make(map[string]*Provider, len(providers)),
		platformf: platformf,
		logger:    logger,
	}
	for _, p := range providers {
		if p.Scheme == "" || p.List == nil || p.Get == nil {
			return nil, fmt.Errorf("provider %q is incomplete", p.Scheme)
		}
		if _, exists := r.byScheme[p.Scheme]; exists {
			return nil, fmt.Errorf("scheme %q already registered", p.Scheme)
		}
		r.byScheme[p.Scheme] = p
		r.order = append(r.order, p.Scheme)
	}
	return r, nil
}

// Descriptors returns the advertised resource roots in registration order.
func (r *Resolver) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, scheme := range r.order {
		p := r.byScheme[scheme]
		out = append(out, Descriptor{
			URI:         p.root(),
			Name:        p.Name,
			Description: p.Description,
			MimeType:    "application/json",
		})
	}
	return out
}

// Resolve reads the resource at uri on behalf of the caller. The identifier
// is everything after scheme:// taken verbatim, with no decoding.
func (r *Resolver) Resolve(ctx context.Context, authCtx *auth.AuthContext, uri string) (*Contents, error) {
	scheme, id, ok := splitURI(uri)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	p, exists := r.byScheme[scheme]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}

	client := r.platformf(authCtx)

	if id == "" {
		items, n, err := p.List(ctx, client)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", p.Name, err)
		}
		if n == 0 {
			return &Contents{
				URI:      uri,
				MimeType: "text/plain",
				Text:     fmt.Sprintf("No %s found.", p.Name),
			}, nil
		}
		return jsonContents(uri, items)
	}

	item, err := p.Get(ctx, client, id)
	if err != nil {
		if platform.IsNotFound(err) || errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, uri)
		}
		return nil, fmt.Errorf("reading %s: %w", uri, err)
	}
	return jsonContents(uri, item)
}

// splitURI separates scheme://identifier. Anything without the :// marker,
// or with an empty scheme, is invalid.
func splitURI(uri string) (scheme, id string, ok bool) {
	scheme, id, found := strings.Cut(uri, "://")
	if !found || scheme == "" {
		return "", "", false
	}
	return scheme, id, true
}

// jsonContents renders v as an indented JSON text payload.
func jsonContents(uri string, v any) (*Contents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", uri, err)
	}
	return &Contents{URI: uri, MimeType: "application/json", Text: string(data)}, nil
}
