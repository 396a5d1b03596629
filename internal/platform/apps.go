// ABOUTME: App, deployment, and invocation operations against the platform API
// ABOUTME: Invocations carry the queued/running/succeeded/failed lifecycle

package platform

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// InvocationStatus is the lifecycle state of an app invocation.
type InvocationStatus string

const (
	InvocationQueued    InvocationStatus = "queued"
	InvocationRunning   InvocationStatus = "running"
	InvocationSucceeded InvocationStatus = "succeeded"
	InvocationFailed    InvocationStatus = "failed"
)

// IsTerminal reports whether the status ends the invocation lifecycle.
// Only succeeded and failed are terminal; everything else means the
// invocation is still in flight.
func (s InvocationStatus) IsTerminal() bool {
	return s == InvocationSucceeded || s == InvocationFailed
}

// App is a deployed application exposing named actions.
type App struct {
	Name         string   `json:"app_name"`
	Version      string   `json:"version,omitempty"`
	Region       string   `json:"region,omitempty"`
	DeploymentID string   `json:"deployment_id,omitempty"`
	Actions      []Action `json:"actions,omitempty"`
}

// Action is an invokable entry point of an app.
type Action struct {
	Name string `json:"name"`
}

// Deployment is one deployed version of an app.
type Deployment struct {
	ID        string    `json:"id"`
	AppName   string    `json:"app_name,omitempty"`
	Version   string    `json:"version,omitempty"`
	Status    string    `json:"status,omitempty"`
	Region    string    `json:"region,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Invocation is one execution of an app action. Referenced, not owned: the
// platform keeps running it even if the caller disconnects mid-follow.
type Invocation struct {
	ID         string           `json:"id"`
	AppName    string           `json:"app_name,omitempty"`
	ActionName string           `json:"action_name,omitempty"`
	Status     InvocationStatus `json:"status"`
	Output     string           `json:"output,omitempty"`
	Error      string           `json:"error,omitempty"`
	StartedAt  time.Time        `json:"started_at,omitzero"`
	FinishedAt time.Time        `json:"finished_at,omitzero"`
}

// InvokeActionRequest holds parameters for invoking an app action.
type InvokeActionRequest struct {
	AppName    string `json:"app_name"`
	ActionName string `json:"action_name"`
	Version    string `json:"version,omitempty"`
	Payload    string `json:"payload,omitempty"`
	Async      bool   `json:"async,omitempty"`
}

// ListApps returns deployed apps, optionally filtered by name and version.
func (c *Client) ListApps(ctx context.Context, appName, version string) ([]App, error) {
	query := url.Values{}
	if appName != "" {
		query.Set("app_name", appName)
	}
	if version != "" {
		query.Set("version", version)
	}
	return listAll[App](ctx, c, "/apps", query)
}

// ListDeployments returns deployments, optionally filtered by app name.
func (c *Client) ListDeployments(ctx context.Context, appName string) ([]Deployment, error) {
	query := url.Values{}
	if appName != "" {
		query.Set("app_name", appName)
	}
	return listAll[Deployment](ctx, c, "/deployments", query)
}

// GetDeployment fetches a deployment by id.
func (c *Client) GetDeployment(ctx context.Context, id string) (*Deployment, error) {
	var dep Deployment
	if err := c.do(ctx, http.MethodGet, "/deployments/"+url.PathEscape(id), nil, nil, &dep); err != nil {
		return nil, err
	}
	return &dep, nil
}

// InvokeAction starts an invocation. With Async set the returned invocation
// is typically still queued and the caller follows its event stream.
func (c *Client) InvokeAction(ctx context.Context, req InvokeActionRequest) (*Invocation, error) {
	var inv Invocation
	if err := c.do(ctx, http.MethodPost, "/invocations", nil, req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetInvocation fetches an invocation snapshot by id.
func (c *Client) GetInvocation(ctx context.Context, id string) (*Invocation, error) {
	var inv Invocation
	if err := c.do(ctx, http.MethodGet, "/invocations/"+url.PathEscape(id), nil, nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}
