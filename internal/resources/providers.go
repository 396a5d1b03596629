// ABOUTME: Scheme providers exposing platform entities as readable resources
// ABOUTME: profiles, browsers, browser_pools, and apps roots

package resources

import (
	"context"
	"fmt"

	"github.com/gantrylabs/gantry-mcp/internal/platform"
)

// DefaultProviders returns the full provider set.
func DefaultProviders() []*Provider {
	return []*Provider{
		profilesProvider(),
		browsersProvider(),
		browserPoolsProvider(),
		appsProvider(),
	}
}

func profilesProvider() *Provider {
	return &Provider{
		Scheme:      "profiles",
		Name:        "profiles",
		Description: "Browser profiles that persist cookies and local storage.",
		List: func(ctx context.Context, client *platform.Client) (any, int, error) {
			profiles, err := client.ListProfiles(ctx)
			return profiles, len(profiles), err
		},
		Get: func(ctx context.Context, client *platform.Client, id string) (any, error) {
			return client.GetProfile(ctx, id)
		},
	}
}

func browsersProvider() *Provider {
	return &Provider{
		Scheme:      "browsers",
		Name:        "live browser sessions",
		Description: "Currently running browser sessions.",
		List: func(ctx context.Context, client *platform.Client) (any, int, error) {
			browsers, err := client.ListBrowsers(ctx)
			return browsers, len(browsers), err
		},
		Get: func(ctx context.Context, client *platform.Client, id string) (any, error) {
			return client.GetBrowser(ctx, id)
		},
	}
}

func browserPoolsProvider() *Provider {
	return &Provider{
		Scheme:      "browser_pools",
		Name:        "browser pools",
		Description: "Pools of pre-warmed browser sessions.",
		List: func(ctx context.Context, client *platform.Client) (any, int, error) {
			pools, err := client.ListBrowserPools(ctx)
			return pools, len(pools), err
		},
		Get: func(ctx context.Context, client *platform.Client, id string) (any, error) {
			return client.GetBrowserPool(ctx, id)
		},
	}
}

func appsProvider() *Provider {
	return &Provider{
		Scheme:      "apps",
		Name:        "apps",
		Description: "Deployed apps and their invokable actions.",
		List: func(ctx context.Context, client *platform.Client) (any, int, error) {
			apps, err := client.ListApps(ctx, "", "")
			return apps, len(apps), err
		},
		// The platform has no single-app endpoint; a name-filtered list
		// stands in for it.
		Get: func(ctx context.Context, client *platform.Client, id string) (any, error) {
			apps, err := client.ListApps(ctx, id, "")
			if err != nil {
				return nil, err
			}
			if len(apps) == 0 {
				return nil, fmt.Errorf("%w: app %q", ErrNotFound, id)
			}
			return apps[0], nil
		},
	}
}
