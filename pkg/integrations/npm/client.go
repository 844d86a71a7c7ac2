package npm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/px/pkg/buildinfo"
	"github.com/matzehuels/px/pkg/integrations"
)

// DefaultRegistry is the public npm registry.
const DefaultRegistry = "https://registry.npmjs.org"

const acceptAbbreviated = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8, */*"

// Options configures a [Client].
type Options struct {
	BaseURL string        // Registry base URL; empty selects DefaultRegistry
	Timeout time.Duration // Per-request timeout
	Retries int           // Extra attempts for network errors and 5xx responses
}

// Client fetches package documents from an npm-compatible registry.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a registry client from opts.
func NewClient(opts Options) *Client {
	base := integrations.NormalizeRegistryURL(opts.BaseURL)
	if base == "" {
		base = DefaultRegistry
	}
	return &Client{
		Client: integrations.NewClient(integrations.Options{
			Timeout: opts.Timeout,
			Retries: opts.Retries,
			Headers: map[string]string{
				"Accept":     acceptAbbreviated,
				"User-Agent": buildinfo.UserAgent(),
			},
		}),
		baseURL: base,
	}
}

// BaseURL returns the registry base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchPackument retrieves the document for pkg. A missing package yields an
// error wrapping [integrations.ErrNotFound].
func (c *Client) FetchPackument(ctx context.Context, pkg string) (*Packument, error) {
	pkg = strings.TrimSpace(pkg)

	var doc Packument
	if err := c.Get(ctx, c.baseURL+"/"+pkg, &doc); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = pkg
	}
	return &doc, nil
}
