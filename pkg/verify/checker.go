package verify

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/px/pkg/integrations/npm"
)

// Fetcher retrieves registry package documents. *npm.Client implements it.
type Fetcher interface {
	FetchPackument(ctx context.Context, pkg string) (*npm.Packument, error)
}

// RegistryChecker decides availability from the registry document of the
// declaration package.
type RegistryChecker struct {
	fetcher Fetcher
	logger  *log.Logger
}

// NewRegistryChecker creates a checker. A nil logger discards output.
func NewRegistryChecker(fetcher Fetcher, logger *log.Logger) *RegistryChecker {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &RegistryChecker{fetcher: fetcher, logger: logger}
}

// Check returns HasTypes when the declaration package exists and its last
// published version is not deprecated, NoTypes otherwise.
func (c *RegistryChecker) Check(ctx context.Context, declaration string) Availability {
	doc, err := c.fetcher.FetchPackument(ctx, declaration)
	if err != nil {
		c.logger.Debug("registry lookup failed", "package", declaration, "error", err)
		return NoTypes
	}

	latest, ok := doc.Latest()
	if !ok {
		c.logger.Debug("no published versions", "package", declaration)
		return NoTypes
	}
	if latest.IsDeprecated() {
		c.logger.Debug("latest version deprecated", "package", declaration, "version", latest.Number, "reason", latest.Deprecated)
		return NoTypes
	}
	c.logger.Debug("declarations available", "package", declaration, "version", latest.Number)
	return HasTypes
}

var _ Checker = (*RegistryChecker)(nil)
