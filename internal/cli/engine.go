package cli

import (
	"context"

	"github.com/matzehuels/px/pkg/integrations/npm"
	"github.com/matzehuels/px/pkg/project"
	"github.com/matzehuels/px/pkg/reconcile"
	"github.com/matzehuels/px/pkg/verify"
)

// =============================================================================
// Engine Factory
// =============================================================================

// typesEnabled reports whether @types reconciliation is on.
func (c *CLI) typesEnabled() bool {
	return c.config().Types && !c.flags.noTypes
}

// newStore opens the configured verification cache. The returned close
// function must be called when done. A Redis store that cannot be reached
// falls back to the file store, and the file store to no cache at all.
func (c *CLI) newStore(ctx context.Context) (verify.Store, func()) {
	cfg := c.config()
	logger := loggerFromContext(ctx)

	if c.flags.noCache || !cfg.Cache.Enabled {
		return verify.NewNullStore(), func() {}
	}
	if cfg.Cache.RedisURL != "" {
		store, err := verify.NewRedisStore(ctx, cfg.Cache.RedisURL)
		if err == nil {
			return store, func() { store.Close() }
		}
		logger.Warn("redis cache unavailable, using file cache", "error", err)
	}

	path, err := cfg.CachePath()
	if err != nil {
		logger.Warn("cache location unavailable", "error", err)
		return verify.NewNullStore(), func() {}
	}
	return verify.NewFileStore(path), func() {}
}

// newChecker creates a registry checker from the configuration.
func (c *CLI) newChecker(ctx context.Context) *verify.RegistryChecker {
	cfg := c.config()
	client := npm.NewClient(npm.Options{
		BaseURL: cfg.Registry,
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
	})
	return verify.NewRegistryChecker(client, loggerFromContext(ctx))
}

// newEngine wires a reconciliation engine for pctx.
func (c *CLI) newEngine(ctx context.Context, pctx *project.Context) (*reconcile.Engine, func()) {
	store, closeStore := c.newStore(ctx)
	engine := reconcile.New(reconcile.Options{
		Project:     pctx,
		Store:       store,
		Checker:     c.newChecker(ctx),
		Concurrency: c.config().Concurrency,
		Logger:      loggerFromContext(ctx),
	})
	return engine, closeStore
}
