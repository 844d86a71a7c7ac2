package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/px/pkg/verify"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the @types verification cache",
		Long: `px remembers which packages have @types declarations so repeated installs
skip the registry. Entries never expire: clear the cache to re-check a
package that gained declarations after it was recorded as no-types.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheListCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// listerStore opens the configured cache for inspection.
func (c *CLI) listerStore(ctx context.Context) (verify.Lister, func(), error) {
	store, closeStore := c.newStore(ctx)
	lister, ok := store.(verify.Lister)
	if !ok {
		closeStore()
		return nil, nil, fmt.Errorf("the verification cache is disabled")
	}
	return lister, closeStore, nil
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget all verification results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lister, closeStore, err := c.listerStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			entries, err := lister.List(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("Cache is empty")
				return nil
			}
			if err := lister.Clear(ctx); err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", len(entries))
			printDetail(stdout, "Location: %s", c.cacheLocation())
			return nil
		},
	}
}

// cacheListCommand creates the "cache list" subcommand.
func (c *CLI) cacheListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List verification results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lister, closeStore, err := c.listerStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			entries, err := lister.List(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("Cache is empty")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintln(stdout, StyleValue.Render(e.Package)+" "+renderAvailability(e.Availability.String()))
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation describes where verification results are stored.
func (c *CLI) cacheLocation() string {
	cfg := c.config()
	if cfg.Cache.RedisURL != "" {
		return cfg.Cache.RedisURL
	}
	path, err := cfg.CachePath()
	if err != nil {
		return "unavailable: " + err.Error()
	}
	return path
}
