package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/px/pkg/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect px configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.ConfigFile
			if path == "" {
				var err error
				if path, err = config.Path(); err != nil {
					return fmt.Errorf("get config path: %w", err)
				}
			}
			fmt.Fprintln(stdout, path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *c.config()
			return toml.NewEncoder(stdout).Encode(showConfig{
				Registry:    cfg.Registry,
				Concurrency: cfg.Concurrency,
				Timeout:     cfg.Timeout.String(),
				Retries:     cfg.Retries,
				Types:       cfg.Types,
				Cache:       cfg.Cache,
				Log:         cfg.Log,
			})
		},
	})
	return cmd
}

// showConfig mirrors config.Config with durations in their file syntax.
type showConfig struct {
	Registry    string             `toml:"registry"`
	Concurrency int                `toml:"concurrency"`
	Timeout     string             `toml:"timeout"`
	Retries     int                `toml:"retries"`
	Types       bool               `toml:"types"`
	Cache       config.CacheConfig `toml:"cache"`
	Log         config.LogConfig   `toml:"log"`
}
