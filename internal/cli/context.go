package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// contextCommand creates the context command.
func (c *CLI) contextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Show the project px resolves from the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pctx, err := c.resolveProject(cmd.Context())
			if err != nil {
				return err
			}
			ts, err := pctx.IsTypeScript()
			if err != nil {
				return err
			}

			printKeyValue("Directory", pctx.WorkDir)
			printKeyValue("Root", pctx.Root)
			printKeyValue("Manager", pctx.Manager.String())
			printKeyValue("TypeScript", strconv.FormatBool(ts))
			if manifest, err := pctx.Manifest(); err == nil {
				printKeyValue("Manifest", manifest.Path)
				printKeyValue("Dependencies", strconv.Itoa(len(manifest.DeclaredDependencies())))
			}
			printKeyValue("Types", strconv.FormatBool(c.typesEnabled()))
			return nil
		},
	}
}
