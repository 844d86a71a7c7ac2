package cli

import (
	"context"
	"fmt"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/matzehuels/px/pkg/command"
	"github.com/matzehuels/px/pkg/project"
)

// maxSuggestions caps "did you mean" suggestions for unknown scripts.
const maxSuggestions = 3

// runCommand creates the run command.
func (c *CLI) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run [script] [args...]",
		Short: "Run a package.json script",
		Long: `Run a script from the nearest package.json with the project's package manager.

Without a script name, the available scripts are listed. An unknown script
name is still forwarded, after a warning with the closest matches.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pctx, err := c.resolveProject(ctx)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return listScripts(pctx)
			}
			c.checkScript(ctx, pctx, args[0])
			run := append([]string{cmd.CalledAs()}, args...)
			return c.runCommands(ctx, pctx, []command.Command{command.New(pctx.Manager, run...)})
		},
	}
}

func listScripts(pctx *project.Context) error {
	manifest, err := pctx.Manifest()
	if err != nil {
		return err
	}
	names := manifest.ScriptNames()
	if len(names) == 0 {
		printInfo("No scripts in %s", manifest.Path)
		return nil
	}
	for _, name := range names {
		printKeyValue(name, manifest.Scripts[name])
	}
	return nil
}

// checkScript warns when name is not a script of the nearest manifest.
// Flags and unreadable manifests are left to the package manager.
func (c *CLI) checkScript(ctx context.Context, pctx *project.Context, name string) {
	if len(name) > 0 && name[0] == '-' {
		return
	}
	manifest, err := pctx.Manifest()
	if err != nil {
		loggerFromContext(ctx).Debug("cannot read scripts", "error", err)
		return
	}
	if _, ok := manifest.Scripts[name]; ok {
		return
	}

	printWarning("Script %q not found in %s", name, manifest.Path)
	if suggestions := suggestScripts(name, manifest.ScriptNames()); len(suggestions) > 0 {
		printDetail(stderr, "Did you mean: %s?", joinQuoted(suggestions))
	}
}

// suggestScripts returns the scripts closest to name, best first.
func suggestScripts(name string, scripts []string) []string {
	matches := fuzzy.Find(name, scripts)
	var out []string
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

func joinQuoted(items []string) string {
	s := ""
	for i, item := range items {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%q", item)
	}
	return s
}
