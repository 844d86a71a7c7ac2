package cli

import (
	"context"
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/px/pkg/command"
	"github.com/matzehuels/px/pkg/project"
	"github.com/matzehuels/px/pkg/reconcile"
)

// installCommand creates the install command.
func (c *CLI) installCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "install [packages...]",
		Aliases: []string{"i", "add"},
		Short:   "Install packages and their @types declarations",
		Long: `Install packages with the project's package manager.

In TypeScript projects (a tsconfig.json above the working directory), px also
installs the @types package of every requested package that has one. A
regular install is followed by a second dev-dependency install of the
declarations; a dev install (-D, --save-dev, --dev) carries them directly.

All arguments are passed to the package manager.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInstall(cmd.Context(), append([]string{cmd.CalledAs()}, args...))
		},
	}
}

// uninstallCommand creates the uninstall command.
func (c *CLI) uninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall [packages...]",
		Aliases: []string{"un", "remove", "rm"},
		Short:   "Uninstall packages and their @types declarations",
		Long: `Uninstall packages with the project's package manager.

In TypeScript projects, px also removes the @types package of every
requested package when package.json lists it. No registry lookup is made.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUninstall(cmd.Context(), append([]string{cmd.CalledAs()}, args...))
		},
	}
}

// runInstall plans and runs an install. args starts with the verb.
func (c *CLI) runInstall(ctx context.Context, args []string) error {
	pctx, err := c.resolveProject(ctx)
	if err != nil {
		return err
	}

	var result *reconcile.InstallResult
	if pkgs := reconcile.Packages(args); len(pkgs) > 0 && c.typesEnabled() {
		result, err = c.reconcileInstall(ctx, pctx, reconcile.InstallRequest{
			Packages: pkgs,
			Dev:      command.IsDevInstall(args[1:]),
		})
		if err != nil {
			return err
		}
	}
	return c.runCommands(ctx, pctx, reconcile.InstallCommands(pctx.Manager, args, result))
}

func (c *CLI) reconcileInstall(ctx context.Context, pctx *project.Context, req reconcile.InstallRequest) (*reconcile.InstallResult, error) {
	engine, closeStore := c.newEngine(ctx, pctx)
	defer closeStore()

	stop := startSpinner(ctx, "Checking @types packages...")
	result, err := engine.Install(ctx, req)
	stop()

	if err != nil {
		if stderrors.Is(err, context.Canceled) {
			return nil, err
		}
		// The primary install must not fail because of a secondary feature.
		loggerFromContext(ctx).Warn("skipping @types packages", "error", err)
		return nil, nil
	}
	return result, nil
}

// runUninstall plans and runs an uninstall. args starts with the verb.
func (c *CLI) runUninstall(ctx context.Context, args []string) error {
	pctx, err := c.resolveProject(ctx)
	if err != nil {
		return err
	}

	var decls []string
	if pkgs := reconcile.Packages(args); len(pkgs) > 0 && c.typesEnabled() {
		engine := reconcile.New(reconcile.Options{Project: pctx, Logger: loggerFromContext(ctx)})
		if decls, err = engine.Uninstall(ctx, pkgs); err != nil {
			return err
		}
	}
	return c.runCommands(ctx, pctx, []command.Command{reconcile.UninstallCommand(pctx.Manager, args, decls)})
}
