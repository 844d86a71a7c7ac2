package reconcile

import (
	"slices"

	"github.com/matzehuels/px/pkg/command"
	"github.com/matzehuels/px/pkg/declaration"
	"github.com/matzehuels/px/pkg/project"
)

// DevFlag marks the follow-up declaration install as a dev dependency. npm,
// yarn and pnpm all accept it.
const DevFlag = "-D"

// InstallCommands plans the commands for an install given the user's
// arguments (verb first) and the reconciliation result. A nil result plans
// only the original command.
func InstallCommands(manager project.Manager, args []string, result *InstallResult) []command.Command {
	if result == nil || len(result.Declarations) == 0 {
		return []command.Command{command.New(manager, args...)}
	}
	if result.SameInvocation {
		return []command.Command{command.New(manager, append(slices.Clone(args), result.Declarations...)...)}
	}

	verb := "install"
	if len(args) > 0 {
		verb = args[0]
	}
	extra := append([]string{verb, DevFlag}, result.Declarations...)
	return []command.Command{
		command.New(manager, args...),
		command.New(manager, extra...),
	}
}

// UninstallCommand plans the single uninstall command carrying decls.
func UninstallCommand(manager project.Manager, args []string, decls []string) command.Command {
	return command.New(manager, append(slices.Clone(args), decls...)...)
}

// Packages extracts the package operands of args (verb first).
func Packages(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	return declaration.Packages(args[1:])
}
