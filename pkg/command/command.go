// Package command builds and runs package-manager invocations.
//
// A [Command] is a manager plus its argument list. [New] rewrites verbs that
// yarn and pnpm spell differently from npm, so callers can plan commands in
// npm terms:
//
//	yarn install react   -> yarn add react
//	pnpm uninstall react -> pnpm remove react
//
// [ExecRunner] runs commands with the terminal attached and reports a
// non-zero exit as an [errors.CommandError] carrying the status.
package command

import (
	"slices"
	"strings"

	"github.com/matzehuels/px/pkg/project"
)

// Command is one package-manager invocation.
type Command struct {
	Manager project.Manager
	Args    []string
}

// New creates a command for manager, normalizing the verb in args[0].
func New(manager project.Manager, args ...string) Command {
	return Command{Manager: manager, Args: Normalize(manager, args)}
}

// String returns the command line as echoed to the user.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return string(c.Manager)
	}
	return string(c.Manager) + " " + strings.Join(c.Args, " ")
}

// Verb returns the subcommand, or "" for a bare invocation.
func (c Command) Verb() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

var (
	installVerbs   = []string{"install", "i", "add"}
	uninstallVerbs = []string{"uninstall", "un", "remove", "rm", "r", "unlink"}
)

// IsInstallVerb reports whether verb adds packages in npm terms.
func IsInstallVerb(verb string) bool { return slices.Contains(installVerbs, verb) }

// IsUninstallVerb reports whether verb removes packages in npm terms.
func IsUninstallVerb(verb string) bool { return slices.Contains(uninstallVerbs, verb) }

// Normalize returns args with the verb translated for manager. npm accepts
// every alias, so its arguments are returned unchanged. For yarn and pnpm,
// install with package arguments becomes "add" (a bare install keeps
// meaning "install from the lock file") and every uninstall alias becomes
// "remove". The input slice is not modified.
func Normalize(manager project.Manager, args []string) []string {
	out := slices.Clone(args)
	if len(out) == 0 || manager == project.ManagerNPM {
		return out
	}
	switch verb := out[0]; {
	case (verb == "install" || verb == "i") && hasOperands(out[1:]):
		out[0] = "add"
	case verb != "remove" && IsUninstallVerb(verb):
		out[0] = "remove"
	}
	return out
}

func hasOperands(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool { return !strings.HasPrefix(a, "-") })
}

// devFlags mark an install as a dev-dependency install for every supported
// manager.
var devFlags = []string{"-D", "--save-dev", "--dev"}

// IsDevInstall reports whether args carry a dev-dependency flag.
func IsDevInstall(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool { return slices.Contains(devFlags, a) })
}
