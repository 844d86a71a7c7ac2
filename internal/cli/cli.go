package cli

import (
	"context"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/px/pkg/buildinfo"
	"github.com/matzehuels/px/pkg/command"
	"github.com/matzehuels/px/pkg/config"
	"github.com/matzehuels/px/pkg/errors"
	"github.com/matzehuels/px/pkg/project"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "px"

	// forwardCommandName is the hidden command that passes arguments to the
	// package manager untouched.
	forwardCommandName = "forward"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// WorkDir is the directory px acts on. Empty means the process working
	// directory.
	WorkDir string

	// Runner executes package-manager commands. Nil selects an ExecRunner
	// in the project's working directory.
	Runner command.Runner

	// ConfigFile overrides the config file location.
	ConfigFile string

	cfg   *config.Config
	flags globalFlags
}

// globalFlags are px's own flags. They are only recognized before the
// subcommand; everything after it belongs to the package manager.
type globalFlags struct {
	verbose bool
	noCache bool
	noTypes bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "px [flags] <command> [args...]",
		Short: "px runs the right JavaScript package manager and keeps @types in sync",
		Long: `px detects whether a project uses npm, yarn or pnpm from its lock file and
forwards commands to it. In TypeScript projects, installing or uninstalling a
package also installs or removes its @types declaration package.

Any command px does not know is forwarded unchanged:

  px install react      npm install react && npm install -D @types/react
  px run build          npm run build
  px outdated           npm outdated`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "verify @types availability without the cache")
	pf.BoolVar(&c.flags.noTypes, "no-types", false, "do not manage @types packages")

	root.AddCommand(c.installCommand())
	root.AddCommand(c.uninstallCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.contextCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.forwardCommand())

	return root
}

// Execute routes args and runs the matching command.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(c.route(root, args))
	return root.ExecuteContext(ctx)
}

// route consumes px's leading flags and sends unknown subcommands to the
// hidden forward command.
func (c *CLI) route(root *cobra.Command, args []string) []string {
	i := 0
loop:
	for ; i < len(args); i++ {
		switch args[i] {
		case "-v", "--verbose":
			c.flags.verbose = true
		case "--no-cache":
			c.flags.noCache = true
		case "--no-types":
			c.flags.noTypes = true
		default:
			break loop
		}
	}
	rest := args[i:]
	if len(rest) == 0 || strings.HasPrefix(rest[0], "-") || isKnownCommand(root, rest[0]) {
		return rest
	}
	return append([]string{forwardCommandName}, rest...)
}

func isKnownCommand(root *cobra.Command, name string) bool {
	if name == "help" || strings.HasPrefix(name, "__complete") {
		return true
	}
	for _, cmd := range root.Commands() {
		if cmd.Name() == name || slices.Contains(cmd.Aliases, name) {
			return !cmd.Hidden
		}
	}
	return false
}

// setup loads configuration and prepares logging before any command runs.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.LoadOptions{File: c.ConfigFile, WorkDir: c.WorkDir})
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.LogLevel()
	if c.flags.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)
	registerHooks(c.Logger)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// config returns the loaded configuration, or defaults before setup ran.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		cfg := config.Default()
		c.cfg = &cfg
	}
	return c.cfg
}

// resolveProject locates the project that governs WorkDir.
func (c *CLI) resolveProject(ctx context.Context) (*project.Context, error) {
	pctx, err := project.Locator{WorkDir: c.WorkDir}.Resolve()
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("resolved project", "root", pctx.Root, "manager", pctx.Manager)
	return pctx, nil
}

// runCommands echoes and runs cmds in order, stopping at the first failure.
func (c *CLI) runCommands(ctx context.Context, pctx *project.Context, cmds []command.Command) error {
	runner := c.Runner
	if runner == nil {
		runner = command.ExecRunner{Dir: pctx.WorkDir}
	}
	return command.Sequence(ctx, runner, cmds, func(cmd command.Command) {
		printCommand(cmd.String())
	})
}

// forwardCommand passes its arguments to the package manager verbatim.
func (c *CLI) forwardCommand() *cobra.Command {
	return &cobra.Command{
		Use:                forwardCommandName + " <command> [args...]",
		Short:              "Forward a command to the package manager",
		Hidden:             true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pctx, err := c.resolveProject(cmd.Context())
			if err != nil {
				return err
			}
			return c.runCommands(cmd.Context(), pctx, []command.Command{command.New(pctx.Manager, args...)})
		},
	}
}

// ErrorMessage formats err for the user.
func ErrorMessage(err error) string {
	return errors.UserMessage(err)
}
