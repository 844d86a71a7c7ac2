package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for px.

To load completions:

Bash:
  $ source <(px completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ px completion bash > /etc/bash_completion.d/px
  # macOS:
  $ px completion bash > $(brew --prefix)/etc/bash_completion.d/px

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ px completion zsh > "${fpath[1]}/_px"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ px completion fish | source

  # To load completions for each session, execute once:
  $ px completion fish > ~/.config/fish/completions/px.fish

PowerShell:
  PS> px completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> px completion powershell > px.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}

	return cmd
}
