package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for mealie-api.

To load completions:

Bash:
  $ source <(mealie-api completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ mealie-api completion bash > /etc/bash_completion.d/mealie-api
  # macOS:
  $ mealie-api completion bash > $(brew --prefix)/etc/bash_completion.d/mealie-api

Zsh:
  $ mealie-api completion zsh > "${fpath[1]}/_mealie-api"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ mealie-api completion fish | source

  # To load completions for each session, execute once:
  $ mealie-api completion fish > ~/.config/fish/completions/mealie-api.fish

PowerShell:
  PS> mealie-api completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
