package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pubkit/pkg/config"
)

// completionCommand creates the completion command for generating shell completions.
// Target ids in --target complete from the project file named by --config.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pubkit.

Besides commands and flags, the scripts complete target ids for
"pubkit publish --target" from the project file in use.

Bash:
  $ source <(pubkit completion bash)
  $ pubkit completion bash > /etc/bash_completion.d/pubkit

Zsh:
  $ pubkit completion zsh > "${fpath[1]}/_pubkit"

Fish:
  $ pubkit completion fish > ~/.config/fish/completions/pubkit.fish

PowerShell:
  PS> pubkit completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeTargets returns a completion func listing the target ids declared
// in the project file at *configPath. Ids already given are skipped.
func completeTargets(configPath *string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		given, _ := cmd.Flags().GetStringSlice("target")
		var ids []cobra.Completion
		for _, t := range cfg.Targets {
			if strings.HasPrefix(t.ID, toComplete) && !slices.Contains(given, t.ID) {
				ids = append(ids, cobra.CompletionWithDesc(t.ID, t.URL))
			}
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}
