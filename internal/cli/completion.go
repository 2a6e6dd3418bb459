package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mastviz/mastfig/pkg/canvas"
	"github.com/mastviz/mastfig/pkg/pipeline"
)

// completionCommand creates the command that prints shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mastfig.

Bash:  source <(mastfig completion bash)
Zsh:   mastfig completion zsh > "${fpath[1]}/_mastfig"
Fish:  mastfig completion fish > ~/.config/fish/completions/mastfig.fish
PowerShell:
  mastfig completion powershell | Out-String | Invoke-Expression

Preset, estimator and format flags complete to their accepted values.`,
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
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerValueCompletions completes flag values that have a closed set.
func registerValueCompletions(cmd *cobra.Command) {
	fixed := func(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}
	if cmd.Flags().Lookup("preset") != nil {
		_ = cmd.RegisterFlagCompletionFunc("preset", fixed(canvas.Names()))
	}
	if cmd.Flags().Lookup("estimator") != nil {
		_ = cmd.RegisterFlagCompletionFunc("estimator", fixed(sortedKeys(pipeline.ValidEstimators)))
	}
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", formatCompletion)
	}
}

// formatCompletion completes the last item of a comma-separated format list.
func formatCompletion(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	var out []string
	for _, f := range sortedKeys(pipeline.ValidFormats) {
		if !strings.Contains(","+prefix, ","+f+",") {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
