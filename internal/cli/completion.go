package cli

import (
	"github.com/spf13/cobra"

	"github.com/excalidocker/excalidocker/pkg/config"
	"github.com/excalidocker/excalidocker/pkg/pipeline"
)

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for excalidocker.

Bash:
  $ source <(excalidocker completion bash)

Zsh:
  $ excalidocker completion zsh > "${fpath[1]}/_excalidocker"

Fish:
  $ excalidocker completion fish | source

PowerShell:
  PS> excalidocker completion powershell | Out-String | Invoke-Expression
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
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeFlags teaches the shells which files and values each flag takes.
func completeFlags(root, graph *cobra.Command) {
	for _, cmd := range []*cobra.Command{root, graph} {
		_ = cmd.RegisterFlagCompletionFunc("input-path", fileExts("yaml", "yml"))
		_ = cmd.RegisterFlagCompletionFunc("config-path", fileExts("yaml", "yml", "toml"))
	}
	_ = root.RegisterFlagCompletionFunc("show-config-format",
		cobra.FixedCompletions([]string{config.FormatYAML, config.FormatTOML}, cobra.ShellCompDirectiveNoFileComp))
	_ = graph.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions([]string{pipeline.FormatDOT, pipeline.FormatSVG}, cobra.ShellCompDirectiveNoFileComp))
}

func fileExts(exts ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}
