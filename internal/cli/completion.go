package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kokodio/tdd/pkg/layout"
	"github.com/kokodio/tdd/pkg/pipeline"
	"github.com/kokodio/tdd/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tagcloud.

To load completions:

Bash:
  $ source <(tagcloud completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ tagcloud completion bash > /etc/bash_completion.d/tagcloud
  # macOS:
  $ tagcloud completion bash > $(brew --prefix)/etc/bash_completion.d/tagcloud

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ tagcloud completion zsh > "${fpath[1]}/_tagcloud"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ tagcloud completion fish | source

  # To load completions for each session, execute once:
  $ tagcloud completion fish > ~/.config/fish/completions/tagcloud.fish

PowerShell:
  PS> tagcloud completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> tagcloud completion powershell > tagcloud.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
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

	return cmd
}

// Value completions shared by every command that registers the pipeline
// flags. Descriptions follow a tab, as cobra expects.
var (
	strategyCompletions = []string{
		string(layout.StrategyFrontier) + "\tanchor at the oldest free corner (default)",
		string(layout.StrategySpiral) + "\tscan outward along an Archimedean spiral",
	}
	rendererCompletions = []string{
		string(render.KindAutoAdjust) + "\tcanvas grows to fit, outlined rectangles (default)",
		string(render.KindContentFitting) + "\trandom colours on black",
		string(render.KindFixed) + "\tfixed canvas centred on the origin",
	}
	formatCompletions = []string{pipeline.FormatPNG, pipeline.FormatSVG, pipeline.FormatPDF, pipeline.FormatJSON}
	manifestExts      = []string{"json", "toml", "yaml", "yml"}
)

// registerValueCompletions wires value completion for whichever pipeline
// flags cmd defines.
func registerValueCompletions(cmd *cobra.Command) {
	fixed := func(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}
	if cmd.Flags().Lookup("strategy") != nil {
		_ = cmd.RegisterFlagCompletionFunc("strategy", fixed(strategyCompletions))
	}
	if cmd.Flags().Lookup("renderer") != nil {
		_ = cmd.RegisterFlagCompletionFunc("renderer", fixed(rendererCompletions))
	}
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	}
}

// completeFormats completes the last entry of a comma-separated list,
// skipping formats already given.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, prefix := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		done, prefix = toComplete[:i+1], toComplete[i+1:]
	}
	seen := make(map[string]bool)
	for _, f := range strings.Split(done, ",") {
		seen[strings.TrimSpace(f)] = true
	}
	var out []string
	for _, f := range formatCompletions {
		if !seen[f] && strings.HasPrefix(f, prefix) {
			out = append(out, done+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeFiles offers files with the given extensions for the single
// positional argument.
func completeFiles(exts []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}
