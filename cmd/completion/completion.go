// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for xlcompare.

Install instructions:
  Bash:       xlcompare completion bash > /etc/bash_completion.d/xlcompare
              echo 'source <(xlcompare completion bash)' >> ~/.bashrc
  Zsh:        xlcompare completion zsh > ~/.zsh/completions/_xlcompare
  Fish:       xlcompare completion fish > ~/.config/fish/completions/xlcompare.fish
  PowerShell: xlcompare completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				fmt.Fprintln(os.Stdout, "# xlcompare bash completion")
				fmt.Fprintln(os.Stdout, "# Install: xlcompare completion bash > /etc/bash_completion.d/xlcompare")
				fmt.Fprintln(os.Stdout, "# Or:      echo 'source <(xlcompare completion bash)' >> ~/.bashrc")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				fmt.Fprintln(os.Stdout, "# xlcompare zsh completion")
				fmt.Fprintln(os.Stdout, "# Install: xlcompare completion zsh > ~/.zsh/completions/_xlcompare")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				fmt.Fprintln(os.Stdout, "# xlcompare fish completion")
				fmt.Fprintln(os.Stdout, "# Install: xlcompare completion fish > ~/.config/fish/completions/xlcompare.fish")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				fmt.Fprintln(os.Stdout, "# xlcompare PowerShell completion")
				fmt.Fprintln(os.Stdout, "# Install: xlcompare completion powershell >> $PROFILE")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
	return cmd
}
