// Package shell provides the interactive shell command.
package shell

import (
	"github.com/spf13/cobra"

	"github.com/klytics/xlcompare/internal/shell"
)

// NewCommand returns the shell command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive xlcompare shell",
		Long: `Starts an interactive shell with command history and tab completion.
Any xlcompare command can be run without the binary name prefix:

  xlc> compare new/q3.xlsx prev/q3.xlsx template/q3.xlsx
  xlc> batch --dir ./quarterly
  xlc> exit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := shell.NewSession()
			if err != nil {
				return err
			}
			return session.Run(cmd.Context())
		},
	}
}
