// Package cmd contains all CLI commands for the xlcompare binary.
package cmd

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cmdbatch "github.com/klytics/xlcompare/cmd/batch"
	"github.com/klytics/xlcompare/cmd/compare"
	"github.com/klytics/xlcompare/cmd/completion"
	cmdconfig "github.com/klytics/xlcompare/cmd/config"
	cmdshell "github.com/klytics/xlcompare/cmd/shell"
	"github.com/klytics/xlcompare/cmd/version"
	cmdwatch "github.com/klytics/xlcompare/cmd/watch"
	"github.com/klytics/xlcompare/internal/output"
	shellpkg "github.com/klytics/xlcompare/internal/shell"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all
// subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlcompare",
		Short: "Three-way Excel workbook comparison",
		Long: `xlcompare — compare paired Excel workbooks cell by cell.

Compares a new workbook against its previous version across every shared
worksheet, writes the differences (numeric deltas, text changes, type
transitions) into a copy of a template workbook with highlight colors,
and reports aggregate statistics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(compare.NewCommand())
	rootCmd.AddCommand(cmdbatch.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	shellpkg.DefaultRunner = func(ctx context.Context, args []string) error {
		root := NewRootCommand()
		root.SetArgs(args)
		return root.ExecuteContext(ctx)
	}

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		output.WriteError("%s", err)
		os.Exit(1)
	}
}
