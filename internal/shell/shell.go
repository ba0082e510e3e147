// Package shell provides the interactive xlcompare REPL.
package shell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
)

// CommandRunner executes an xlcompare command line.
// It is set by the cmd/shell package to avoid import cycles.
type CommandRunner func(ctx context.Context, args []string) error

// DefaultRunner is the command runner used by the shell session.
var DefaultRunner CommandRunner

// Session manages an interactive shell session.
type Session struct {
	CommandHistory []string
	HistoryFile    string
	StartTime      time.Time

	// KnownCommands is the list of top-level commands for completion.
	KnownCommands []string
}

// NewSession creates a new interactive session.
func NewSession() (*Session, error) {
	home, _ := os.UserHomeDir()
	histFile := filepath.Join(home, ".xlcompare", "shell_history")
	os.MkdirAll(filepath.Dir(histFile), 0755)

	return &Session{
		HistoryFile: histFile,
		StartTime:   time.Now(),
		KnownCommands: []string{
			"compare", "batch", "watch",
			"config", "completion", "version",
			"help", "exit", "quit", "history",
		},
	}, nil
}

// Run starts the REPL loop. Blocks until 'exit' or Ctrl+D.
func (s *Session) Run(ctx context.Context) error {
	if DefaultRunner == nil {
		return fmt.Errorf("shell runner not configured")
	}

	items := make([]readline.PrefixCompleterInterface, 0, len(s.KnownCommands))
	for _, c := range s.KnownCommands {
		items = append(items, readline.PcItem(c))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "xlc> ",
		HistoryFile:     s.HistoryFile,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("xlcompare — Interactive Shell")
	fmt.Println("Type 'help' for commands, 'exit' to quit.")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.CommandHistory = append(s.CommandHistory, line)

		switch line {
		case "exit", "quit":
			fmt.Printf("\nSession ended. %d commands run in %s.\n",
				len(s.CommandHistory)-1, time.Since(s.StartTime).Round(time.Second))
			return nil
		case "help":
			s.printHelp()
		case "history":
			for i, cmd := range s.CommandHistory {
				fmt.Printf("  %d  %s\n", i+1, cmd)
			}
		default:
			if err := DefaultRunner(ctx, strings.Fields(line)); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			}
		}
	}
	return nil
}

func (s *Session) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  compare <new> <prev> <template>   Compare one workbook triple")
	fmt.Println("  batch --dir BASE                  Compare every matched triple under BASE")
	fmt.Println("  watch --dir BASE                  Re-compare on file changes")
	fmt.Println("  config show|path                  Show configuration")
	fmt.Println("  history                           Show session history")
	fmt.Println("  exit                              Leave the shell")
}
