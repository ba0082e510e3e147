// Package config provides CLI commands for configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/klytics/xlcompare/internal/config"
)

// NewCommand returns the config command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage xlcompare configuration",
		Long:  "View the effective xlcompare configuration and its file location.",
	}

	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newPathCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			fmt.Printf("Config file: %s\n\n", config.Path())
			fmt.Printf("output_dir:        %s\n", cfg.OutputDir)
			fmt.Printf("report.json:       %t\n", cfg.Report.JSON)
			fmt.Printf("report.text:       %t\n", cfg.Report.Text)
			fmt.Printf("output.format:     %s\n", cfg.Output.Format)
			fmt.Printf("output.color:      %t\n", cfg.Output.Color)
			fmt.Printf("watch.debounce_ms: %d\n", cfg.Watch.DebounceMs)
			return nil
		},
	}
}

func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.Path())
		},
	}
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists at %s", path)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(map[string]interface{}{
				"output_dir": cfg.OutputDir,
				"report": map[string]interface{}{
					"json": cfg.Report.JSON,
					"text": cfg.Report.Text,
				},
				"output": map[string]interface{}{
					"format": cfg.Output.Format,
					"color":  cfg.Output.Color,
				},
				"watch": map[string]interface{}{
					"debounce_ms": cfg.Watch.DebounceMs,
				},
			})
			if err != nil {
				return err
			}

			if err := os.MkdirAll(config.Dir(), 0755); err != nil {
				return fmt.Errorf("could not create %s: %w", config.Dir(), err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("could not write %s: %w", path, err)
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
}
