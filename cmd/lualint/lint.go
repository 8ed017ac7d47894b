package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lualint/internal/driver"
)

func runLint(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	pattern, err := cmd.Flags().GetString("pattern")
	if err != nil {
		return fmt.Errorf("failed to get pattern flag: %w", err)
	}

	numThreads, err := cmd.Flags().GetInt("num-threads")
	if err != nil {
		return fmt.Errorf("failed to get num-threads flag: %w", err)
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	fatalUseColor = colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
	if colorFlag == "on" {
		color.NoColor = false
	}

	summary, err := driver.Run(cmd.Context(), driver.Options{
		Targets:    args,
		Pattern:    pattern,
		ConfigPath: configPath,
		NumThreads: numThreads,
		Quiet:      quiet,
		Color:      useColor,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	})
	if err != nil {
		return err
	}

	exitCode = summary.ExitCode()
	return nil
}
