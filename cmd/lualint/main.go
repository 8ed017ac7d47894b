package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lualint/internal/driver"
	"lualint/internal/version"
)

// exitCode is set by runLint once the summary is known; fatal errors bypass
// it and exit 1 directly.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "lualint [flags] <file|directory>...",
	Short: "Concurrent Lua linter",
	Long: `lualint checks Lua source files against a configurable rule set and
standard library definition, processing files in parallel`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runLint,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().String("config", "", "path to the configuration file")
	rootCmd.Flags().String("pattern", driver.DefaultPattern, "glob pattern for files inside directory targets")
	rootCmd.Flags().Int("num-threads", runtime.NumCPU(), "number of worker threads")
	rootCmd.Flags().Bool("quiet", false, "one line per diagnostic instead of full excerpts")
	rootCmd.Flags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		reportFatal(os.Stderr, err, fatalUseColor)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// fatalUseColor follows the terminal until runLint resolves the --color flag;
// errors raised before flag parsing only have the terminal to go on.
var fatalUseColor = isTerminal(os.Stderr)

func reportFatal(w io.Writer, err error, useColor bool) {
	prefix := "ERROR:"
	if useColor {
		prefix = color.New(color.FgRed).Sprint(prefix)
	}
	fmt.Fprintln(w, prefix, err)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
