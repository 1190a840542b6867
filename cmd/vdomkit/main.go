package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vdomkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// useColor is false when stderr is not a terminal.
var useColor = true

func main() {
	if !isTerminal(os.Stderr) {
		useColor = false
		errors.DisableColors()
	}

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vdomkit",
		Short: "Virtual tree reconciler toolkit",
		Long: `vdomkit reconciles snapshots of a virtual tree against a host tree.

Commands:

  • patch   apply snapshot files in order and print the host operations
  • serve   run the live reconciliation server
  • init    write a default vdomkit.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		patchCmd(),
		serveCmd(),
		initCmd(),
		versionCmd(),
	)
	return rootCmd
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorize(code, s string) string {
	if !useColor {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", colorize("32", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
