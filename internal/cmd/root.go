package cmd

import (
	"io"
	"os"

	"github.com/maegy2011/nota/internal/aggregator"
	"github.com/maegy2011/nota/internal/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for nota
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nota",
		Short: "Combine a directory tree into a single text file",
		Long: `Nota walks the current directory recursively and concatenates every
file it finds into one output file (combined_text.txt), separating each
file's contents with a banner naming its relative path.

Version-control metadata, dependency caches, and virtual environment
directories (.git, __pycache__, node_modules, .idea, venv) are skipped,
as is the output file itself. Files that cannot be read are reported
and left out; the run continues.`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine("", "", cmd.OutOrStdout())
		},
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	return cmd
}

// runCombine runs one aggregation pass. root and outputName fall back to the
// aggregator defaults when empty; tests pass them explicitly.
func runCombine(root, outputName string, out io.Writer) error {
	log := logger.NewConsoleLogger(out, "info")
	if out == os.Stdout {
		log.SetColorOutput(isatty.IsTerminal(os.Stdout.Fd()))
	}

	_, err := aggregator.Combine(aggregator.Options{
		Root:       root,
		OutputName: outputName,
		Logger:     log,
	})
	return err
}
