package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the medtimeline CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "medtimeline",
		Short: "Convert medical-record documents into structured timelines",
		Long: `medtimeline ingests medical-record PDFs (and other document formats),
segments them into logical clinical records, extracts dates, providers and
document types, and writes a chronologically ordered JSON timeline.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewProcessCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewServeCmd())

	return cmd
}

// newLogger builds the shared CLI logger. Verbose switches to debug level.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
