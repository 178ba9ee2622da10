package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rdelgado/medtimeline/internal/config"
	"github.com/rdelgado/medtimeline/internal/pipeline"
)

var (
	processOutput  string
	processVerbose bool
)

// NewProcessCmd creates the process command.
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Process a single document into a JSON timeline",
		Long: `Process runs the full pipeline over one document: page extraction,
segmentation, metadata enrichment and timeline building.

Examples:
  medtimeline process records.pdf
  medtimeline process records.pdf -o records_processed.json`,
		Args: cobra.ExactArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().StringVarP(&processOutput, "output", "o", "", "Output JSON path (default <file>_processed.json)")
	cmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := newLogger(processVerbose)
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path := args[0]
	out := processOutput
	if out == "" {
		ext := filepath.Ext(path)
		out = strings.TrimSuffix(path, ext) + "_processed.json"
	}

	processor := pipeline.NewProcessor(cfg, log)
	doc, err := processor.ProcessFile(path)
	if err != nil {
		return fmt.Errorf("process %s: %w", path, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("Processed %s: %d pages, %d segments -> %s\n",
		filepath.Base(path), doc.TotalPages, doc.TotalSegments, out)
	return nil
}
