package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/rdelgado/medtimeline/internal/config"
	"github.com/rdelgado/medtimeline/internal/extract"
	"github.com/rdelgado/medtimeline/internal/pipeline"
	"github.com/rdelgado/medtimeline/internal/resultstore"
)

var (
	batchOutputDir string
	batchWorkers   int
	batchVerbose   bool
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Process every supported document in a directory",
		Long: `Batch walks a directory and runs the pipeline over each supported
file using a worker pool. Results are written to the output directory,
one JSON file per document.

Examples:
  medtimeline batch ./records
  medtimeline batch ./records --output-dir ./output --workers 8`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().StringVar(&batchOutputDir, "output-dir", "", "Output directory (default OUTPUT_DIR from env)")
	cmd.Flags().IntVar(&batchWorkers, "workers", 0, "Worker count (default WORKER_COUNT from env)")
	cmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := newLogger(batchVerbose)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if batchOutputDir != "" {
		cfg.OutputDir = batchOutputDir
	}
	if batchWorkers > 0 {
		cfg.WorkerCount = batchWorkers
	}

	dir := args[0]
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !extract.IsSupportedExtension(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported documents in %s", dir)
	}

	store, err := resultstore.New(cfg.OutputDir)
	if err != nil {
		return err
	}

	processor := pipeline.NewProcessor(cfg, log)

	type result struct {
		file string
		err  error
	}
	jobs := make(chan string)
	results := make(chan result, len(files))

	var wg sync.WaitGroup
	for range cfg.WorkerCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				doc, err := processor.ProcessFile(path)
				if err == nil {
					_, err = store.Save(doc)
				}
				results <- result{file: path, err: err}
			}
		}()
	}

	go func() {
		for _, f := range files {
			jobs <- f
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	processed, failed := 0, 0
	for r := range results {
		if r.err != nil {
			failed++
			log.Error("processing failed", "file", r.file, "error", r.err)
			continue
		}
		processed++
		log.Info("processed", "file", r.file)
	}

	fmt.Printf("Batch complete: %d processed, %d failed -> %s\n", processed, failed, cfg.OutputDir)
	if failed > 0 {
		return fmt.Errorf("%d document(s) failed", failed)
	}
	return nil
}
