package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rdelgado/medtimeline/internal/extract"
	"github.com/rdelgado/medtimeline/internal/resultstore"
)

// Worker processes a single document job: extract pages, run the core
// pipeline, persist the result JSON.
type Worker struct {
	processor *Processor
	store     *resultstore.Store
	stats     *ProcessingStats
	log       *slog.Logger

	pdfFallback bool
}

func NewWorker(processor *Processor, store *resultstore.Store, stats *ProcessingStats, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		processor:   processor,
		store:       store,
		stats:       stats,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full pipeline for a job. Each invocation is
// independent and sequential; callers enforce timeouts externally.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)
	start := time.Now()

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	// Phase 1: Extract pages.
	job.SetStatus(StatusExtracting, "extracting")
	ext, err := extract.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	if pdf, ok := ext.(*extract.PDFExtractor); ok {
		pdf.FallbackPdftotext = w.pdfFallback
	}

	pages, err := ext.ExtractPages(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	if len(pages) == 0 {
		log.Error("no extractable text")
		job.AddError("no extractable text")
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	job.SetTotals(len(pages), 0, 0)
	log.Info("extracted pages", "pages", len(pages))

	// Phase 2: Segment.
	job.SetStatus(StatusSegmenting, "segmenting")
	segments, err := w.processor.SegmentPages(pages)
	if err != nil {
		log.Error("segmentation failed", "error", err)
		job.AddError(fmt.Sprintf("segment: %s", err))
		job.SetStatus(StatusFailed, "segmenting")
		return
	}
	job.SetTotals(0, len(segments), 0)
	log.Info("segmented document", "segments", len(segments))

	// Phase 3: Enrich metadata. Failures degrade to null fields.
	job.SetStatus(StatusEnriching, "enriching")
	w.processor.EnrichSegments(segments)

	// Phase 4: Build timeline and chunks.
	job.SetStatus(StatusBuilding, "building_timeline")
	doc, err := w.processor.BuildTimeline(segments, job.DocID, job.Filename, len(pages))
	if err != nil {
		log.Error("timeline build failed", "error", err)
		job.AddError(fmt.Sprintf("timeline: %s", err))
		job.SetStatus(StatusFailed, "building_timeline")
		return
	}

	chunkCount := 0
	for _, s := range doc.Segments {
		chunkCount += len(s.Chunks)
	}
	job.SetTotals(0, 0, chunkCount)

	// Phase 5: Persist result JSON.
	if w.store != nil {
		path, err := w.store.Save(doc)
		if err != nil {
			log.Error("result save failed", "error", err)
			job.AddError(fmt.Sprintf("save: %s", err))
			job.SetStatus(StatusFailed, "saving")
			return
		}
		log.Info("saved result", "path", path)
	}

	job.SetResult(doc)
	job.SetStatus(StatusCompleted, "done")

	elapsed := time.Since(start)
	if w.stats != nil {
		w.stats.Record(elapsed, len(doc.Segments), chunkCount)
	}
	observeProcessed("completed", elapsed, len(doc.Segments), chunkCount)
	log.Info("processing complete",
		"segments", len(doc.Segments),
		"chunks", chunkCount,
		"duration_ms", elapsed.Milliseconds(),
	)
}
