package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/rdelgado/medtimeline/internal/config"
	"github.com/rdelgado/medtimeline/internal/document"
	"github.com/rdelgado/medtimeline/internal/extract"
	"github.com/rdelgado/medtimeline/internal/metadata"
	"github.com/rdelgado/medtimeline/internal/segmenter"
	"github.com/rdelgado/medtimeline/internal/timeline"
)

// Processor runs the core over one document: segment boundaries, metadata
// enrichment, then chronological timeline with chunking. It holds no
// per-document state, so one Processor can serve many workers.
type Processor struct {
	segmenter *segmenter.Segmenter
	enricher  metadata.Extractor
	builder   *timeline.Builder
	log       *slog.Logger

	pdfFallback bool
}

// NewProcessor wires the pipeline components from config.
func NewProcessor(cfg config.Config, log *slog.Logger) *Processor {
	segCfg := segmenter.Config{
		MinSegmentLength: cfg.MinSegmentLength,
		MaxSegmentLength: cfg.MaxSegmentLength,
		MedicalSections:  cfg.MedicalSections,
		DatePatterns:     cfg.DatePatterns,
	}
	return &Processor{
		segmenter:   segmenter.New(segCfg, log),
		enricher:    metadata.NewRegexExtractor(log),
		builder:     timeline.NewBuilder(cfg.MaxChunkTokens, log),
		log:         log,
		pdfFallback: cfg.PDFFallbackPdftotext,
	}
}

// SegmentPages detects segment boundaries over extracted pages.
func (p *Processor) SegmentPages(pages []document.PageContent) ([]document.DocumentSegment, error) {
	return p.segmenter.Segment(pages)
}

// EnrichSegments fills per-segment metadata. An enrichment failure keeps
// the segment with null metadata instead of failing the document.
func (p *Processor) EnrichSegments(segments []document.DocumentSegment) {
	for i := range segments {
		if err := p.enricher.Enrich(&segments[i]); err != nil {
			p.log.Warn("metadata enrichment failed, keeping nulls",
				"segment_id", segments[i].SegmentID, "error", err)
		}
	}
}

// BuildTimeline sorts and chunks enriched segments into the final result.
func (p *Processor) BuildTimeline(segments []document.DocumentSegment, documentID, originalFilename string, totalPages int) (*document.ProcessedDocument, error) {
	return p.builder.BuildTimeline(segments, documentID, originalFilename, totalPages)
}

// ProcessPages runs the full core pipeline over already-extracted pages.
func (p *Processor) ProcessPages(pages []document.PageContent, documentID, originalFilename string, totalPages int) (*document.ProcessedDocument, error) {
	segments, err := p.SegmentPages(pages)
	if err != nil {
		return nil, err
	}
	p.EnrichSegments(segments)
	return p.BuildTimeline(segments, documentID, originalFilename, totalPages)
}

// ProcessFile extracts pages from a file on disk and runs the pipeline
// with a fresh document id.
func (p *Processor) ProcessFile(path string) (*document.ProcessedDocument, error) {
	filename := filepath.Base(path)
	ext, err := extract.ForFile(filename)
	if err != nil {
		return nil, err
	}
	if pdf, ok := ext.(*extract.PDFExtractor); ok {
		pdf.FallbackPdftotext = p.pdfFallback
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages, err := ext.ExtractPages(f, filename)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no extractable text in %s", filename)
	}

	return p.ProcessPages(pages, uuid.NewString(), filename, len(pages))
}
