package document

import "time"

// PageContent is the extracted text of a single source page.
// Pages are immutable once created and ordered by PageNumber.
type PageContent struct {
	PageNumber      int      `json:"page_number"`
	RawText         string   `json:"raw_text"`
	IsOCRApplied    bool     `json:"is_ocr_applied"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
}

// DocumentSegment is a contiguous, logically self-contained span of
// document text between two detected boundaries (one clinical note,
// report, etc). Segments are created by the segmenter, enriched by the
// metadata extractor and chunked by the timeline builder.
type DocumentSegment struct {
	SegmentID     string          `json:"segment_id"`
	TextContent   string          `json:"text_content"`
	PageStart     int             `json:"page_start"`
	PageEnd       int             `json:"page_end"`
	DateOfService *time.Time      `json:"date_of_service"`
	DocumentType  string          `json:"document_type,omitempty"`
	Provider      string          `json:"provider,omitempty"`
	Facility      string          `json:"facility,omitempty"`
	Keywords      []string        `json:"keywords"`
	Metadata      map[string]any  `json:"metadata"`
	Chunks        []DocumentChunk `json:"chunks"`
}

// DocumentChunk is a sub-division of an oversized segment, bounded by an
// estimated token limit. ChunkIndex is zero-based and contiguous within
// the parent segment.
type DocumentChunk struct {
	ChunkID         string `json:"chunk_id"`
	ParentSegmentID string `json:"parent_segment_id"`
	TextContent     string `json:"text_content"`
	TokenCount      int    `json:"token_count"`
	ChunkIndex      int    `json:"chunk_index"`
}

// DateRange is the span of service dates covered by a document.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ProcessedDocument is the final result of one pipeline run: segments
// sorted chronologically, chunked where oversized, plus document totals.
type ProcessedDocument struct {
	DocumentID       string            `json:"document_id"`
	OriginalFilename string            `json:"original_filename"`
	TotalPages       int               `json:"total_pages"`
	ProcessingDate   time.Time         `json:"processing_date"`
	Segments         []DocumentSegment `json:"segments"`
	DateRange        *DateRange        `json:"date_range"`
	TotalSegments    int               `json:"total_segments"`
}
