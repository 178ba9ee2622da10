package timeline

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/rdelgado/medtimeline/internal/document"
)

// TimelineError reports a chunk-building failure, e.g. the sentence
// tokenizer's language data being unavailable.
type TimelineError struct {
	Msg string
	Err error
}

func (e *TimelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("timeline: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("timeline: %s", e.Msg)
}

func (e *TimelineError) Unwrap() error { return e.Err }

// EstimateTokens gives a rough token count using the ~4 chars/token
// heuristic. This is an approximation contract, not an exact count.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// Builder sorts enriched segments chronologically and splits oversized
// segments into token-bounded chunks.
type Builder struct {
	maxChunkTokens int
	log            *slog.Logger
}

// NewBuilder creates a Builder. maxChunkTokens <= 0 selects the default 4000.
func NewBuilder(maxChunkTokens int, log *slog.Logger) *Builder {
	if maxChunkTokens <= 0 {
		maxChunkTokens = 4000
	}
	return &Builder{maxChunkTokens: maxChunkTokens, log: log}
}

// BuildTimeline produces the final ProcessedDocument: segments sorted
// (dated first, ascending; undated after, in page order), oversized
// segments chunked, and the covered date range computed.
func (b *Builder) BuildTimeline(segments []document.DocumentSegment, documentID, originalFilename string, totalPages int) (*document.ProcessedDocument, error) {
	sorted := sortChronologically(segments)

	for i := range sorted {
		if EstimateTokens(sorted[i].TextContent) <= b.maxChunkTokens {
			continue
		}
		chunks, err := b.splitSegmentIntoChunks(&sorted[i])
		if err != nil {
			return nil, &TimelineError{Msg: "split segment " + sorted[i].SegmentID, Err: err}
		}
		sorted[i].Chunks = chunks
	}

	return &document.ProcessedDocument{
		DocumentID:       documentID,
		OriginalFilename: originalFilename,
		TotalPages:       totalPages,
		ProcessingDate:   time.Now(),
		Segments:         sorted,
		DateRange:        calculateDateRange(sorted),
		TotalSegments:    len(sorted),
	}, nil
}

// sortChronologically returns a new slice: dated segments ascending by
// date of service, then undated segments in page order. Both sorts are
// stable so ties keep their original relative order.
func sortChronologically(segments []document.DocumentSegment) []document.DocumentSegment {
	dated := make([]document.DocumentSegment, 0, len(segments))
	undated := make([]document.DocumentSegment, 0)
	for _, s := range segments {
		if s.DateOfService != nil {
			dated = append(dated, s)
		} else {
			undated = append(undated, s)
		}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].DateOfService.Before(*dated[j].DateOfService)
	})
	sort.SliceStable(undated, func(i, j int) bool {
		return undated[i].PageStart < undated[j].PageStart
	})

	return append(dated, undated...)
}

// splitSegmentIntoChunks greedily accumulates sentences up to the token
// limit. Sentences are never split: a single sentence above the limit
// still becomes its own (over-limit) chunk.
func (b *Builder) splitSegmentIntoChunks(seg *document.DocumentSegment) ([]document.DocumentChunk, error) {
	sents, err := splitSentences(seg.TextContent)
	if err != nil {
		return nil, err
	}

	var chunks []document.DocumentChunk
	var current []string
	currentTokens := 0
	chunkIndex := 0

	flush := func() {
		chunks = append(chunks, document.DocumentChunk{
			ChunkID:         fmt.Sprintf("%s_chunk_%d", seg.SegmentID, chunkIndex),
			ParentSegmentID: seg.SegmentID,
			TextContent:     strings.Join(current, " "),
			TokenCount:      currentTokens,
			ChunkIndex:      chunkIndex,
		})
		chunkIndex++
	}

	for _, sent := range sents {
		sentTokens := EstimateTokens(sent)
		if currentTokens+sentTokens > b.maxChunkTokens && len(current) > 0 {
			flush()
			current = []string{sent}
			currentTokens = sentTokens
		} else {
			current = append(current, sent)
			currentTokens += sentTokens
		}
	}
	if len(current) > 0 {
		flush()
	}

	return chunks, nil
}

// calculateDateRange returns (min, max) over all dated segments, or nil.
func calculateDateRange(segments []document.DocumentSegment) *document.DateRange {
	var r *document.DateRange
	for _, s := range segments {
		if s.DateOfService == nil {
			continue
		}
		d := *s.DateOfService
		if r == nil {
			r = &document.DateRange{Start: d, End: d}
			continue
		}
		if d.Before(r.Start) {
			r.Start = d
		}
		if d.After(r.End) {
			r.End = d
		}
	}
	return r
}
