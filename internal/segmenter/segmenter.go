package segmenter

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/rdelgado/medtimeline/internal/document"
)

// Config controls boundary detection.
type Config struct {
	// MinSegmentLength is the smallest trimmed span (in characters) that is
	// emitted as a segment. Shorter spans are dropped as content noise.
	MinSegmentLength int
	// MaxSegmentLength is advisory; the segmenter never hard-splits on it
	// but callers may use it to re-chunk downstream.
	MaxSegmentLength int
	// MedicalSections adds literal section keywords to the boundary set.
	MedicalSections []string
	// DatePatterns adds raw regexes to the boundary set.
	DatePatterns []string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinSegmentLength: 50,
		MaxSegmentLength: 2000,
	}
}

// SegmentationError reports input the segmenter cannot work with at all.
// Absence of boundary matches is not an error; it triggers the page-based
// fallback instead.
type SegmentationError struct {
	Msg string
}

func (e *SegmentationError) Error() string {
	return fmt.Sprintf("segmentation: %s", e.Msg)
}

// Segmenter partitions cleaned, page-marker-annotated text into
// non-overlapping segments based on detected header patterns.
type Segmenter struct {
	cfg      Config
	patterns []boundaryPattern
	log      *slog.Logger
}

// New creates a Segmenter with patterns compiled once up front.
func New(cfg Config, log *slog.Logger) *Segmenter {
	if cfg.MinSegmentLength <= 0 {
		cfg.MinSegmentLength = 50
	}
	if cfg.MaxSegmentLength <= 0 {
		cfg.MaxSegmentLength = 2000
	}
	return &Segmenter{
		cfg:      cfg,
		patterns: buildBoundaryPatterns(cfg.MedicalSections, cfg.DatePatterns, log),
		log:      log,
	}
}

var pageMarkerRe = regexp.MustCompile(`\[PAGE_(\d+)\]`)

// Segment combines the pages into one marker-annotated string, filters
// noise and cuts the result at detected boundaries. When no boundary
// matches anywhere, it falls back to one segment per non-empty page so
// every document yields at least one segment.
func (s *Segmenter) Segment(pages []document.PageContent) ([]document.DocumentSegment, error) {
	if len(pages) == 0 {
		return nil, &SegmentationError{Msg: "no page content supplied"}
	}

	combined := combinePagesWithMarkers(pages)
	cleaned := FilterNoise(combined)
	return s.findSegments(cleaned, pages), nil
}

// combinePagesWithMarkers prefixes each page's text with a [PAGE_n] marker
// so page attribution survives noise filtering and boundary search.
func combinePagesWithMarkers(pages []document.PageContent) string {
	parts := make([]string, 0, len(pages)*2)
	for _, page := range pages {
		parts = append(parts, fmt.Sprintf("[PAGE_%d]", page.PageNumber))
		parts = append(parts, page.RawText)
	}
	return strings.Join(parts, "\n")
}

type boundary struct {
	pos    int
	header string
}

func (s *Segmenter) findSegments(text string, pages []document.PageContent) []document.DocumentSegment {
	// Collect every match of every pattern, in pattern order.
	var boundaries []boundary
	for _, p := range s.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			boundaries = append(boundaries, boundary{pos: loc[0], header: text[loc[0]:loc[1]]})
		}
	}

	// Sort ascending by position. The sort is stable, so same-offset matches
	// keep the fixed pattern order.
	sort.SliceStable(boundaries, func(i, j int) bool {
		return boundaries[i].pos < boundaries[j].pos
	})

	var segments []document.DocumentSegment
	for i, b := range boundaries {
		end := len(text)
		if i+1 < len(boundaries) {
			end = boundaries[i+1].pos
		}
		segmentText := strings.TrimSpace(text[b.pos:end])
		if len(segmentText) < s.cfg.MinSegmentLength {
			continue
		}
		pageStart, pageEnd := findPageRange(segmentText)
		segments = append(segments, document.DocumentSegment{
			SegmentID:   uuid.NewString(),
			TextContent: segmentText,
			PageStart:   pageStart,
			PageEnd:     pageEnd,
			Metadata:    map[string]any{"detected_header": b.header},
		})
	}

	if len(segments) == 0 {
		s.log.Warn("no segments found using patterns, creating page-based segments")
		return pageBasedSegments(pages)
	}
	return segments
}

// findPageRange scans a span's embedded page markers; (1, 1) when none.
func findPageRange(segmentText string) (int, int) {
	matches := pageMarkerRe.FindAllStringSubmatch(segmentText, -1)
	if len(matches) == 0 {
		return 1, 1
	}
	start, end := 0, 0
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if start == 0 || n < start {
			start = n
		}
		if n > end {
			end = n
		}
	}
	if start == 0 {
		return 1, 1
	}
	return start, end
}

// pageBasedSegments creates one segment per page with content, used when
// pattern matching finds nothing.
func pageBasedSegments(pages []document.PageContent) []document.DocumentSegment {
	var segments []document.DocumentSegment
	for _, page := range pages {
		text := strings.TrimSpace(page.RawText)
		if len(text) <= 20 {
			continue
		}
		segments = append(segments, document.DocumentSegment{
			SegmentID:   uuid.NewString(),
			TextContent: text,
			PageStart:   page.PageNumber,
			PageEnd:     page.PageNumber,
			Metadata:    map[string]any{"segment_type": "page_based", "source": "fallback"},
		})
	}
	return segments
}
