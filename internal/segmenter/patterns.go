package segmenter

import (
	"log/slog"
	"regexp"
)

// boundaryPattern pairs a compiled regex with the kind of header it detects.
// The slice order is the tie-break when two patterns match at the same
// offset, so patterns must be declared in a fixed order.
type boundaryPattern struct {
	re       *regexp.Regexp
	category string
}

// defaultSectionHeaders is the fixed vocabulary of medical section headers
// that always starts a new segment.
var defaultSectionHeaders = []string{
	"DISCHARGE SUMMARY",
	"ADMISSION NOTE",
	"PROGRESS NOTE",
	"CONSULTATION",
	"OPERATIVE REPORT",
	"LABORATORY RESULTS?",
	"RADIOLOGY REPORT",
	"PATHOLOGY REPORT",
}

// buildBoundaryPatterns compiles the ordered boundary pattern set:
// date-of-service labels, all-caps header lines, the section vocabulary,
// provider/facility labels, then any configured extras.
func buildBoundaryPatterns(sections, datePatterns []string, log *slog.Logger) []boundaryPattern {
	patterns := []boundaryPattern{
		// Date of service labels.
		{regexp.MustCompile(`(?i)Date of Service:\s*\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`), "date_of_service"},
		{regexp.MustCompile(`(?i)Service Date:\s*\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`), "date_of_service"},
		{regexp.MustCompile(`(?i)DOS:\s*\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`), "date_of_service"},
		// All-caps header lines of 5+ characters. Deliberately case-sensitive.
		{regexp.MustCompile(`(?m)^[A-Z\s]{5,}$`), "caps_header"},
	}

	for _, h := range defaultSectionHeaders {
		patterns = append(patterns, boundaryPattern{
			regexp.MustCompile(`(?i)` + h), "section_header",
		})
	}

	patterns = append(patterns,
		boundaryPattern{regexp.MustCompile(`(?i)Provider:\s*(.+)`), "provider"},
		boundaryPattern{regexp.MustCompile(`(?i)Physician:\s*(.+)`), "provider"},
		boundaryPattern{regexp.MustCompile(`(?i)Facility:\s*(.+)`), "facility"},
	)

	// Config-supplied section keywords become literal case-insensitive matches.
	for _, s := range sections {
		if s == "" {
			continue
		}
		patterns = append(patterns, boundaryPattern{
			regexp.MustCompile(`(?i)` + regexp.QuoteMeta(s)), "config_section",
		})
	}

	// Config-supplied date patterns are raw regexes; skip any that don't compile.
	for _, p := range datePatterns {
		if p == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			log.Warn("skipping invalid date pattern", "pattern", p, "error", err)
			continue
		}
		patterns = append(patterns, boundaryPattern{re, "config_date"})
	}

	return patterns
}
