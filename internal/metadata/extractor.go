package metadata

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/rdelgado/medtimeline/internal/document"
)

// Extractor enriches a segment with date of service, document type,
// provider/facility and keywords. Implementations must be idempotent
// (enriching twice yields the same result) and total (an already-set
// field is never replaced with an empty value).
type Extractor interface {
	Enrich(seg *document.DocumentSegment) error
}

// MetadataError reports an enrichment failure. The pipeline layer logs it
// and keeps the segment with null metadata rather than failing the document.
type MetadataError struct {
	Field string
	Err   error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata: extract %s: %v", e.Field, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// documentTypes maps a document type to keywords that identify it.
// Order matters: the first matching type wins.
type documentType struct {
	name     string
	keywords []string
}

var documentTypes = []documentType{
	{"Admission Note", []string{"admission", "admit", "admission note"}},
	{"Discharge Summary", []string{"discharge", "discharge summary", "discharge note"}},
	{"Progress Note", []string{"progress", "progress note", "daily note"}},
	{"Consultation", []string{"consultation", "consult", "referral"}},
	{"Operative Report", []string{"operative", "surgery", "procedure", "operation"}},
	{"Laboratory Results", []string{"lab", "laboratory", "lab results", "blood work"}},
	{"Radiology Report", []string{"radiology", "x-ray", "ct", "mri", "ultrasound"}},
	{"Pathology Report", []string{"pathology", "biopsy", "specimen"}},
	{"Emergency Department", []string{"emergency", "emergency department"}},
	{"Nursing Note", []string{"nursing", "nurse", "nursing note"}},
	{"Medication List", []string{"medication", "drug", "prescription", "pharmacy"}},
	{"Vital Signs", []string{"vital signs", "vitals", "temperature", "blood pressure"}},
}

var (
	providerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Provider:\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)Physician:\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)Doctor:\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)Attending:\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)MD:\s*(.+?)(?:\n|$)`),
	}
	facilityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Facility:\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)Hospital:\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)Clinic:\s*(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)Medical Center:\s*(.+?)(?:\n|$)`),
	}
	nonUpperRe = regexp.MustCompile(`[^A-Z\s]`)
)

// RegexExtractor is a pattern and keyword driven Extractor. It has no
// model dependencies; every rule is a compiled regex or keyword table.
type RegexExtractor struct {
	log *slog.Logger
}

// NewRegexExtractor returns the default enricher.
func NewRegexExtractor(log *slog.Logger) *RegexExtractor {
	return &RegexExtractor{log: log}
}

// Enrich fills the segment's optional metadata fields. Only unset fields
// are touched, which keeps the operation idempotent and total.
func (e *RegexExtractor) Enrich(seg *document.DocumentSegment) error {
	if seg.DateOfService == nil {
		if d, ok := extractDate(seg.TextContent); ok {
			seg.DateOfService = &d
		}
	}
	if seg.DocumentType == "" {
		seg.DocumentType = extractDocumentType(seg.TextContent)
	}
	if seg.Provider == "" {
		seg.Provider = firstSubmatch(providerPatterns, seg.TextContent)
	}
	if seg.Facility == "" {
		seg.Facility = firstSubmatch(facilityPatterns, seg.TextContent)
	}
	if len(seg.Keywords) == 0 {
		seg.Keywords = ExtractKeywords(seg.TextContent, 10)
	}
	return nil
}

// extractDocumentType checks the keyword table first, then falls back to
// the first all-caps header line in the opening lines of the segment.
func extractDocumentType(text string) string {
	lower := strings.ToLower(text)
	for _, dt := range documentTypes {
		for _, kw := range dt.keywords {
			if strings.Contains(lower, kw) {
				return dt.name
			}
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 5 && isUpperHeader(line) {
			cleaned := strings.TrimSpace(nonUpperRe.ReplaceAllString(line, ""))
			if cleaned != "" {
				return titleCase(cleaned)
			}
		}
	}
	return ""
}

// isUpperHeader reports whether a line is uppercase text rather than a
// number or mixed content.
func isUpperHeader(line string) bool {
	hasLetter := false
	for _, r := range line {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= 'a' && r <= 'z':
			return false
		}
	}
	return hasLetter
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func firstSubmatch(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
