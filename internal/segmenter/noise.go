package segmenter

import (
	"regexp"
	"strings"
)

// noisePatterns match boilerplate that carries no clinical content.
// They are applied in order and each match is removed outright.
var noisePatterns = []*regexp.Regexp{
	// Common noise phrases.
	regexp.MustCompile(`(?i)fax cover sheet`),
	regexp.MustCompile(`(?i)confidentiality notice`),
	regexp.MustCompile(`(?i)this document contains`),
	regexp.MustCompile(`(?i)page \d+ of \d+`),
	regexp.MustCompile(`(?i)printed on \d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),
	// Headers and footers.
	regexp.MustCompile(`(?m)^[-=_]{3,}$`),
	regexp.MustCompile(`(?m)^\s*\d+\s*$`),
	// Billing/administrative codes.
	regexp.MustCompile(`(?i)CPT:\s*\d+`),
	regexp.MustCompile(`(?i)ICD[- ]?\d*:\s*[\d.]+`),
}

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	excessSpaces   = regexp.MustCompile(` {2,}`)
)

// FilterNoise strips boilerplate from combined page text and normalizes
// whitespace: 3+ newlines collapse to a blank line, runs of spaces to one.
func FilterNoise(text string) string {
	cleaned := text
	for _, p := range noisePatterns {
		cleaned = p.ReplaceAllString(cleaned, "")
	}
	cleaned = excessNewlines.ReplaceAllString(cleaned, "\n\n")
	cleaned = excessSpaces.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
