package metadata

import (
	"regexp"
	"sort"
	"strings"
)

var (
	pageMarkerRe = regexp.MustCompile(`\[PAGE_\d+\]`)
	nonAlphaRe   = regexp.MustCompile(`[^a-zA-Z]`)
	alnumRe      = regexp.MustCompile(`[a-zA-Z0-9\s]`)
	wordSplitRe  = regexp.MustCompile(`[^a-zA-Z]+`)
)

// stopwords are too common to be useful keywords.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"this": true, "that": true, "will": true, "have": true, "been": true,
	"were": true, "said": true, "each": true, "which": true, "their": true,
	"time": true, "day": true, "may": true, "use": true, "her": true,
	"would": true, "there": true, "one": true, "all": true, "was": true,
	"are": true, "his": true, "not": true, "but": true, "had": true,
}

// ExtractKeywords returns up to topN keywords by frequency, after filtering
// garbled OCR artifacts and stopwords.
func ExtractKeywords(text string, topN int) []string {
	filtered := filterTextForKeywords(text)

	counts := make(map[string]int)
	var order []string
	for _, w := range wordSplitRe.Split(strings.ToLower(filtered), -1) {
		if !isValidKeyword(w) {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	// Rank by frequency, ties broken by first occurrence.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topN {
		order = order[:topN]
	}
	return order
}

// filterTextForKeywords drops page markers and lines that are mostly
// non-alphabetic (likely OCR garbage or tabular data).
func filterTextForKeywords(text string) string {
	text = pageMarkerRe.ReplaceAllString(text, "")
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if len(line) == 0 {
			continue
		}
		alpha := len(line) - len(nonAlphaRe.FindAllString(line, -1))
		if float64(alpha)/float64(len(line)) >= 0.5 {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// isValidKeyword rejects short, garbled or stopword candidates.
func isValidKeyword(kw string) bool {
	if len(kw) < 3 || len(kw) > 30 {
		return false
	}
	alpha := len(kw) - len(nonAlphaRe.FindAllString(kw, -1))
	if float64(alpha)/float64(len(kw)) < 0.7 {
		return false
	}
	if hasRunOfThree(kw) {
		return false
	}
	special := len(alnumRe.ReplaceAllString(kw, ""))
	if float64(special) > float64(len(kw))*0.3 {
		return false
	}
	return !stopwords[kw]
}

// hasRunOfThree reports whether any rune repeats 3+ times in a row,
// a strong signal of an OCR artifact.
func hasRunOfThree(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= 3 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}
