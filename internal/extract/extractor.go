package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rdelgado/medtimeline/internal/document"
)

// Extractor converts raw document bytes into per-page text. OCR is out of
// scope; scanned files must be OCR'd upstream.
type Extractor interface {
	ExtractPages(r io.Reader, filename string) ([]document.PageContent, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".docx": true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: true}, nil
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// pagesFromText splits extracted text on form feeds into numbered pages,
// skipping blank ones. Text without form feeds becomes a single page.
func pagesFromText(text string) []document.PageContent {
	var pages []document.PageContent
	for i, part := range strings.Split(text, "\f") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pages = append(pages, document.PageContent{
			PageNumber: i + 1,
			RawText:    part,
		})
	}
	return pages
}
