package extract

import (
	"io"

	"github.com/rdelgado/medtimeline/internal/document"
)

// TextExtractor handles plain text files. Form feeds act as page breaks;
// a file without them is a single page.
type TextExtractor struct{}

func (p *TextExtractor) ExtractPages(r io.Reader, filename string) ([]document.PageContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return pagesFromText(string(data)), nil
}
