package extract

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/rdelgado/medtimeline/internal/document"
)

// MarkdownExtractor handles Markdown files using goldmark. Markdown has no
// page concept, so the flattened text becomes a single page with headings
// kept on their own lines for boundary detection.
type MarkdownExtractor struct{}

func (p *MarkdownExtractor) ExtractPages(r io.Reader, filename string) ([]document.PageContent, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var out strings.Builder
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		var block string
		if _, ok := n.(*ast.Heading); ok {
			block = string(n.Text(src))
		} else {
			block = extractMarkdownText(n, src)
		}
		if block == "" {
			continue
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(block)
	}

	flat := strings.TrimSpace(out.String())
	if flat == "" {
		return nil, nil
	}
	return []document.PageContent{{PageNumber: 1, RawText: flat}}, nil
}

// extractMarkdownText gets the text content of a goldmark AST node.
func extractMarkdownText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractMarkdownText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
