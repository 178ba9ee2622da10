package extract

import (
	"strings"
	"testing"
)

func TestTextExtractor_FormFeedPages(t *testing.T) {
	e := &TextExtractor{}
	pages, err := e.ExtractPages(strings.NewReader("first page content\fsecond page content"), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].PageNumber != 1 || pages[0].RawText != "first page content" {
		t.Errorf("unexpected page 1: %+v", pages[0])
	}
	if pages[1].PageNumber != 2 || pages[1].RawText != "second page content" {
		t.Errorf("unexpected page 2: %+v", pages[1])
	}
}

func TestTextExtractor_SkipsBlankPages(t *testing.T) {
	e := &TextExtractor{}
	pages, err := e.ExtractPages(strings.NewReader("alpha\f   \fbeta"), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	// Page numbering follows the form-feed position, not the kept count.
	if pages[0].PageNumber != 1 || pages[1].PageNumber != 3 {
		t.Errorf("expected page numbers 1 and 3, got %d and %d", pages[0].PageNumber, pages[1].PageNumber)
	}
}

func TestTextExtractor_SinglePage(t *testing.T) {
	e := &TextExtractor{}
	pages, err := e.ExtractPages(strings.NewReader("just one page of notes"), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 || pages[0].PageNumber != 1 {
		t.Fatalf("expected a single page 1, got %+v", pages)
	}
}

func TestForFile(t *testing.T) {
	cases := []struct {
		filename string
		wantErr  bool
	}{
		{"records.pdf", false},
		{"notes.txt", false},
		{"summary.md", false},
		{"export.html", false},
		{"letter.docx", false},
		{"image.png", true},
		{"noextension", true},
	}
	for _, c := range cases {
		_, err := ForFile(c.filename)
		if c.wantErr && err == nil {
			t.Errorf("ForFile(%q): expected error", c.filename)
		}
		if !c.wantErr && err != nil {
			t.Errorf("ForFile(%q): unexpected error: %v", c.filename, err)
		}
	}
}

func TestForFile_PDFUsesFallbackByDefault(t *testing.T) {
	e, err := ForFile("scan.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pdf, ok := e.(*PDFExtractor)
	if !ok {
		t.Fatalf("expected *PDFExtractor, got %T", e)
	}
	if !pdf.FallbackPdftotext {
		t.Error("expected pdftotext fallback enabled by default")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("Records.PDF") {
		t.Error("expected uppercase extension to be supported")
	}
	if IsSupportedExtension("malware.exe") {
		t.Error("expected .exe to be unsupported")
	}
}

func TestMarkdownExtractor(t *testing.T) {
	src := "# VISIT SUMMARY\n\nPatient doing well today.\n\n- stable vitals\n- no complaints\n"
	e := &MarkdownExtractor{}
	pages, err := e.ExtractPages(strings.NewReader(src), "summary.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	text := pages[0].RawText
	if !strings.HasPrefix(text, "VISIT SUMMARY") {
		t.Errorf("expected heading kept on its own line, got %q", text)
	}
	if !strings.Contains(text, "Patient doing well today.") {
		t.Errorf("expected body text, got %q", text)
	}
	if !strings.Contains(text, "stable vitals") {
		t.Errorf("expected list items, got %q", text)
	}
}

func TestHTMLExtractor(t *testing.T) {
	src := `<html><head><style>p { color: red }</style></head><body>
		<h1>Clinic Visit</h1>
		<p>Patient doing well.</p>
		<script>var tracker = 1;</script>
	</body></html>`
	e := &HTMLExtractor{}
	pages, err := e.ExtractPages(strings.NewReader(src), "export.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	text := pages[0].RawText
	if !strings.Contains(text, "Clinic Visit") {
		t.Errorf("expected heading text, got %q", text)
	}
	if !strings.Contains(text, "Patient doing well.") {
		t.Errorf("expected paragraph text, got %q", text)
	}
	if strings.Contains(text, "tracker") || strings.Contains(text, "color: red") {
		t.Errorf("expected script/style stripped, got %q", text)
	}
}
