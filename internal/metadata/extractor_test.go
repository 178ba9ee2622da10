package metadata

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rdelgado/medtimeline/internal/document"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnrich_FullMetadata(t *testing.T) {
	seg := &document.DocumentSegment{
		TextContent: "DISCHARGE SUMMARY\n" +
			"Date of Service: 01/05/2023\n" +
			"Provider: Dr. Sarah Chen\n" +
			"Hospital: Riverside Medical Center\n" +
			"The patient tolerated the stay well and was discharged home with " +
			"hypertension follow up instructions. Hypertension education provided.",
	}

	e := NewRegexExtractor(testLogger())
	if err := e.Enrich(seg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if seg.DateOfService == nil {
		t.Fatal("expected date of service to be extracted")
	}
	want := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)
	if !seg.DateOfService.Equal(want) {
		t.Errorf("expected date %v, got %v", want, seg.DateOfService)
	}
	if seg.DocumentType != "Discharge Summary" {
		t.Errorf("expected document type %q, got %q", "Discharge Summary", seg.DocumentType)
	}
	if seg.Provider != "Dr. Sarah Chen" {
		t.Errorf("expected provider %q, got %q", "Dr. Sarah Chen", seg.Provider)
	}
	if seg.Facility != "Riverside Medical Center" {
		t.Errorf("expected facility %q, got %q", "Riverside Medical Center", seg.Facility)
	}
	if len(seg.Keywords) == 0 {
		t.Error("expected keywords to be extracted")
	}
	if len(seg.Keywords) > 10 {
		t.Errorf("expected at most 10 keywords, got %d", len(seg.Keywords))
	}
}

func TestEnrich_Idempotent(t *testing.T) {
	seg := &document.DocumentSegment{
		TextContent:  "Date of Service: 01/05/2023\nProvider: Dr. Lee\nroutine visit notes",
		DocumentType: "Custom Type",
	}

	e := NewRegexExtractor(testLogger())
	if err := e.Enrich(seg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstDate := *seg.DateOfService
	firstProvider := seg.Provider

	if err := e.Enrich(seg); err != nil {
		t.Fatalf("unexpected error on second enrich: %v", err)
	}

	if seg.DocumentType != "Custom Type" {
		t.Errorf("expected preset document type preserved, got %q", seg.DocumentType)
	}
	if !seg.DateOfService.Equal(firstDate) {
		t.Errorf("expected date unchanged, got %v", seg.DateOfService)
	}
	if seg.Provider != firstProvider {
		t.Errorf("expected provider unchanged, got %q", seg.Provider)
	}
}

func TestEnrich_NoMetadataStaysUnset(t *testing.T) {
	seg := &document.DocumentSegment{
		TextContent: "the quick brown fox jumped over the fence repeatedly",
	}

	e := NewRegexExtractor(testLogger())
	if err := e.Enrich(seg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if seg.DateOfService != nil {
		t.Errorf("expected nil date, got %v", seg.DateOfService)
	}
	if seg.Provider != "" {
		t.Errorf("expected empty provider, got %q", seg.Provider)
	}
	if seg.Facility != "" {
		t.Errorf("expected empty facility, got %q", seg.Facility)
	}
	if seg.DocumentType != "" {
		t.Errorf("expected empty document type, got %q", seg.DocumentType)
	}
}

func TestExtractDate_LabelPreferredOverBareDate(t *testing.T) {
	text := "Admitted on 03/04/2021 for observation.\nDate of Service: 01/05/2023"
	d, ok := extractDate(text)
	if !ok {
		t.Fatal("expected a date")
	}
	want := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Errorf("expected labeled date %v, got %v", want, d)
	}
}

func TestExtractDate_TwoDigitYear(t *testing.T) {
	d, ok := extractDate("DOS: 1-5-23")
	if !ok {
		t.Fatal("expected a date")
	}
	want := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Errorf("expected %v, got %v", want, d)
	}
}

func TestExtractDate_NoDate(t *testing.T) {
	if _, ok := extractDate("no dates in this narrative"); ok {
		t.Error("expected no date found")
	}
}

func TestExtractDocumentType_KeywordTable(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"patient admitted for observation", "Admission Note"},
		{"MRI of the lumbar spine was performed", "Radiology Report"},
		{"biopsy results pending review", "Pathology Report"},
	}
	for _, c := range cases {
		if got := extractDocumentType(c.text); got != c.want {
			t.Errorf("extractDocumentType(%q): expected %q, got %q", c.text, c.want, got)
		}
	}
}

func TestExtractDocumentType_CapsHeaderFallback(t *testing.T) {
	text := "PATIENT ENCOUNTER FORM\nthe member was seen and counseled regarding diet and exercise"
	if got := extractDocumentType(text); got != "Patient Encounter Form" {
		t.Errorf("expected %q, got %q", "Patient Encounter Form", got)
	}
}
