package segmenter

import (
	"strings"
	"testing"
)

func TestFilterNoise_RemovesBoilerplate(t *testing.T) {
	in := "CONFIDENTIALITY NOTICE\n" +
		"The record follows.\n" +
		"-----\n" +
		"Page 2 of 10\n" +
		"CPT: 99213\n" +
		"42\n" +
		"Next   line here"

	out := FilterNoise(in)

	for _, gone := range []string{"CONFIDENTIALITY", "Page 2 of 10", "CPT", "-----", "42"} {
		if strings.Contains(out, gone) {
			t.Errorf("expected %q to be removed, output: %q", gone, out)
		}
	}
	for _, kept := range []string{"The record follows.", "Next line here"} {
		if !strings.Contains(out, kept) {
			t.Errorf("expected %q to survive, output: %q", kept, out)
		}
	}
}

func TestFilterNoise_CollapsesWhitespace(t *testing.T) {
	out := FilterNoise("first\n\n\n\n\nsecond  and   third")

	if strings.Contains(out, "\n\n\n") {
		t.Errorf("expected newline runs collapsed to a blank line, got %q", out)
	}
	if strings.Contains(out, "  ") {
		t.Errorf("expected space runs collapsed to one space, got %q", out)
	}
	if !strings.Contains(out, "second and third") {
		t.Errorf("expected normalized text, got %q", out)
	}
}

func TestFilterNoise_TrimsResult(t *testing.T) {
	out := FilterNoise("\n\n  some content  \n\n")
	if out != strings.TrimSpace(out) {
		t.Errorf("expected trimmed output, got %q", out)
	}
	if out != "some content" {
		t.Errorf("expected %q, got %q", "some content", out)
	}
}

func TestFilterNoise_CaseInsensitivePhrases(t *testing.T) {
	out := FilterNoise("fax COVER sheet\nreal content stays")
	if strings.Contains(strings.ToLower(out), "fax") {
		t.Errorf("expected fax cover sheet removed, got %q", out)
	}
	if !strings.Contains(out, "real content stays") {
		t.Errorf("expected content to survive, got %q", out)
	}
}
