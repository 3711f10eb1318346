package services

import (
	"strings"
	"testing"
)

func TestProcessText(t *testing.T) {
	t.Parallel()

	cp := NewContentProcessor(testLogger(t))

	got, err := cp.ProcessText("  some study material here  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "some study material here" {
		t.Fatalf("text = %q", got.Text)
	}
	if got.Metadata["word_count"] != "4" {
		t.Fatalf("word_count = %q", got.Metadata["word_count"])
	}

	if _, err := cp.ProcessText("   "); err == nil {
		t.Fatalf("expected error for blank text")
	}
}

func TestProcessFilePlaintext(t *testing.T) {
	t.Parallel()

	cp := NewContentProcessor(testLogger(t))

	got, err := cp.ProcessFile("transcript.txt", "text/plain", []byte("line one\n\nline two"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Metadata["source"] != "text" {
		t.Fatalf("source = %q", got.Metadata["source"])
	}
	if !strings.Contains(got.Text, "\n\n") {
		t.Fatalf("paragraph break lost: %q", got.Text)
	}
}

func TestProcessFileHTML(t *testing.T) {
	t.Parallel()

	cp := NewContentProcessor(testLogger(t))

	html := "<!doctype html><html><head><script>var x = 1;</script></head><body><p>visible text</p></body></html>"
	got, err := cp.ProcessFile("page.html", "text/html", []byte(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got.Text, "visible text") {
		t.Fatalf("text = %q", got.Text)
	}
	if strings.Contains(got.Text, "var x") {
		t.Fatalf("script content leaked: %q", got.Text)
	}
}

func TestProcessFileRejectsBinary(t *testing.T) {
	t.Parallel()

	cp := NewContentProcessor(testLogger(t))

	if _, err := cp.ProcessFile("blob.bin", "application/octet-stream", []byte{0x00, 0x01, 0x02, 0x03}); err == nil {
		t.Fatalf("expected error for binary blob")
	}
	if _, err := cp.ProcessFile("fake.pdf", "application/pdf", []byte{0x00, 0x42, 0x00, 0x42}); err == nil {
		t.Fatalf("expected error for fake pdf")
	}
	if _, err := cp.ProcessFile("empty.txt", "text/plain", nil); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()

	in := "a  b\t c\r\nnext   line\n\n\npara"
	got := collapseWhitespace(in)
	if strings.Contains(got, "  ") || strings.Contains(got, "\r") {
		t.Fatalf("whitespace not collapsed: %q", got)
	}
	if !strings.Contains(got, "\n") {
		t.Fatalf("line structure lost: %q", got)
	}
}
