package services

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"github.com/Naveen-Pal/StudySahayak/internal/logger"
)

// ProcessedContent is the normalized result of ingesting an upload: plain
// text plus whatever metadata the processor could determine.
type ProcessedContent struct {
	Text     string
	Metadata map[string]string
}

// ContentProcessor turns uploaded material into plain text ready for
// derivation and study artifact generation.
type ContentProcessor interface {
	ProcessText(text string) (*ProcessedContent, error)
	ProcessFile(originalName, mimeType string, data []byte) (*ProcessedContent, error)
}

type contentProcessor struct {
	log *logger.Logger
}

func NewContentProcessor(log *logger.Logger) ContentProcessor {
	return &contentProcessor{log: log.With("service", "ContentProcessor")}
}

func (cp *contentProcessor) ProcessText(text string) (*ProcessedContent, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty text content")
	}
	return &ProcessedContent{
		Text: text,
		Metadata: map[string]string{
			"source":     "text",
			"word_count": fmt.Sprintf("%d", len(strings.Fields(text))),
		},
	}, nil
}

// ProcessFile sniffs the real file type from the bytes before trusting the
// declared extension or mime type. Saved transcripts and subtitle files come
// through the plaintext path.
func (cp *contentProcessor) ProcessFile(originalName, mimeType string, data []byte) (*ProcessedContent, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file: name=%s mime=%s", originalName, mimeType)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	mt := strings.ToLower(strings.TrimSpace(mimeType))

	var (
		text   string
		source string
		err    error
	)
	switch {
	case isPDF(data):
		text, err = extractPDF(data)
		source = "pdf"
	case looksLikeHTML(data) || mt == "text/html" || ext == ".html" || ext == ".htm":
		text = stripHTML(string(data))
		source = "html"
	case isProbablyText(data):
		text = collapseWhitespace(string(data))
		source = "text"
	case mt == "application/pdf" || ext == ".pdf":
		return nil, fmt.Errorf("file claims pdf but has no %%PDF header: name=%s", originalName)
	default:
		return nil, fmt.Errorf("unsupported file type: name=%s ext=%s mime=%s", originalName, ext, mt)
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text extracted: name=%s", originalName)
	}

	cp.log.Debug("extracted upload text", "name", originalName, "source", source, "chars", len(text))
	return &ProcessedContent{
		Text: text,
		Metadata: map[string]string{
			"source":     source,
			"filename":   originalName,
			"word_count": fmt.Sprintf("%d", len(strings.Fields(text))),
		},
	}, nil
}

func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func looksLikeHTML(b []byte) bool {
	head := b
	if len(head) > 2048 {
		head = head[:2048]
	}
	s := strings.TrimSpace(strings.ToLower(string(head)))
	return strings.HasPrefix(s, "<!doctype") || strings.HasPrefix(s, "<html") ||
		(strings.Contains(s, "<html") && strings.Contains(s, "<body"))
}

// isProbablyText accepts byte streams that are mostly printable with no NUL
// bytes. UTF-8 multibyte sequences count as printable.
func isProbablyText(b []byte) bool {
	sample := b
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	good := 0
	for _, c := range sample {
		if c == 0x00 {
			return false
		}
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7e) || c >= 0x80 {
			good++
		}
	}
	return float64(good)/float64(len(sample)) > 0.9
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return collapseWhitespace(string(b)), nil
}

var (
	tagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
	scriptRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
)

func stripHTML(s string) string {
	s = scriptRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")
	return collapseWhitespace(s)
}

var spaceRe = regexp.MustCompile(`[ \t]+`)

// collapseWhitespace tightens runs of spaces but keeps paragraph breaks,
// which downstream segmentation depends on.
func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = spaceRe.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
