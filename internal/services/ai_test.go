package services

import (
	"context"
	"strings"
	"testing"

	"github.com/Naveen-Pal/StudySahayak/internal/logger"
)

type fakeGen struct {
	reply string
	err   error
	last  string
}

func (f *fakeGen) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.last = prompt
	return f.reply, f.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestQuestionCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		words     int
		requested int
		want      int
	}{
		{"short content", 100, 0, 5},
		{"medium content", 300, 0, 10},
		{"long content", 700, 0, 15},
		{"very long content", 1500, 0, 20},
		{"explicit count", 100, 12, 12},
		{"clamped high", 100, 99, 50},
		{"clamped low", 100, -3, 5},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			content := strings.TrimSpace(strings.Repeat("word ", tt.words))
			if got := questionCount(content, tt.requested); got != tt.want {
				t.Fatalf("questionCount(%d words, %d) = %d, want %d", tt.words, tt.requested, got, tt.want)
			}
		})
	}
}

func TestGenerateTitleNoBackend(t *testing.T) {
	t.Parallel()

	s := NewAIService(testLogger(t), nil)
	if got, want := s.GenerateTitle(context.Background(), "anything"), "Untitled Content"; got != want {
		t.Fatalf("title = %q, want %q", got, want)
	}
}

func TestGenerateTitleStripsQuotes(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{reply: `"The 'Complete' Guide"`}
	s := NewAIService(testLogger(t), gen)

	got := s.GenerateTitle(context.Background(), "content body")
	if want := "The Complete Guide"; got != want {
		t.Fatalf("title = %q, want %q", got, want)
	}
}

func TestGenerateTitleCaps(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{reply: strings.Repeat("t", 100)}
	s := NewAIService(testLogger(t), gen)

	got := s.GenerateTitle(context.Background(), "content")
	if len([]rune(got)) != 60 {
		t.Fatalf("title runes = %d, want 60", len([]rune(got)))
	}
}

func TestGenerateSummaryParsesJSON(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{reply: "```json\n{\"main_topic\": \"Physics\", \"key_points\": [\"a\"]}\n```"}
	s := NewAIService(testLogger(t), gen)

	summary, err := s.GenerateSummary(context.Background(), "content", "english")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary["main_topic"] != "Physics" {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestGenerateSummaryPlainTextFallback(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{reply: "Here is a prose summary without structure."}
	s := NewAIService(testLogger(t), gen)

	summary, err := s.GenerateSummary(context.Background(), "content", "hindi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary["main_topic"] != "Summary" || summary["language"] != "hindi" {
		t.Fatalf("fallback summary = %+v", summary)
	}
	if summary["summary_text"] == "" {
		t.Fatalf("fallback summary missing text")
	}
}

func TestGenerateQuizFallbackShape(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{reply: "I could not produce a quiz."}
	s := NewAIService(testLogger(t), gen)

	quiz, err := s.GenerateQuiz(context.Background(), "content", "", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz["quiz_title"] != "Generated Quiz" {
		t.Fatalf("quiz = %+v", quiz)
	}
	if quiz["raw_response"] != "I could not produce a quiz." {
		t.Fatalf("raw response not preserved: %+v", quiz)
	}
}

func TestGenerateNotesStripsMarkdownInFallback(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{reply: "# Heading\n**bold** and *italic*"}
	s := NewAIService(testLogger(t), gen)

	notes, err := s.GenerateNotes(context.Background(), "content", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, _ := notes["content"].(string)
	if strings.ContainsAny(text, "*#") {
		t.Fatalf("markdown not stripped: %q", text)
	}
}

func TestGenerateStructuredContentFallbackShape(t *testing.T) {
	t.Parallel()

	gen := &fakeGen{reply: "Plain prose reply instead of JSON."}
	s := NewAIService(testLogger(t), gen)

	doc, err := s.GenerateStructuredContent(context.Background(), "raw", "pdf", "english")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc["title"] != "Structured Content" {
		t.Fatalf("doc = %+v", doc)
	}
	meta, _ := doc["metadata"].(map[string]any)
	if meta["content_type"] != "pdf" || meta["estimated_read_time"] != "1 minutes" {
		t.Fatalf("metadata = %+v", meta)
	}
}

func TestGenerateStudyPackUnavailable(t *testing.T) {
	t.Parallel()

	s := NewAIService(testLogger(t), nil)
	if _, err := s.GenerateStudyPack(context.Background(), "content", ""); err != ErrAIUnavailable {
		t.Fatalf("err = %v, want ErrAIUnavailable", err)
	}
}
