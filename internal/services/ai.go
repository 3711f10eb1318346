package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Naveen-Pal/StudySahayak/internal/clients/gemini"
	"github.com/Naveen-Pal/StudySahayak/internal/logger"
	"github.com/Naveen-Pal/StudySahayak/internal/utils"
)

// ErrAIUnavailable is returned by generation operations when no generative
// backend is configured. Callers decide whether that is fatal; graph
// derivation, for example, has a deterministic fallback.
var ErrAIUnavailable = errors.New("ai service not available")

// Artifact is a loosely typed study artifact. The backend controls the
// exact schema, so artifacts are passed through as parsed JSON rather than
// forced into structs that would drop unknown fields.
type Artifact = map[string]any

// StudyPack bundles the three study artifacts generated together.
type StudyPack struct {
	Summary Artifact `json:"summary"`
	Quiz    Artifact `json:"quiz"`
	Notes   Artifact `json:"notes"`
}

type AIService interface {
	GenerateTitle(ctx context.Context, content string) string
	GenerateStructuredContent(ctx context.Context, raw, contentType, language string) (Artifact, error)
	GenerateSummary(ctx context.Context, content, language string) (Artifact, error)
	GenerateQuiz(ctx context.Context, content, language string, numQuestions int) (Artifact, error)
	GenerateNotes(ctx context.Context, content, language string) (Artifact, error)
	GenerateStudyPack(ctx context.Context, content, language string) (*StudyPack, error)
}

type aiService struct {
	log *logger.Logger
	gen gemini.Client
}

// NewAIService builds the generation service. gen may be nil when no
// backend is configured; every operation then degrades or errors cleanly.
func NewAIService(log *logger.Logger, gen gemini.Client) AIService {
	return &aiService{log: log.With("service", "AIService"), gen: gen}
}

func (s *aiService) GenerateTitle(ctx context.Context, content string) string {
	if s.gen == nil {
		return "Untitled Content"
	}

	excerpt := content
	if r := []rune(content); len(r) > 500 {
		excerpt = string(r[:500])
	}
	prompt := fmt.Sprintf(
		"Based on the following content, generate a concise and descriptive title (maximum 60 characters):\n\nContent: %s...\n\nReturn only the title, nothing else.",
		excerpt,
	)

	raw, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		s.log.Error("title generation failed", "error", err)
		return "Generated Content"
	}

	title := strings.TrimSpace(raw)
	title = strings.NewReplacer(`"`, "", `'`, "").Replace(title)
	if r := []rune(title); len(r) > 60 {
		title = string(r[:60])
	}
	if title == "" {
		return "Generated Content"
	}
	return title
}

var structuredInstructions = map[string]string{
	"video": "This content is transcribed from a video. Please organize it into a comprehensive educational material.",
	"pdf":   "This content is extracted from a PDF document. Please restructure it into a well-organized format.",
	"text":  "This is raw text content. Please organize it into a structured educational format.",
}

func (s *aiService) GenerateStructuredContent(ctx context.Context, raw, contentType, language string) (Artifact, error) {
	if s.gen == nil {
		return nil, ErrAIUnavailable
	}
	if language == "" {
		language = "english"
	}

	instruction, ok := structuredInstructions[contentType]
	if !ok {
		instruction = "Please organize this content"
	}

	prompt := fmt.Sprintf(`%s

Transform the following content into a detailed, well-structured educational material in %s.

Raw Content: %s

Format the response as a JSON object with the following structure:
{
    "title": "Comprehensive title for the content",
    "executive_summary": "Brief overview paragraph",
    "introduction": "Introduction paragraph with context",
    "main_sections": [
        {
            "section_title": "Section name",
            "content": "Detailed content for this section",
            "key_points": ["Point 1", "Point 2", "Point 3"]
        }
    ],
    "key_takeaways": ["Takeaway 1", "Takeaway 2", "Takeaway 3"],
    "conclusion": "Conclusion paragraph",
    "concepts_glossary": {"concept": "definition"},
    "metadata": {
        "content_type": "%s",
        "language": "%s",
        "estimated_read_time": "X minutes"
    }
}

Ensure the content is educational, comprehensive, and well-organized. Respond with ONLY the JSON object.`,
		instruction, language, raw, contentType, language)

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("structured content generation: %w", err)
	}

	var doc Artifact
	if jsonErr := json.Unmarshal([]byte(utils.CleanJSONResponse(text)), &doc); jsonErr != nil {
		s.log.Warn("structured content not valid JSON, using fallback shape", "error", jsonErr)
		return fallbackStructure(text, contentType, language), nil
	}
	return doc, nil
}

// fallbackStructure wraps a non-JSON model reply in the structured document
// shape so downstream consumers never see raw prose where a document is
// expected.
func fallbackStructure(text, contentType, language string) Artifact {
	summary := text
	if r := []rune(text); len(r) > 200 {
		summary = string(r[:200]) + "..."
	}
	readMinutes := len(strings.Fields(text)) / 200
	if readMinutes < 1 {
		readMinutes = 1
	}
	return Artifact{
		"title":             "Structured Content",
		"executive_summary": summary,
		"introduction":      "This content has been processed and structured for better understanding.",
		"main_sections": []any{
			map[string]any{
				"section_title": "Main Content",
				"content":       text,
				"key_points":    []any{"Content has been processed", "Review the material carefully"},
			},
		},
		"key_takeaways":     []any{"Important information extracted", "Content organized for learning"},
		"conclusion":        "This material provides valuable insights for study and reference.",
		"concepts_glossary": map[string]any{},
		"metadata": map[string]any{
			"content_type":        contentType,
			"language":            language,
			"estimated_read_time": fmt.Sprintf("%d minutes", readMinutes),
		},
	}
}

func (s *aiService) GenerateSummary(ctx context.Context, content, language string) (Artifact, error) {
	if s.gen == nil {
		return nil, ErrAIUnavailable
	}
	if language == "" {
		language = "english"
	}

	prompt := fmt.Sprintf(`Create a comprehensive summary of the following content in %s.
The summary should be well-structured with key points and main concepts.

Content: %s

Return the response in valid JSON format with the following structure:
{
    "main_topic": "topic here",
    "key_points": ["point 1", "point 2"],
    "concepts": {"concept": "definition"},
    "conclusion": "conclusion here"
}`, language, content)

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("summary generation: %w", err)
	}

	var summary Artifact
	if jsonErr := json.Unmarshal([]byte(utils.CleanJSONResponse(text)), &summary); jsonErr != nil {
		return Artifact{
			"main_topic":   "Summary",
			"summary_text": text,
			"language":     language,
		}, nil
	}
	return summary, nil
}

// questionCount sizes a quiz by content length when the caller did not ask
// for a specific count, then clamps to the product limits.
func questionCount(content string, requested int) int {
	n := requested
	if n <= 0 {
		switch words := len(strings.Fields(content)); {
		case words < 200:
			n = 5
		case words < 500:
			n = 10
		case words < 1000:
			n = 15
		default:
			n = 20
		}
	}
	if n < 1 {
		n = 1
	}
	if n > 50 {
		n = 50
	}
	return n
}

func (s *aiService) GenerateQuiz(ctx context.Context, content, language string, numQuestions int) (Artifact, error) {
	if s.gen == nil {
		return nil, ErrAIUnavailable
	}
	if language == "" {
		language = "english"
	}
	n := questionCount(content, numQuestions)

	prompt := fmt.Sprintf(`Create a quiz with %d multiple-choice questions based on the following content in %s.

Content: %s

Requirements:
- Each question should have 4 options (A, B, C, D)
- Only one correct answer per question
- Questions should cover different aspects of the content
- Include a mix of difficulty levels

Return the response in valid JSON format:
{
    "quiz_title": "title here",
    "total_questions": %d,
    "questions": [
        {
            "id": 1,
            "question": "question text",
            "options": {"A": "option A", "B": "option B", "C": "option C", "D": "option D"},
            "correct_answer": "A",
            "explanation": "explanation of correct answer"
        }
    ]
}`, n, language, content, n)

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	var quiz Artifact
	if jsonErr := json.Unmarshal([]byte(utils.CleanJSONResponse(text)), &quiz); jsonErr != nil {
		s.log.Warn("quiz response not valid JSON", "error", jsonErr)
		return Artifact{
			"quiz_title":      "Generated Quiz",
			"total_questions": 0,
			"questions":       []any{},
			"error":           "Failed to parse quiz format",
			"raw_response":    text,
		}, nil
	}
	return quiz, nil
}

func (s *aiService) GenerateNotes(ctx context.Context, content, language string) (Artifact, error) {
	if s.gen == nil {
		return nil, ErrAIUnavailable
	}
	if language == "" {
		language = "english"
	}

	prompt := fmt.Sprintf(`Create extremely detailed, comprehensive study notes from the following content in %s.
These notes should be much more detailed than a summary.

Content: %s

Return the response in valid JSON format:
{
    "title": "comprehensive title for the notes",
    "sections": [
        {
            "heading": "detailed section heading",
            "content": "extensive section content with detailed explanations",
            "key_concepts": ["concept1", "concept2"],
            "subsections": [
                {"subheading": "subsection title", "subcontent": "detailed subsection content"}
            ]
        }
    ],
    "summary": "comprehensive overall summary",
    "key_takeaways": ["detailed takeaway 1", "detailed takeaway 2"],
    "study_tips": ["tip 1", "tip 2"],
    "further_reading": ["suggested area 1", "suggested area 2"]
}

IMPORTANT: Use plain text with newlines for formatting. Do NOT use markdown syntax.`, language, content)

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("notes generation: %w", err)
	}

	var notes Artifact
	if jsonErr := json.Unmarshal([]byte(utils.CleanJSONResponse(text)), &notes); jsonErr != nil {
		clean := strings.NewReplacer("**", "", "*", "", "#", "", "```", "").Replace(text)
		return Artifact{
			"title":    "Generated Notes",
			"content":  clean,
			"language": language,
		}, nil
	}
	return notes, nil
}

// GenerateStudyPack produces summary, quiz and notes concurrently. One
// failing artifact fails the pack; partial packs are confusing to cache.
func (s *aiService) GenerateStudyPack(ctx context.Context, content, language string) (*StudyPack, error) {
	if s.gen == nil {
		return nil, ErrAIUnavailable
	}

	var pack StudyPack
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.GenerateSummary(gctx, content, language)
		pack.Summary = summary
		return err
	})
	g.Go(func() error {
		quiz, err := s.GenerateQuiz(gctx, content, language, 0)
		pack.Quiz = quiz
		return err
	})
	g.Go(func() error {
		notes, err := s.GenerateNotes(gctx, content, language)
		pack.Notes = notes
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &pack, nil
}
