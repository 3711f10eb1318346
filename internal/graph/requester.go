package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Naveen-Pal/StudySahayak/internal/utils"
)

// TextGenerator is the slice of the generative backend this package needs.
// The concrete client lives in internal/clients/gemini; keeping the contract
// here lets derivation be tested with a plain function.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrBackendUnavailable means no generative backend is configured.
	ErrBackendUnavailable = errors.New("generative backend unavailable")
	// ErrBackendError means the backend was called and the call failed.
	ErrBackendError = errors.New("generative backend error")
	// ErrMalformedResponse means the backend replied but the reply did not
	// contain a parseable JSON hierarchy.
	ErrMalformedResponse = errors.New("malformed hierarchy response")
	// ErrEmptyHierarchy means the hierarchy parsed but had no levels.
	ErrEmptyHierarchy = errors.New("hierarchy has no levels")
)

const hierarchyPromptTemplate = `Analyze this text and create a concept hierarchy in %s. Respond with ONLY valid JSON, no markdown, no explanations.

Text: %s

Required JSON structure:
{
  "main_topic": {
    "title": "Main Topic",
    "description": "Brief description",
    "complexity_level": "beginner|intermediate|advanced"
  },
  "hierarchy_levels": [
    {
      "level": 1,
      "title": "Core Concepts",
      "nodes": [
        {
          "id": "unique_id",
          "title": "Concept Title",
          "description": "Brief description",
          "type": "concept|definition|principle|example|application",
          "importance": "high|medium|low"
        }
      ]
    }
  ],
  "relationships": [
    {
      "source": "node_id",
      "target": "node_id",
      "relationship_type": "prerequisite|related|leads_to",
      "strength": "strong|medium|weak"
    }
  ],
  "learning_path": [
    {"step": 1, "focus": "node_id", "description": "What to learn first"}
  ],
  "difficulty_progression": {
    "beginner_nodes": [],
    "intermediate_nodes": [],
    "advanced_nodes": []
  }
}`

// RequestHierarchy asks the backend for a concept hierarchy over text. The
// text is capped before prompting so oversized inputs cost a fixed amount.
// All failure modes map to one of the sentinel errors above so callers can
// decide fallback behavior without string matching.
func RequestHierarchy(ctx context.Context, gen TextGenerator, text, language string) (*Hierarchy, error) {
	if gen == nil {
		return nil, ErrBackendUnavailable
	}
	if language == "" {
		language = defaultLanguage
	}

	capped := text
	if r := []rune(text); len(r) > promptTextLimit {
		capped = string(r[:promptTextLimit])
	}

	raw, err := gen.GenerateText(ctx, fmt.Sprintf(hierarchyPromptTemplate, language, capped))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendError, err)
	}

	candidate := utils.CleanJSONResponse(raw)
	var h Hierarchy
	if err := json.Unmarshal([]byte(candidate), &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &h, nil
}

// ValidHierarchy reports whether a backend hierarchy is usable for assembly.
// The only hard requirement is at least one hierarchy level; everything else
// the assembler can default.
func ValidHierarchy(h *Hierarchy) bool {
	return h != nil && len(h.Levels) > 0
}
