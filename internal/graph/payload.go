package graph

import (
	"encoding/json"
	"strings"
)

// StructuredDocument is the legacy enriched-content shape: a pre-processed
// document with sections, glossary and takeaways instead of raw text. Older
// rows store this as a JSON object in the content column.
type StructuredDocument struct {
	Title            string            `json:"title"`
	ExecutiveSummary string            `json:"executive_summary"`
	Introduction     string            `json:"introduction"`
	MainSections     []DocumentSection `json:"main_sections"`
	ConceptsGlossary map[string]string `json:"concepts_glossary"`
	KeyTakeaways     []string          `json:"key_takeaways"`
	Conclusion       string            `json:"conclusion"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

type DocumentSection struct {
	SectionTitle string   `json:"section_title"`
	Content      string   `json:"content"`
	KeyPoints    []string `json:"key_points"`
}

// Payload is a stored content value with its shape resolved once. Doc is
// non-nil when the raw value parsed as a structured document; Text always
// holds the original raw value.
type Payload struct {
	Text string
	Doc  *StructuredDocument
}

// ParsePayload classifies a stored content value. Anything that is not a
// parseable JSON object is treated as plain text, including JSON arrays and
// scalars.
func ParsePayload(raw string) Payload {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var doc StructuredDocument
		if err := json.Unmarshal([]byte(trimmed), &doc); err == nil {
			return Payload{Text: raw, Doc: &doc}
		}
	}
	return Payload{Text: raw}
}

// FlattenText collapses the payload to analyzable prose. Structured
// documents contribute title, summary, section bodies, key points and
// takeaways in document order; plain text passes through unchanged.
func (p Payload) FlattenText() string {
	if p.Doc == nil {
		return p.Text
	}

	var parts []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	add(p.Doc.Title)
	add(p.Doc.ExecutiveSummary)
	add(p.Doc.Introduction)
	for _, section := range p.Doc.MainSections {
		add(section.SectionTitle)
		add(section.Content)
		for _, point := range section.KeyPoints {
			add(point)
		}
	}
	add(strings.Join(p.Doc.KeyTakeaways, " "))
	add(p.Doc.Conclusion)

	return strings.Join(parts, " ")
}

// PromptText is the bounded extraction used when embedding content in
// generation prompts.
func (p Payload) PromptText() string {
	text := p.FlattenText()
	if r := []rune(text); len(r) > extractTextLimit {
		return string(r[:extractTextLimit])
	}
	return text
}
