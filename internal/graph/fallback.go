package graph

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// BuildFallback derives a hierarchy from the payload text alone, with no
// backend involved. It segments the text into sentences and paragraphs and
// promotes the first few segments to concepts. The result may have zero
// levels for degenerate input; the assembler's minimum-viable guarantee
// covers that case.
func BuildFallback(p Payload) (h *Hierarchy) {
	defer func() {
		if r := recover(); r != nil {
			h = minimalHierarchy()
		}
	}()

	text := p.FlattenText()
	sentences := splitSentences(text)
	paragraphs := splitParagraphs(text)

	// Sentences are the preferred segmentation. Paragraphs only stand in
	// when there are not enough sentences at that tier.
	mainConcepts := sentences
	if len(sentences) < 4 {
		mainConcepts = paragraphs
	}
	mainConcepts = firstN(mainConcepts, 4)

	var subConcepts []string
	switch {
	case len(sentences) >= 8:
		subConcepts = sentences[4:8]
	case len(paragraphs) >= 8:
		subConcepts = paragraphs[4:8]
	}

	var levels []HierarchyLevel

	if len(mainConcepts) > 0 {
		nodes := make([]HierarchyNode, 0, len(mainConcepts))
		for i, concept := range mainConcepts {
			importance := "medium"
			if i < 2 {
				importance = "high"
			}
			nodes = append(nodes, HierarchyNode{
				ID:          fmt.Sprintf("main_%d", i),
				Title:       truncateEllipsis(concept, levelOneTitleLimit),
				Description: concept,
				Type:        "concept",
				Importance:  importance,
			})
		}
		levels = append(levels, HierarchyLevel{Level: 1, Title: "Main Concepts", Nodes: nodes})
	}

	if len(subConcepts) > 0 {
		nodes := make([]HierarchyNode, 0, len(subConcepts))
		for i, concept := range subConcepts {
			nodes = append(nodes, HierarchyNode{
				ID:          fmt.Sprintf("sub_%d", i),
				Title:       truncateEllipsis(concept, levelTwoTitleLimit),
				Description: concept,
				Type:        "definition",
				Importance:  "medium",
			})
		}
		levels = append(levels, HierarchyLevel{Level: 2, Title: "Supporting Details", Nodes: nodes})
	}

	var relationships []Relationship
	if len(levels) >= 2 {
		for i := 0; i < min(len(mainConcepts), len(subConcepts)); i++ {
			relationships = append(relationships, Relationship{
				Source:           fmt.Sprintf("main_%d", i),
				Target:           fmt.Sprintf("sub_%d", i),
				RelationshipType: "related",
				Strength:         "medium",
			})
		}
	}

	var learningPath []LearningStep
	if len(mainConcepts) > 0 {
		learningPath = []LearningStep{{
			Step:        1,
			Focus:       "main_0",
			Description: "Start with the fundamental concepts",
		}}
	}

	difficulty := &DifficultyProgression{
		BeginnerNodes:     []string{},
		IntermediateNodes: []string{},
		AdvancedNodes:     []string{},
	}
	for i := 0; i < min(2, len(mainConcepts)); i++ {
		difficulty.BeginnerNodes = append(difficulty.BeginnerNodes, fmt.Sprintf("main_%d", i))
	}
	for i := 2; i < len(mainConcepts); i++ {
		difficulty.IntermediateNodes = append(difficulty.IntermediateNodes, fmt.Sprintf("main_%d", i))
	}
	for i := 0; i < min(2, len(subConcepts)); i++ {
		difficulty.IntermediateNodes = append(difficulty.IntermediateNodes, fmt.Sprintf("sub_%d", i))
	}
	for i := 2; i < len(subConcepts); i++ {
		difficulty.AdvancedNodes = append(difficulty.AdvancedNodes, fmt.Sprintf("sub_%d", i))
	}

	return &Hierarchy{
		MainTopic: MainTopic{
			Title:       "Content Analysis",
			Description: "Structured breakdown of the content",
		},
		Levels:        levels,
		Relationships: relationships,
		LearningPath:  learningPath,
		Difficulty:    difficulty,
	}
}

// splitSentences segments on periods and keeps fragments that still look
// like sentences after trimming. Short fragments like initials and list
// markers are discarded.
func splitSentences(text string) []string {
	var out []string
	for _, fragment := range strings.Split(text, ".") {
		fragment = strings.TrimSpace(fragment)
		if fragment != "" && utf8.RuneCountInString(fragment) > sentenceMinRunes {
			out = append(out, fragment)
		}
	}
	return out
}

func splitParagraphs(text string) []string {
	var out []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			out = append(out, block)
		}
	}
	return out
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// minimalHierarchy is the terminal degenerate value: a single hard-coded
// concept. It is only reachable if segmentation itself panics.
func minimalHierarchy() *Hierarchy {
	return &Hierarchy{
		MainTopic: MainTopic{
			Title:       "Content",
			Description: "Basic content structure",
		},
		Levels: []HierarchyLevel{{
			Level: 1,
			Title: "Main Topic",
			Nodes: []HierarchyNode{{
				ID:          "main_topic",
				Title:       "Main Content",
				Description: "Primary content area",
				Type:        "concept",
				Importance:  "high",
			}},
		}},
		Relationships: []Relationship{},
		LearningPath:  []LearningStep{},
		Difficulty: &DifficultyProgression{
			BeginnerNodes:     []string{"main_topic"},
			IntermediateNodes: []string{},
			AdvancedNodes:     []string{},
		},
	}
}
