package graph

import (
	"fmt"
	"sort"
	"strconv"
)

// BuildLegacyGraph is the pre-hierarchy renderer kept for structured rows
// written by older versions of the product. It walks the document shape
// directly into nodes and links with no backend involvement. Plain text
// payloads degrade to the simple paragraph graph.
func BuildLegacyGraph(p Payload, fallbackTitle string) *Graph {
	if p.Doc == nil {
		return BuildSimpleTextGraph(p.Text, fallbackTitle)
	}
	doc := p.Doc

	nodes := make([]Node, 0, 8)
	links := make([]Link, 0, 8)
	nodeID := 0

	title := doc.Title
	if title == "" {
		title = fallbackTitle
	}
	if title == "" {
		title = "Content"
	}
	summary := doc.ExecutiveSummary
	if summary == "" {
		summary = "Main content"
	}

	nodes = append(nodes, Node{
		ID:      strconv.Itoa(nodeID),
		Name:    title,
		Type:    "main_topic",
		Level:   0,
		Size:    legacyRootSize,
		Content: summary,
	})
	nodeID++

	for i, section := range doc.MainSections {
		name := section.SectionTitle
		if name == "" {
			name = fmt.Sprintf("Section %d", i+1)
		}

		sectionIdx := len(nodes)
		nodes = append(nodes, Node{
			ID:       strconv.Itoa(nodeID),
			Name:     name,
			Type:     "sub_topic",
			Level:    1,
			Size:     30,
			Content:  truncateEllipsis(section.Content, legacySectionContentLimit),
			Children: []string{},
		})
		links = append(links, Link{Source: "0", Target: strconv.Itoa(nodeID), Value: 3})
		sectionID := nodeID
		nodeID++

		for _, point := range section.KeyPoints {
			nodes = append(nodes, Node{
				ID:      strconv.Itoa(nodeID),
				Name:    truncateEllipsis(point, legacyPointNameLimit),
				Type:    "key_point",
				Level:   2,
				Size:    20,
				Content: point,
			})
			nodes[sectionIdx].Children = append(nodes[sectionIdx].Children, point)
			links = append(links, Link{Source: strconv.Itoa(sectionID), Target: strconv.Itoa(nodeID), Value: 2})
			nodeID++
		}
	}

	if len(doc.ConceptsGlossary) > 0 {
		nodes = append(nodes, Node{
			ID:      strconv.Itoa(nodeID),
			Name:    "Key Concepts",
			Type:    "sub_topic",
			Level:   1,
			Size:    30,
			Content: "Important concepts and definitions",
		})
		links = append(links, Link{Source: "0", Target: strconv.Itoa(nodeID), Value: 3})
		glossaryID := nodeID
		nodeID++

		// Sorted so repeated derivations of the same row are identical.
		terms := make([]string, 0, len(doc.ConceptsGlossary))
		for term := range doc.ConceptsGlossary {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		for _, term := range terms {
			nodes = append(nodes, Node{
				ID:      strconv.Itoa(nodeID),
				Name:    term,
				Type:    "concept",
				Level:   2,
				Size:    25,
				Content: doc.ConceptsGlossary[term],
			})
			links = append(links, Link{Source: strconv.Itoa(glossaryID), Target: strconv.Itoa(nodeID), Value: 2})
			nodeID++
		}
	}

	if len(doc.KeyTakeaways) > 0 {
		nodes = append(nodes, Node{
			ID:      strconv.Itoa(nodeID),
			Name:    "Key Takeaways",
			Type:    "sub_topic",
			Level:   1,
			Size:    30,
			Content: "Main lessons and insights",
		})
		links = append(links, Link{Source: "0", Target: strconv.Itoa(nodeID), Value: 3})
		takeawaysID := nodeID
		nodeID++

		for _, takeaway := range doc.KeyTakeaways {
			nodes = append(nodes, Node{
				ID:      strconv.Itoa(nodeID),
				Name:    truncateEllipsis(takeaway, legacyPointNameLimit),
				Type:    "key_point",
				Level:   2,
				Size:    20,
				Content: takeaway,
			})
			links = append(links, Link{Source: strconv.Itoa(takeawaysID), Target: strconv.Itoa(nodeID), Value: 2})
			nodeID++
		}
	}

	return &Graph{Nodes: nodes, Links: links}
}

// BuildSimpleTextGraph is the terminal builder. It cannot fail: the root
// node alone is a valid result for empty text.
func BuildSimpleTextGraph(text, title string) *Graph {
	if title == "" {
		title = "Content"
	}

	nodes := []Node{{
		ID:      "0",
		Name:    title,
		Type:    "main_topic",
		Level:   0,
		Size:    legacyRootSize,
		Content: truncateEllipsis(text, simpleTextContentLimit),
	}}
	var links []Link

	paragraphs := firstN(splitParagraphs(text), simpleParagraphLimit)
	for i, paragraph := range paragraphs {
		nodeType, size := "sub_topic", 25
		if i >= 5 {
			nodeType, size = "key_point", 20
		}
		nodes = append(nodes, Node{
			ID:      strconv.Itoa(i + 1),
			Name:    truncateEllipsis(paragraph, simpleNodeNameLimit),
			Type:    nodeType,
			Level:   1,
			Size:    size,
			Content: paragraph,
		})
		links = append(links, Link{Source: "0", Target: strconv.Itoa(i + 1), Value: 2})
	}

	return &Graph{Nodes: nodes, Links: links}
}
