package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// Assemble converts a hierarchy into the renderable node/link graph. It is
// total over any non-nil hierarchy: missing fields get defaults, dangling or
// self-referential relationships are dropped, and degenerate results are
// padded up to the minimum viable shape.
func Assemble(h *Hierarchy, fallbackTitle string) *Graph {
	nodes := make([]Node, 0, 8)
	links := make([]Link, 0, 8)
	counter := 0

	title := strings.TrimSpace(h.MainTopic.Title)
	if title == "" {
		title = fallbackTitle
	}
	if title == "" {
		title = "Main Topic"
	}
	description := h.MainTopic.Description
	if description == "" {
		description = "Central concept"
	}
	complexity := h.MainTopic.ComplexityLevel
	if complexity == "" {
		complexity = defaultComplexity
	}

	nodes = append(nodes, Node{
		ID:         strconv.Itoa(counter),
		Name:       title,
		Type:       "main_topic",
		Level:      0,
		Size:       rootNodeSize,
		Content:    description,
		Complexity: complexity,
		Color:      rootColor,
	})
	counter++

	// Relationship endpoints may reference either the node's declared id or
	// its lowercased title, whichever the backend used.
	idMap := map[string]string{"main": "0"}

	for _, level := range h.Levels {
		levelNum := level.Level
		if levelNum == 0 {
			levelNum = 1
		}

		for _, hn := range level.Nodes {
			nodeID := strconv.Itoa(counter)
			name := hn.Title
			if name == "" {
				name = fmt.Sprintf("Node %d", counter)
			}

			importance := hn.Importance
			if importance == "" {
				importance = "medium"
			}
			size, ok := importanceSizes[importance]
			if !ok {
				size = defaultNodeSize
			}

			nodeType := hn.Type
			if nodeType == "" {
				nodeType = "concept"
			}
			color, ok := typeColors[nodeType]
			if !ok {
				if color, ok = levelColors[levelNum]; !ok {
					color = fallbackColor
				}
			}

			nodes = append(nodes, Node{
				ID:            nodeID,
				Name:          name,
				Type:          nodeType,
				Level:         levelNum,
				Size:          size,
				Content:       hn.Description,
				Importance:    importance,
				Prerequisites: hn.Prerequisites,
				Examples:      hn.Examples,
				Applications:  hn.Applications,
				Color:         color,
			})

			key := hn.ID
			if key == "" {
				key = strings.ToLower(hn.Title)
			}
			idMap[key] = nodeID

			if levelNum == 1 {
				links = append(links, Link{Source: "0", Target: nodeID, Value: 3, Type: "hierarchy"})
			}
			counter++
		}
	}

	for _, rel := range h.Relationships {
		sourceID, okSource := idMap[rel.Source]
		targetID, okTarget := idMap[rel.Target]
		if !okSource || !okTarget || sourceID == targetID {
			continue
		}

		relType := rel.RelationshipType
		if relType == "" {
			relType = "related"
		}
		value, ok := strengthValues[rel.Strength]
		if !ok {
			value = defaultLinkValue
		}

		links = append(links, Link{
			Source:      sourceID,
			Target:      targetID,
			Value:       value,
			Type:        relType,
			Description: rel.Description,
		})
	}

	nodes, links = ensureMinimumViable(nodes, links)

	return &Graph{
		Nodes:                 nodes,
		Links:                 links,
		LearningPath:          h.LearningPath,
		DifficultyProgression: h.Difficulty,
		Metadata: &GraphMetadata{
			TotalLevels:   len(h.Levels),
			TotalConcepts: len(nodes),
			Complexity:    complexity,
		},
	}
}

// ensureMinimumViable pads degenerate graphs with synthetic concept nodes so
// the client always has at least three nodes and three links to lay out.
func ensureMinimumViable(nodes []Node, links []Link) ([]Node, []Link) {
	if len(nodes) >= minViableNodes {
		return nodes, links
	}

	if len(nodes) == 1 {
		nodes = append(nodes,
			Node{
				ID:      "1",
				Name:    "Key Concept 1",
				Type:    "concept",
				Level:   1,
				Size:    30,
				Content: "Primary concept from the content",
				Color:   "#3b82f6",
			},
			Node{
				ID:      "2",
				Name:    "Key Concept 2",
				Type:    "definition",
				Level:   1,
				Size:    28,
				Content: "Secondary concept from the content",
				Color:   "#10b981",
			},
		)
		links = append(links,
			Link{Source: "0", Target: "1", Value: 3, Type: "hierarchy"},
			Link{Source: "0", Target: "2", Value: 3, Type: "hierarchy"},
			Link{Source: "1", Target: "2", Value: 2, Type: "related"},
		)
		return nodes, links
	}

	// Root plus a single concept: supplement one synthetic sibling so the
	// graph still meets the minimum.
	supplementID := strconv.Itoa(len(nodes))
	partnerID := nodes[1].ID
	nodes = append(nodes, Node{
		ID:      supplementID,
		Name:    "Key Concept 2",
		Type:    "definition",
		Level:   1,
		Size:    28,
		Content: "Secondary concept from the content",
		Color:   "#10b981",
	})
	links = append(links,
		Link{Source: "0", Target: supplementID, Value: 3, Type: "hierarchy"},
		Link{Source: partnerID, Target: supplementID, Value: 2, Type: "related"},
	)
	return nodes, links
}
