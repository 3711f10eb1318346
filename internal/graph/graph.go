package graph

// Graph is the final node/link structure consumed by the rendering client.
// Field names are part of the wire contract and must not change.
type Graph struct {
	Nodes                 []Node                 `json:"nodes"`
	Links                 []Link                 `json:"links"`
	LearningPath          []LearningStep         `json:"learning_path,omitempty"`
	DifficultyProgression *DifficultyProgression `json:"difficulty_progression,omitempty"`
	Metadata              *GraphMetadata         `json:"metadata,omitempty"`
}

// Node ids are assigned by a per-assembly counter; "0" is reserved for the
// root/main-topic node, which is always Nodes[0].
type Node struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Level         int      `json:"level"`
	Size          int      `json:"size"`
	Content       string   `json:"content"`
	Color         string   `json:"color,omitempty"`
	Complexity    string   `json:"complexity,omitempty"`
	Importance    string   `json:"importance,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Examples      []string `json:"examples,omitempty"`
	Applications  []string `json:"applications,omitempty"`
	Children      []string `json:"children,omitempty"`
}

type Link struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Value       int    `json:"value"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

type GraphMetadata struct {
	TotalLevels   int    `json:"total_levels"`
	TotalConcepts int    `json:"total_concepts"`
	Complexity    string `json:"complexity"`
}
