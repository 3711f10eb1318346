package graph

// Hierarchy is the backend contract object: the intermediate
// topic/levels/nodes/relationships schema a generative model returns before
// it is assembled into a renderable Graph. Everything except
// hierarchy_levels is optional; the assembler tolerates missing pieces.
type Hierarchy struct {
	MainTopic     MainTopic              `json:"main_topic"`
	Levels        []HierarchyLevel       `json:"hierarchy_levels"`
	Relationships []Relationship         `json:"relationships,omitempty"`
	LearningPath  []LearningStep         `json:"learning_path,omitempty"`
	Difficulty    *DifficultyProgression `json:"difficulty_progression,omitempty"`
}

type MainTopic struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	ComplexityLevel string `json:"complexity_level,omitempty"`
}

type HierarchyLevel struct {
	Level int             `json:"level"`
	Title string          `json:"title"`
	Nodes []HierarchyNode `json:"nodes"`
}

type HierarchyNode struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Type          string   `json:"type"`
	Importance    string   `json:"importance"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Examples      []string `json:"examples,omitempty"`
	Applications  []string `json:"applications,omitempty"`
}

// Relationship endpoints reference HierarchyNode ids. Dangling references
// are legal input; the assembler drops them instead of failing.
type Relationship struct {
	Source           string `json:"source"`
	Target           string `json:"target"`
	RelationshipType string `json:"relationship_type"`
	Strength         string `json:"strength"`
	Description      string `json:"description,omitempty"`
}

type LearningStep struct {
	Step        int    `json:"step"`
	Focus       string `json:"focus"`
	Description string `json:"description"`
}

type DifficultyProgression struct {
	BeginnerNodes     []string `json:"beginner_nodes"`
	IntermediateNodes []string `json:"intermediate_nodes"`
	AdvancedNodes     []string `json:"advanced_nodes"`
}
