package graph

import "testing"

func photosynthesisHierarchy() *Hierarchy {
	return &Hierarchy{
		MainTopic: MainTopic{
			Title:           "Photosynthesis",
			Description:     "How plants convert light to chemical energy",
			ComplexityLevel: "intermediate",
		},
		Levels: []HierarchyLevel{
			{
				Level: 1,
				Title: "Core Concepts",
				Nodes: []HierarchyNode{
					{ID: "light", Title: "Light Reactions", Description: "Capture photons", Type: "concept", Importance: "high"},
					{ID: "calvin", Title: "Calvin Cycle", Description: "Fix carbon", Type: "principle", Importance: "medium"},
				},
			},
			{
				Level: 2,
				Title: "Details",
				Nodes: []HierarchyNode{
					{ID: "atp", Title: "ATP", Description: "Energy currency", Type: "definition", Importance: "low"},
				},
			},
		},
		Relationships: []Relationship{
			{Source: "light", Target: "calvin", RelationshipType: "leads_to", Strength: "strong"},
			{Source: "calvin", Target: "atp", RelationshipType: "related", Strength: "weak"},
		},
		LearningPath: []LearningStep{{Step: 1, Focus: "light", Description: "Start here"}},
	}
}

func TestAssembleWellFormed(t *testing.T) {
	t.Parallel()

	g := Assemble(photosynthesisHierarchy(), "ignored")

	if got, want := len(g.Nodes), 4; got != want {
		t.Fatalf("nodes = %d, want %d", got, want)
	}

	root := g.Nodes[0]
	if root.ID != "0" || root.Name != "Photosynthesis" || root.Type != "main_topic" {
		t.Fatalf("root = %+v", root)
	}
	if root.Level != 0 || root.Size != 50 || root.Color != "#1e3a8a" {
		t.Fatalf("root layout = level %d size %d color %q", root.Level, root.Size, root.Color)
	}

	light := g.Nodes[1]
	if light.ID != "1" || light.Size != 35 || light.Color != "#3b82f6" {
		t.Fatalf("light node = %+v", light)
	}
	calvin := g.Nodes[2]
	if calvin.Size != 28 || calvin.Color != "#f59e0b" {
		t.Fatalf("calvin node = %+v", calvin)
	}
	atp := g.Nodes[3]
	if atp.Level != 2 || atp.Size != 22 || atp.Color != "#10b981" {
		t.Fatalf("atp node = %+v", atp)
	}

	// Two hierarchy links from root plus two relationship links.
	if got, want := len(g.Links), 4; got != want {
		t.Fatalf("links = %d, want %d", got, want)
	}
	if g.Links[0].Source != "0" || g.Links[0].Target != "1" || g.Links[0].Value != 3 || g.Links[0].Type != "hierarchy" {
		t.Fatalf("hierarchy link = %+v", g.Links[0])
	}
	rel := g.Links[2]
	if rel.Source != "1" || rel.Target != "2" || rel.Value != 3 || rel.Type != "leads_to" {
		t.Fatalf("relationship link = %+v", rel)
	}
	weak := g.Links[3]
	if weak.Value != 1 || weak.Type != "related" {
		t.Fatalf("weak link = %+v", weak)
	}

	if g.Metadata == nil || g.Metadata.TotalLevels != 2 || g.Metadata.TotalConcepts != 4 {
		t.Fatalf("metadata = %+v", g.Metadata)
	}
	if g.Metadata.Complexity != "intermediate" {
		t.Fatalf("complexity = %q", g.Metadata.Complexity)
	}
	if len(g.LearningPath) != 1 {
		t.Fatalf("learning path = %+v", g.LearningPath)
	}
}

func TestAssembleDropsDanglingRelationships(t *testing.T) {
	t.Parallel()

	h := photosynthesisHierarchy()
	h.Relationships = append(h.Relationships,
		Relationship{Source: "light", Target: "ghost", RelationshipType: "related", Strength: "medium"},
		Relationship{Source: "atp", Target: "atp", RelationshipType: "related", Strength: "medium"},
	)

	g := Assemble(h, "")

	for _, l := range g.Links {
		if l.Source == l.Target {
			t.Fatalf("self loop survived: %+v", l)
		}
	}
	// Same count as the clean hierarchy: both bad relationships dropped.
	if got, want := len(g.Links), 4; got != want {
		t.Fatalf("links = %d, want %d", got, want)
	}
}

func TestAssembleLinkIntegrity(t *testing.T) {
	t.Parallel()

	g := Assemble(photosynthesisHierarchy(), "")

	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	for _, l := range g.Links {
		if !ids[l.Source] || !ids[l.Target] {
			t.Fatalf("link references missing node: %+v", l)
		}
	}
}

func TestAssembleTitleFallback(t *testing.T) {
	t.Parallel()

	h := photosynthesisHierarchy()
	h.MainTopic.Title = "  "

	g := Assemble(h, "Stored Row Title")
	if got, want := g.Nodes[0].Name, "Stored Row Title"; got != want {
		t.Fatalf("root name = %q, want %q", got, want)
	}

	h.MainTopic.Title = ""
	g = Assemble(h, "")
	if got, want := g.Nodes[0].Name, "Main Topic"; got != want {
		t.Fatalf("root name = %q, want %q", got, want)
	}
}

func TestAssembleMinimumViableFromRootOnly(t *testing.T) {
	t.Parallel()

	g := Assemble(&Hierarchy{MainTopic: MainTopic{Title: "Empty"}}, "")

	if got, want := len(g.Nodes), 3; got != want {
		t.Fatalf("nodes = %d, want %d", got, want)
	}
	if g.Nodes[1].Name != "Key Concept 1" || g.Nodes[2].Name != "Key Concept 2" {
		t.Fatalf("synthetic nodes = %q, %q", g.Nodes[1].Name, g.Nodes[2].Name)
	}
	if got, want := len(g.Links), 3; got != want {
		t.Fatalf("links = %d, want %d", got, want)
	}
	if g.Links[2].Source != "1" || g.Links[2].Target != "2" || g.Links[2].Value != 2 {
		t.Fatalf("sibling link = %+v", g.Links[2])
	}
	if g.Metadata.TotalConcepts != 3 {
		t.Fatalf("total_concepts = %d, want 3", g.Metadata.TotalConcepts)
	}
}

func TestAssembleMinimumViableFromSingleConcept(t *testing.T) {
	t.Parallel()

	h := &Hierarchy{
		MainTopic: MainTopic{Title: "Sparse"},
		Levels: []HierarchyLevel{{
			Level: 1,
			Nodes: []HierarchyNode{{ID: "only", Title: "Only Concept"}},
		}},
	}

	g := Assemble(h, "")

	if got, want := len(g.Nodes), 3; got != want {
		t.Fatalf("nodes = %d, want %d", got, want)
	}
	if got, want := len(g.Links), 3; got != want {
		t.Fatalf("links = %d, want %d", got, want)
	}
}

func TestAssembleDefaults(t *testing.T) {
	t.Parallel()

	h := &Hierarchy{
		MainTopic: MainTopic{Title: "Defaults"},
		Levels: []HierarchyLevel{{
			// Level 0 is treated as level 1.
			Nodes: []HierarchyNode{
				{Title: "Untyped"},
				{Title: "Odd", Type: "mystery", Importance: "extreme"},
			},
		}},
	}

	g := Assemble(h, "")

	untyped := g.Nodes[1]
	if untyped.Type != "concept" || untyped.Importance != "medium" || untyped.Size != 28 {
		t.Fatalf("untyped node = %+v", untyped)
	}
	if untyped.Level != 1 {
		t.Fatalf("level = %d, want 1", untyped.Level)
	}

	odd := g.Nodes[2]
	if odd.Size != 28 {
		t.Fatalf("unknown importance size = %d, want 28", odd.Size)
	}
	// Unknown type falls back to the level color.
	if odd.Color != "#3b82f6" {
		t.Fatalf("unknown type color = %q", odd.Color)
	}

	if g.Metadata.Complexity != "intermediate" {
		t.Fatalf("default complexity = %q", g.Metadata.Complexity)
	}
}
