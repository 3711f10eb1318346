package graph

import (
	"context"
	"errors"

	"github.com/Naveen-Pal/StudySahayak/internal/logger"
)

// Deriver turns stored content into a renderable graph. Derivation walks a
// fixed chain of strategies from richest to plainest; each failure is logged
// and the next strategy runs. The final strategy cannot fail, so Derive
// always returns a graph with at least a root node.
type Deriver struct {
	log *logger.Logger
	gen TextGenerator
}

// NewDeriver builds a Deriver. gen may be nil when no generative backend is
// configured; derivation then starts at the deterministic fallback.
func NewDeriver(log *logger.Logger, gen TextGenerator) *Deriver {
	return &Deriver{log: log.With("component", "GraphDeriver"), gen: gen}
}

type strategy struct {
	name string
	run  func(ctx context.Context) (*Graph, error)
}

func (d *Deriver) Derive(ctx context.Context, title, content string) *Graph {
	p := ParsePayload(content)

	strategies := []strategy{
		{"ai_hierarchy", func(ctx context.Context) (*Graph, error) {
			h, err := RequestHierarchy(ctx, d.gen, p.PromptText(), defaultLanguage)
			if err != nil {
				return nil, err
			}
			if !ValidHierarchy(h) {
				return nil, ErrEmptyHierarchy
			}
			return Assemble(h, title), nil
		}},
		{"fallback_hierarchy", func(ctx context.Context) (*Graph, error) {
			return Assemble(BuildFallback(p), title), nil
		}},
		{"legacy_structured", func(ctx context.Context) (*Graph, error) {
			return BuildLegacyGraph(p, title), nil
		}},
	}

	for _, s := range strategies {
		g, err := runStrategy(ctx, s)
		if err != nil {
			if errors.Is(err, ErrBackendUnavailable) {
				d.log.Debug("graph strategy skipped", "strategy", s.name, "reason", err)
			} else {
				d.log.Warn("graph strategy failed", "strategy", s.name, "error", err)
			}
			continue
		}
		d.log.Debug("graph derived",
			"strategy", s.name,
			"nodes", len(g.Nodes),
			"links", len(g.Links),
		)
		return g
	}

	// Terminal: builds from raw text and never fails.
	d.log.Warn("all graph strategies failed, using simple text graph")
	return BuildSimpleTextGraph(p.FlattenText(), title)
}

// runStrategy isolates a strategy so a panic inside one tier degrades to
// the next tier instead of taking down the request.
func runStrategy(ctx context.Context, s strategy) (g *Graph, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = nil, errors.New("strategy panicked")
		}
	}()
	return s.run(ctx)
}
