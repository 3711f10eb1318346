package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Naveen-Pal/StudySahayak/internal/clients/rediscache"
	"github.com/Naveen-Pal/StudySahayak/internal/graph"
	"github.com/Naveen-Pal/StudySahayak/internal/logger"
	"github.com/Naveen-Pal/StudySahayak/internal/repos"
)

// GraphService serves the knowledge graph for a content row. Derivation is
// non-deterministic when a generative backend is involved, so results are
// cached per content id; the cache is best effort and may be absent.
type GraphService interface {
	GetGraphData(ctx context.Context, userID, contentID uuid.UUID) (*graph.Graph, error)
}

type graphService struct {
	log         *logger.Logger
	contentRepo repos.ContentRepo
	deriver     *graph.Deriver
	cache       rediscache.GraphCache
}

func NewGraphService(
	log *logger.Logger,
	contentRepo repos.ContentRepo,
	deriver *graph.Deriver,
	cache rediscache.GraphCache,
) GraphService {
	return &graphService{
		log:         log.With("service", "GraphService"),
		contentRepo: contentRepo,
		deriver:     deriver,
		cache:       cache,
	}
}

func (s *graphService) GetGraphData(ctx context.Context, userID, contentID uuid.UUID) (*graph.Graph, error) {
	content, err := s.contentRepo.GetByIDForUser(ctx, nil, contentID, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if g, ok := s.cache.Get(ctx, contentID); ok {
			s.log.Debug("graph cache hit", "content_id", contentID)
			return g, nil
		}
	}

	g := s.deriver.Derive(ctx, content.Title, content.Content)

	if s.cache != nil {
		s.cache.Set(ctx, contentID, g)
	}
	return g, nil
}
