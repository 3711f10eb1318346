package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Naveen-Pal/StudySahayak/internal/graph"
	"github.com/Naveen-Pal/StudySahayak/internal/logger"
	"github.com/Naveen-Pal/StudySahayak/internal/repos"
	"github.com/Naveen-Pal/StudySahayak/internal/types"
)

// StudyService generates study artifacts (summary, quiz, notes) for stored
// content on demand. Each operation loads the row, flattens structured
// content to prose, and delegates to the generation service.
type StudyService interface {
	Summary(ctx context.Context, userID, contentID uuid.UUID, language string) (*types.Content, Artifact, error)
	Quiz(ctx context.Context, userID, contentID uuid.UUID, language string, numQuestions int) (*types.Content, Artifact, error)
	Notes(ctx context.Context, userID, contentID uuid.UUID, language string) (*types.Content, Artifact, error)
	Pack(ctx context.Context, userID, contentID uuid.UUID, language string) (*types.Content, *StudyPack, error)
}

type studyService struct {
	log         *logger.Logger
	contentRepo repos.ContentRepo
	ai          AIService
}

func NewStudyService(log *logger.Logger, contentRepo repos.ContentRepo, ai AIService) StudyService {
	return &studyService{
		log:         log.With("service", "StudyService"),
		contentRepo: contentRepo,
		ai:          ai,
	}
}

func (s *studyService) load(ctx context.Context, userID, contentID uuid.UUID) (*types.Content, string, error) {
	content, err := s.contentRepo.GetByIDForUser(ctx, nil, contentID, userID)
	if err != nil {
		return nil, "", err
	}
	return content, graph.ParsePayload(content.Content).FlattenText(), nil
}

func (s *studyService) Summary(ctx context.Context, userID, contentID uuid.UUID, language string) (*types.Content, Artifact, error) {
	content, text, err := s.load(ctx, userID, contentID)
	if err != nil {
		return nil, nil, err
	}
	summary, err := s.ai.GenerateSummary(ctx, text, language)
	if err != nil {
		return nil, nil, err
	}
	return content, summary, nil
}

func (s *studyService) Quiz(ctx context.Context, userID, contentID uuid.UUID, language string, numQuestions int) (*types.Content, Artifact, error) {
	content, text, err := s.load(ctx, userID, contentID)
	if err != nil {
		return nil, nil, err
	}
	quiz, err := s.ai.GenerateQuiz(ctx, text, language, numQuestions)
	if err != nil {
		return nil, nil, err
	}
	return content, quiz, nil
}

func (s *studyService) Notes(ctx context.Context, userID, contentID uuid.UUID, language string) (*types.Content, Artifact, error) {
	content, text, err := s.load(ctx, userID, contentID)
	if err != nil {
		return nil, nil, err
	}
	notes, err := s.ai.GenerateNotes(ctx, text, language)
	if err != nil {
		return nil, nil, err
	}
	return content, notes, nil
}

func (s *studyService) Pack(ctx context.Context, userID, contentID uuid.UUID, language string) (*types.Content, *StudyPack, error) {
	content, text, err := s.load(ctx, userID, contentID)
	if err != nil {
		return nil, nil, err
	}
	pack, err := s.ai.GenerateStudyPack(ctx, text, language)
	if err != nil {
		return nil, nil, err
	}
	return content, pack, nil
}
