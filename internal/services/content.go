package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Naveen-Pal/StudySahayak/internal/clients/rediscache"
	"github.com/Naveen-Pal/StudySahayak/internal/logger"
	"github.com/Naveen-Pal/StudySahayak/internal/repos"
	"github.com/Naveen-Pal/StudySahayak/internal/types"
)

// UploadInput carries one upload request. Text uploads set Text; file
// uploads (pdf, video transcript) set FileName, MimeType and Data.
type UploadInput struct {
	Type     string
	Text     string
	FileName string
	MimeType string
	Data     []byte
}

var validContentTypes = map[string]bool{
	"text":  true,
	"pdf":   true,
	"video": true,
}

var ErrInvalidContentType = errors.New("invalid content type, must be video, pdf, or text")

type ContentService interface {
	Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (*types.Content, error)
	Get(ctx context.Context, userID, contentID uuid.UUID) (*types.Content, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.Content, error)
	Delete(ctx context.Context, userID, contentID uuid.UUID) (*types.Content, error)
}

type contentService struct {
	log         *logger.Logger
	contentRepo repos.ContentRepo
	processor   ContentProcessor
	ai          AIService
	cache       rediscache.GraphCache
}

// NewContentService wires the ingestion pipeline. cache may be nil when no
// cache backend is configured.
func NewContentService(
	log *logger.Logger,
	contentRepo repos.ContentRepo,
	processor ContentProcessor,
	ai AIService,
	cache rediscache.GraphCache,
) ContentService {
	return &contentService{
		log:         log.With("service", "ContentService"),
		contentRepo: contentRepo,
		processor:   processor,
		ai:          ai,
		cache:       cache,
	}
}

// Upload ingests raw material: extract text, enrich it into a structured
// document when the generative backend is available, and store the result.
// Enrichment failure is not fatal; the raw text is stored instead so the
// deterministic derivation paths still work.
func (s *contentService) Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (*types.Content, error) {
	if !validContentTypes[in.Type] {
		return nil, ErrInvalidContentType
	}

	var (
		processed *ProcessedContent
		err       error
	)
	if in.Type == "text" {
		processed, err = s.processor.ProcessText(in.Text)
	} else {
		processed, err = s.processor.ProcessFile(in.FileName, in.MimeType, in.Data)
	}
	if err != nil {
		return nil, fmt.Errorf("process upload: %w", err)
	}

	body := processed.Text
	title := ""
	metadata := map[string]any{}
	for k, v := range processed.Metadata {
		metadata[k] = v
	}

	structured, genErr := s.ai.GenerateStructuredContent(ctx, processed.Text, in.Type, "english")
	if genErr != nil {
		if !errors.Is(genErr, ErrAIUnavailable) {
			s.log.Warn("content enrichment failed, storing raw text", "error", genErr)
		}
	} else {
		if raw, mErr := json.Marshal(structured); mErr == nil {
			body = string(raw)
		}
		if t, ok := structured["title"].(string); ok && t != "" {
			title = t
		}
		if m, ok := structured["metadata"].(map[string]any); ok {
			for k, v := range m {
				metadata[k] = v
			}
		}
	}
	if title == "" {
		title = s.ai.GenerateTitle(ctx, processed.Text)
	}

	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	content := &types.Content{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		ContentType: in.Type,
		Content:     body,
		Metadata:    datatypes.JSON(metaJSON),
	}
	if _, err := s.contentRepo.Create(ctx, nil, content); err != nil {
		return nil, fmt.Errorf("store content: %w", err)
	}

	s.log.Info("content uploaded", "content_id", content.ID, "type", in.Type, "title", title)
	return content, nil
}

func (s *contentService) Get(ctx context.Context, userID, contentID uuid.UUID) (*types.Content, error) {
	return s.contentRepo.GetByIDForUser(ctx, nil, contentID, userID)
}

func (s *contentService) List(ctx context.Context, userID uuid.UUID) ([]*types.Content, error) {
	return s.contentRepo.ListByUser(ctx, nil, userID)
}

// Delete removes the row and drops any cached graph derived from it.
func (s *contentService) Delete(ctx context.Context, userID, contentID uuid.UUID) (*types.Content, error) {
	content, err := s.contentRepo.GetByIDForUser(ctx, nil, contentID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.contentRepo.DeleteByIDForUser(ctx, nil, contentID, userID); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, contentID)
	}
	s.log.Info("content deleted", "content_id", contentID)
	return content, nil
}
