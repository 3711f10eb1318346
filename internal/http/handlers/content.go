package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Naveen-Pal/StudySahayak/internal/http/middleware"
	"github.com/Naveen-Pal/StudySahayak/internal/http/response"
	"github.com/Naveen-Pal/StudySahayak/internal/logger"
	"github.com/Naveen-Pal/StudySahayak/internal/repos"
	"github.com/Naveen-Pal/StudySahayak/internal/services"
	"github.com/Naveen-Pal/StudySahayak/internal/types"
)

// maxUploadBytes caps file uploads; PDFs and transcripts beyond this are
// rejected before extraction.
const maxUploadBytes = 32 << 20

type ContentHandler struct {
	log            *logger.Logger
	contentService services.ContentService
}

func NewContentHandler(log *logger.Logger, contentService services.ContentService) *ContentHandler {
	return &ContentHandler{
		log:            log.With("handler", "ContentHandler"),
		contentService: contentService,
	}
}

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing authentication"))
		return uuid.Nil, false
	}
	return userID, true
}

func parseContentID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid content id")
	}
	return id, nil
}

// Upload accepts multipart form data: "type" selects text, pdf or video;
// text uploads carry a "content" field, file uploads carry "file".
func (h *ContentHandler) Upload(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	in := services.UploadInput{Type: c.PostForm("type")}
	switch in.Type {
	case "text":
		in.Text = c.PostForm("content")
		if in.Text == "" {
			response.RespondError(c, http.StatusBadRequest, "bad_request", errors.New("content text is required"))
			return
		}
	case "pdf", "video":
		fileHeader, err := c.FormFile("file")
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "bad_request", errors.New("file is required"))
			return
		}
		if fileHeader.Size > maxUploadBytes {
			response.RespondError(c, http.StatusBadRequest, "bad_request", errors.New("file too large"))
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("open upload: %w", err))
			return
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("read upload: %w", err))
			return
		}
		in.FileName = fileHeader.Filename
		in.MimeType = fileHeader.Header.Get("Content-Type")
		in.Data = data
	default:
		response.RespondError(c, http.StatusBadRequest, "bad_request", services.ErrInvalidContentType)
		return
	}

	content, err := h.contentService.Upload(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidContentType) {
			response.RespondError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
		response.RespondError(c, http.StatusBadRequest, "upload_failed", err)
		return
	}

	response.RespondCreated(c, gin.H{
		"message":    "Content uploaded and processed successfully",
		"content_id": content.ID,
		"title":      content.Title,
	})
}

type contentSummary struct {
	ID          uuid.UUID       `json:"content_id"`
	Title       string          `json:"title"`
	ContentType string          `json:"content_type"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

func (h *ContentHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	contents, err := h.contentService.List(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	out := make([]contentSummary, 0, len(contents))
	for _, content := range contents {
		out = append(out, summarize(content))
	}
	response.RespondOK(c, gin.H{"contents": out})
}

func summarize(content *types.Content) contentSummary {
	return contentSummary{
		ID:          content.ID,
		Title:       content.Title,
		ContentType: content.ContentType,
		Metadata:    json.RawMessage(content.Metadata),
		CreatedAt:   content.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Get returns the stored row with its content parsed back into a structured
// document when possible. Plain text rows get wrapped in a basic shape so
// clients always receive an object.
func (h *ContentHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	contentID, err := parseContentID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	content, err := h.contentService.Get(c.Request.Context(), userID, contentID)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "not_found", errors.New("content not found"))
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	var structured any
	if err := json.Unmarshal([]byte(content.Content), &structured); err != nil {
		structured = gin.H{
			"title":        content.Title,
			"content":      content.Content,
			"content_type": content.ContentType,
		}
	}

	response.RespondOK(c, gin.H{
		"content_id":         content.ID,
		"title":              content.Title,
		"structured_content": structured,
		"content_type":       content.ContentType,
		"metadata":           json.RawMessage(content.Metadata),
		"created_at":         content.CreatedAt,
	})
}

func (h *ContentHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	contentID, err := parseContentID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	content, err := h.contentService.Delete(c.Request.Context(), userID, contentID)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "not_found", errors.New("content not found or you do not have permission to delete it"))
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	response.RespondOK(c, gin.H{
		"message":    fmt.Sprintf("Content %q has been deleted successfully", content.Title),
		"content_id": content.ID,
	})
}
