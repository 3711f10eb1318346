package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Naveen-Pal/StudySahayak/internal/http/response"
	"github.com/Naveen-Pal/StudySahayak/internal/logger"
	"github.com/Naveen-Pal/StudySahayak/internal/repos"
	"github.com/Naveen-Pal/StudySahayak/internal/services"
)

type StudyHandler struct {
	log          *logger.Logger
	studyService services.StudyService
}

func NewStudyHandler(log *logger.Logger, studyService services.StudyService) *StudyHandler {
	return &StudyHandler{
		log:          log.With("handler", "StudyHandler"),
		studyService: studyService,
	}
}

type studyRequest struct {
	ContentID    string `json:"content_id" binding:"required"`
	Language     string `json:"language"`
	NumQuestions int    `json:"num_questions"`
}

func (r *studyRequest) parse() (uuid.UUID, string, error) {
	id, err := uuid.Parse(r.ContentID)
	if err != nil {
		return uuid.Nil, "", errors.New("invalid content id")
	}
	language := r.Language
	if language == "" {
		language = "english"
	}
	return id, language, nil
}

func (h *StudyHandler) respondStudyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repos.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", errors.New("content not found"))
	case errors.Is(err, services.ErrAIUnavailable):
		response.RespondError(c, http.StatusServiceUnavailable, "ai_unavailable", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

func (h *StudyHandler) Summary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req studyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", errors.New("content ID is required"))
		return
	}
	contentID, language, err := req.parse()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	content, summary, err := h.studyService.Summary(c.Request.Context(), userID, contentID, language)
	if err != nil {
		h.respondStudyError(c, err)
		return
	}

	response.RespondOK(c, gin.H{
		"content_id": content.ID,
		"title":      content.Title,
		"summary":    summary,
		"language":   language,
	})
}

func (h *StudyHandler) Quiz(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req studyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", errors.New("content ID is required"))
		return
	}
	if req.NumQuestions != 0 && (req.NumQuestions < 1 || req.NumQuestions > 50) {
		response.RespondError(c, http.StatusBadRequest, "bad_request", errors.New("number of questions must be between 1 and 50"))
		return
	}
	contentID, language, err := req.parse()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	content, quiz, err := h.studyService.Quiz(c.Request.Context(), userID, contentID, language, req.NumQuestions)
	if err != nil {
		h.respondStudyError(c, err)
		return
	}

	totalQuestions := 0
	if questions, ok := quiz["questions"].([]any); ok {
		totalQuestions = len(questions)
	}

	response.RespondOK(c, gin.H{
		"content_id":      content.ID,
		"title":           content.Title,
		"quiz":            quiz,
		"language":        language,
		"total_questions": totalQuestions,
	})
}

func (h *StudyHandler) Notes(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req studyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", errors.New("content ID is required"))
		return
	}
	contentID, language, err := req.parse()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	content, notes, err := h.studyService.Notes(c.Request.Context(), userID, contentID, language)
	if err != nil {
		h.respondStudyError(c, err)
		return
	}

	response.RespondOK(c, gin.H{
		"content_id": content.ID,
		"title":      content.Title,
		"notes":      notes,
		"language":   language,
	})
}

// Pack generates summary, quiz and notes in one request.
func (h *StudyHandler) Pack(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req studyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", errors.New("content ID is required"))
		return
	}
	contentID, language, err := req.parse()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	content, pack, err := h.studyService.Pack(c.Request.Context(), userID, contentID, language)
	if err != nil {
		h.respondStudyError(c, err)
		return
	}

	response.RespondOK(c, gin.H{
		"content_id": content.ID,
		"title":      content.Title,
		"summary":    pack.Summary,
		"quiz":       pack.Quiz,
		"notes":      pack.Notes,
		"language":   language,
	})
}
