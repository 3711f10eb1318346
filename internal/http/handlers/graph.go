package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Naveen-Pal/StudySahayak/internal/http/response"
	"github.com/Naveen-Pal/StudySahayak/internal/logger"
	"github.com/Naveen-Pal/StudySahayak/internal/repos"
	"github.com/Naveen-Pal/StudySahayak/internal/services"
)

type GraphHandler struct {
	log          *logger.Logger
	graphService services.GraphService
}

func NewGraphHandler(log *logger.Logger, graphService services.GraphService) *GraphHandler {
	return &GraphHandler{
		log:          log.With("handler", "GraphHandler"),
		graphService: graphService,
	}
}

// GetGraphData returns the knowledge graph for a content row. Derivation
// always succeeds once the row is found; the only client-visible failures
// are lookup failures.
func (h *GraphHandler) GetGraphData(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	contentID, err := parseContentID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	g, err := h.graphService.GetGraphData(c.Request.Context(), userID, contentID)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "not_found", errors.New("content not found"))
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	response.RespondOK(c, g)
}
