package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursekg/coursekg-backend/internal/http/response"
	pkgerrors "github.com/coursekg/coursekg-backend/internal/pkg/errors"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
	"github.com/coursekg/coursekg-backend/internal/services"
)

type SearchHandler struct {
	log      *logger.Logger
	aiSearch *services.AISearchService
}

func NewSearchHandler(log *logger.Logger, aiSearch *services.AISearchService) *SearchHandler {
	return &SearchHandler{
		log:      log.With("handler", "SearchHandler"),
		aiSearch: aiSearch,
	}
}

type aiSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (h *SearchHandler) AISearch(c *gin.Context) {
	var req aiSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.aiSearch.Search(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		h.log.Error("AISearch failed", "query", req.Query, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "ai_search_failed", err)
		return
	}
	response.RespondOK(c, result)
}
