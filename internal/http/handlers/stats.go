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

type StatsHandler struct {
	log   *logger.Logger
	stats *services.StatsService
}

func NewStatsHandler(log *logger.Logger, stats *services.StatsService) *StatsHandler {
	return &StatsHandler{
		log:   log.With("handler", "StatsHandler"),
		stats: stats,
	}
}

func (h *StatsHandler) ListSkills(c *gin.Context) {
	limit := queryInt(c, "limit", 100)

	skills, err := h.stats.Skills(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("ListSkills failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "list_skills_failed", err)
		return
	}
	response.RespondOK(c, skills)
}

func (h *StatsHandler) RelatedSkills(c *gin.Context) {
	skillName := c.Param("skill")
	limit := queryInt(c, "limit", 10)

	related, err := h.stats.RelatedSkills(c.Request.Context(), skillName, limit)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		h.log.Error("RelatedSkills failed", "skill", skillName, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "related_skills_failed", err)
		return
	}
	response.RespondOK(c, related)
}

func (h *StatsHandler) ListUniversities(c *gin.Context) {
	limit := queryInt(c, "limit", 100)

	universities, err := h.stats.Universities(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("ListUniversities failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "list_universities_failed", err)
		return
	}
	response.RespondOK(c, universities)
}

func (h *StatsHandler) Overview(c *gin.Context) {
	stats, err := h.stats.Overview(c.Request.Context())
	if err != nil {
		h.log.Error("Overview failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "stats_failed", err)
		return
	}
	response.RespondOK(c, stats)
}
