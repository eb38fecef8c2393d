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

type RecommendationHandler struct {
	log             *logger.Logger
	recommendations *services.RecommendationService
	paths           *services.LearningPathService
}

func NewRecommendationHandler(log *logger.Logger, recommendations *services.RecommendationService, paths *services.LearningPathService) *RecommendationHandler {
	return &RecommendationHandler{
		log:             log.With("handler", "RecommendationHandler"),
		recommendations: recommendations,
		paths:           paths,
	}
}

func (h *RecommendationHandler) SimilarCourses(c *gin.Context) {
	courseID := c.Param("id")
	limit := queryInt(c, "limit", 10)

	courses, err := h.recommendations.SimilarCourses(c.Request.Context(), courseID, limit)
	if err != nil {
		h.log.Error("SimilarCourses failed", "course_id", courseID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "similar_courses_failed", err)
		return
	}
	response.RespondOK(c, courses)
}

type recommendRequest struct {
	CourseID   string   `json:"course_id"`
	Skills     []string `json:"skills"`
	Difficulty string   `json:"difficulty"`
	Limit      int      `json:"limit"`
}

func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	courses, err := h.recommendations.Recommend(c.Request.Context(), req.CourseID, req.Skills, req.Difficulty, req.Limit)
	if err != nil {
		h.log.Error("Recommend failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "recommendations_failed", err)
		return
	}
	response.RespondOK(c, courses)
}

func (h *RecommendationHandler) PopularCourses(c *gin.Context) {
	limit := queryInt(c, "limit", 10)

	courses, err := h.recommendations.PopularCourses(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("PopularCourses failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "popular_courses_failed", err)
		return
	}
	response.RespondOK(c, courses)
}

type learningPathRequest struct {
	TargetSkill   string `json:"target_skill"`
	StartCourseID string `json:"start_course_id"`
	MaxCourses    int    `json:"max_courses"`
}

func (h *RecommendationHandler) LearningPath(c *gin.Context) {
	var req learningPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	courses, err := h.paths.PathToSkill(c.Request.Context(), req.TargetSkill, req.StartCourseID, req.MaxCourses)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		h.log.Error("LearningPath failed", "target_skill", req.TargetSkill, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "learning_path_failed", err)
		return
	}
	response.RespondOK(c, courses)
}
