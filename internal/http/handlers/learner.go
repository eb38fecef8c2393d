package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursekg/coursekg-backend/internal/domain"
	"github.com/coursekg/coursekg-backend/internal/http/response"
	pkgerrors "github.com/coursekg/coursekg-backend/internal/pkg/errors"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
	"github.com/coursekg/coursekg-backend/internal/services"
)

type LearnerHandler struct {
	log      *logger.Logger
	learners *services.LearnerProfileService
}

func NewLearnerHandler(log *logger.Logger, learners *services.LearnerProfileService) *LearnerHandler {
	return &LearnerHandler{
		log:      log.With("handler", "LearnerHandler"),
		learners: learners,
	}
}

func (h *LearnerHandler) Analyze(c *gin.Context) {
	var input domain.StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	response.RespondOK(c, h.learners.Analyze(c.Request.Context(), input))
}

func (h *LearnerHandler) ClassifyProfile(c *gin.Context) {
	var input domain.StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	response.RespondOK(c, h.learners.ClassifyProfile(c.Request.Context(), input))
}

func (h *LearnerHandler) PredictOutcome(c *gin.Context) {
	var input domain.StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	response.RespondOK(c, h.learners.PredictOutcome(c.Request.Context(), input))
}

type analyzeBatchRequest struct {
	Students []domain.StudentInput `json:"students"`
}

func (h *LearnerHandler) AnalyzeBatch(c *gin.Context) {
	var req analyzeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.learners.AnalyzeBatch(c.Request.Context(), req.Students)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		h.log.Error("AnalyzeBatch failed", "students", len(req.Students), "error", err)
		response.RespondError(c, http.StatusInternalServerError, "analyze_batch_failed", err)
		return
	}
	response.RespondOK(c, result)
}

type similarStudentsRequest struct {
	Student domain.StudentInput   `json:"student"`
	Cohort  []domain.StudentInput `json:"cohort"`
	TopK    int                   `json:"top_k"`
}

func (h *LearnerHandler) SimilarStudents(c *gin.Context) {
	var req similarStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	response.RespondOK(c, gin.H{
		"similar_students": h.learners.SimilarStudents(c.Request.Context(), req.Student, req.Cohort, req.TopK),
	})
}

type recommendCoursesRequest struct {
	StudentData         domain.StudentInput `json:"student_data"`
	PreferredDifficulty string              `json:"preferred_difficulty"`
	MaxRecommendations  int                 `json:"max_recommendations"`
}

func (h *LearnerHandler) RecommendCourses(c *gin.Context) {
	var req recommendCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.learners.RecommendCourses(c.Request.Context(), req.StudentData, req.PreferredDifficulty, req.MaxRecommendations)
	if err != nil {
		h.log.Error("RecommendCourses failed", "student_id", req.StudentData.StudentID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "recommend_courses_failed", err)
		return
	}
	response.RespondOK(c, result)
}

func (h *LearnerHandler) ModelStatus(c *gin.Context) {
	response.RespondOK(c, h.learners.ModelStatus(c.Request.Context()))
}
