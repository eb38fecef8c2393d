package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coursekg/coursekg-backend/internal/data/graph"
	"github.com/coursekg/coursekg-backend/internal/http/response"
	pkgerrors "github.com/coursekg/coursekg-backend/internal/pkg/errors"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
	"github.com/coursekg/coursekg-backend/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService *services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 20)

	courses, err := h.courseService.ListCourses(c.Request.Context(), skip, limit)
	if err != nil {
		h.log.Error("ListCourses failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "list_courses_failed", err)
		return
	}
	response.RespondOK(c, courses)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID := c.Param("id")

	detail, err := h.courseService.CourseDetail(c.Request.Context(), courseID, 5)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		h.log.Error("GetCourse failed", "course_id", courseID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "get_course_failed", err)
		return
	}
	response.RespondOK(c, detail)
}

type searchCoursesRequest struct {
	Query      string   `json:"query"`
	Skills     []string `json:"skills"`
	Difficulty string   `json:"difficulty"`
	MinRating  float64  `json:"min_rating"`
	Limit      int      `json:"limit"`
}

func (h *CourseHandler) SearchCourses(c *gin.Context) {
	var req searchCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	courses, err := h.courseService.Search(c.Request.Context(), req.Query, graph.CourseFilter{
		Skills:     req.Skills,
		Difficulty: req.Difficulty,
		MinRating:  req.MinRating,
		Limit:      req.Limit,
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		h.log.Error("SearchCourses failed", "query", req.Query, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "search_courses_failed", err)
		return
	}
	response.RespondOK(c, courses)
}

func (h *CourseHandler) CoursesBySkill(c *gin.Context) {
	skillName := c.Param("skill")
	limit := queryInt(c, "limit", 10)

	courses, err := h.courseService.CoursesBySkill(c.Request.Context(), skillName, limit)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		h.log.Error("CoursesBySkill failed", "skill", skillName, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "courses_by_skill_failed", err)
		return
	}
	response.RespondOK(c, courses)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
