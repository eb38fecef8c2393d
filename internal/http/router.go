package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/coursekg/coursekg-backend/internal/http/handlers"
	httpMW "github.com/coursekg/coursekg-backend/internal/http/middleware"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log           *logger.Logger
	EnableTracing bool

	HealthHandler         *httpH.HealthHandler
	CourseHandler         *httpH.CourseHandler
	RecommendationHandler *httpH.RecommendationHandler
	SearchHandler         *httpH.SearchHandler
	LearnerHandler        *httpH.LearnerHandler
	StatsHandler          *httpH.StatsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())
	if cfg.EnableTracing {
		r.Use(otelgin.Middleware("coursekg-backend"))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Courses
		if cfg.CourseHandler != nil {
			api.GET("/courses", cfg.CourseHandler.ListCourses)
			api.GET("/courses/:id", cfg.CourseHandler.GetCourse)
			api.POST("/courses/search", cfg.CourseHandler.SearchCourses)
			api.GET("/courses/by-skill/:skill", cfg.CourseHandler.CoursesBySkill)
		}

		// Recommendations
		if cfg.RecommendationHandler != nil {
			api.GET("/recommendations/similar/:id", cfg.RecommendationHandler.SimilarCourses)
			api.GET("/recommendations/popular", cfg.RecommendationHandler.PopularCourses)
			api.POST("/recommendations", cfg.RecommendationHandler.Recommend)
			api.POST("/learning-path", cfg.RecommendationHandler.LearningPath)
		}

		// Semantic search
		if cfg.SearchHandler != nil {
			api.POST("/ai-search", cfg.SearchHandler.AISearch)
		}

		// Learners
		if cfg.LearnerHandler != nil {
			api.POST("/learners/analyze", cfg.LearnerHandler.Analyze)
			api.POST("/learners/analyze-batch", cfg.LearnerHandler.AnalyzeBatch)
			api.POST("/learners/classify-profile", cfg.LearnerHandler.ClassifyProfile)
			api.POST("/learners/predict-outcome", cfg.LearnerHandler.PredictOutcome)
			api.POST("/learners/similar", cfg.LearnerHandler.SimilarStudents)
			api.POST("/learners/recommend-courses", cfg.LearnerHandler.RecommendCourses)
			api.GET("/learners/model-status", cfg.LearnerHandler.ModelStatus)
		}

		// Skills, universities, stats
		if cfg.StatsHandler != nil {
			api.GET("/skills", cfg.StatsHandler.ListSkills)
			api.GET("/skills/:skill/related", cfg.StatsHandler.RelatedSkills)
			api.GET("/universities", cfg.StatsHandler.ListUniversities)
			api.GET("/stats", cfg.StatsHandler.Overview)
		}
	}

	return r
}
