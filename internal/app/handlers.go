package app

import (
	httpx "github.com/coursekg/coursekg-backend/internal/http"
	"github.com/coursekg/coursekg-backend/internal/http/handlers"
	"github.com/coursekg/coursekg-backend/internal/observability"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

func wireRouterConfig(log *logger.Logger, svcs Services) httpx.RouterConfig {
	return httpx.RouterConfig{
		Log:           log,
		EnableTracing: observability.Enabled(),

		HealthHandler:         handlers.NewHealthHandler(),
		CourseHandler:         handlers.NewCourseHandler(log, svcs.Courses),
		RecommendationHandler: handlers.NewRecommendationHandler(log, svcs.Recommendations, svcs.Paths),
		SearchHandler:         handlers.NewSearchHandler(log, svcs.AISearch),
		LearnerHandler:        handlers.NewLearnerHandler(log, svcs.Learners),
		StatsHandler:          handlers.NewStatsHandler(log, svcs.Stats),
	}
}
