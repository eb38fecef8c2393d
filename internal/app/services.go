package app

import (
	"fmt"

	"github.com/coursekg/coursekg-backend/internal/data/graph"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
	"github.com/coursekg/coursekg-backend/internal/services"
)

type Services struct {
	Store *graph.CourseStore

	Courses         *services.CourseService
	Recommendations *services.RecommendationService
	Paths           *services.LearningPathService
	Search          *services.SearchService
	AISearch        *services.AISearchService
	Learners        *services.LearnerProfileService
	Stats           *services.StatsService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients) (Services, error) {
	store, err := graph.NewCourseStore(clients.Neo4j, log)
	if err != nil {
		return Services{}, fmt.Errorf("init course store: %w", err)
	}

	registry, err := services.NewDomainRegistry()
	if err != nil {
		return Services{}, fmt.Errorf("init domain registry: %w", err)
	}

	courses, err := services.NewCourseService(store, log)
	if err != nil {
		return Services{}, err
	}
	recommendations, err := services.NewRecommendationService(store, log)
	if err != nil {
		return Services{}, err
	}
	paths, err := services.NewLearningPathService(store, log)
	if err != nil {
		return Services{}, err
	}
	search, err := services.NewSearchService(clients.Embed, store, log)
	if err != nil {
		return Services{}, err
	}
	crossDomain, err := services.NewCrossDomainService(registry, cfg.CrossDomain, log)
	if err != nil {
		return Services{}, err
	}
	aiSearch, err := services.NewAISearchService(search, paths, crossDomain, log)
	if err != nil {
		return Services{}, err
	}

	var models services.ModelServer
	if clients.MLServe != nil {
		models = clients.MLServe
	}
	learners, err := services.NewLearnerProfileService(models, store, log)
	if err != nil {
		return Services{}, err
	}

	stats, err := services.NewStatsService(store, clients.Cache, log)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Store:           store,
		Courses:         courses,
		Recommendations: recommendations,
		Paths:           paths,
		Search:          search,
		AISearch:        aiSearch,
		Learners:        learners,
		Stats:           stats,
	}, nil
}
