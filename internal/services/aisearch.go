package services

import (
	"context"
	"fmt"

	"github.com/coursekg/coursekg-backend/internal/domain"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

// AISearchService orchestrates the semantic-search pipeline: vector search,
// learning-path grouping, cross-domain discovery, and the summary.
type AISearchService struct {
	search      *SearchService
	paths       *LearningPathService
	crossDomain *CrossDomainService
	log         *logger.Logger
}

func NewAISearchService(search *SearchService, paths *LearningPathService, crossDomain *CrossDomainService, log *logger.Logger) (*AISearchService, error) {
	if search == nil || paths == nil || crossDomain == nil {
		return nil, fmt.Errorf("ai search service: all collaborators required")
	}
	if log == nil {
		return nil, fmt.Errorf("ai search service: logger required")
	}
	return &AISearchService{
		search:      search,
		paths:       paths,
		crossDomain: crossDomain,
		log:         log.With("service", "AISearchService"),
	}, nil
}

// Search runs the full pipeline for one query. Cross-domain discovery is an
// enrichment and cannot fail the search; only the semantic search itself can.
func (s *AISearchService) Search(ctx context.Context, query string, limit int) (*domain.AISearchResponse, error) {
	results, err := s.search.SemanticSearch(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ai search: %w", err)
	}

	path := s.paths.Build(results)
	core := s.paths.CoreCourses(path)
	crossDomain := s.crossDomain.Find(core, results)

	summary := s.paths.Summary(path)
	summary.CrossDomainCount = len(crossDomain)

	return &domain.AISearchResponse{
		LearningPath:       path,
		CrossDomainCourses: crossDomain,
		Summary:            summary,
	}, nil
}
