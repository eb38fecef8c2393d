package services

import (
	"context"
	"fmt"

	"github.com/coursekg/coursekg-backend/internal/data/graph"
	"github.com/coursekg/coursekg-backend/internal/domain"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

// RecommendationService serves graph-backed course recommendations.
type RecommendationService struct {
	store graph.Store
	log   *logger.Logger
}

func NewRecommendationService(store graph.Store, log *logger.Logger) (*RecommendationService, error) {
	if store == nil {
		return nil, fmt.Errorf("recommendation service: store required")
	}
	if log == nil {
		return nil, fmt.Errorf("recommendation service: logger required")
	}
	return &RecommendationService{
		store: store,
		log:   log.With("service", "RecommendationService"),
	}, nil
}

// SimilarCourses ranks courses sharing skills with the given course.
func (s *RecommendationService) SimilarCourses(ctx context.Context, courseID string, limit int) ([]domain.Course, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	candidates, err := s.store.SharedSkillCandidates(ctx, courseID, limit)
	if err != nil {
		return nil, fmt.Errorf("similar courses %s: %w", courseID, err)
	}
	return RankSimilar(candidates), nil
}

// CoursesForSkills recommends courses teaching any of the wanted skills, the
// broadest skill match first.
func (s *RecommendationService) CoursesForSkills(ctx context.Context, skills []string, difficulty string, limit int) ([]domain.Course, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	courses, err := s.store.CoursesBySkills(ctx, skills, difficulty, limit)
	if err != nil {
		return nil, fmt.Errorf("courses for skills: %w", err)
	}
	return courses, nil
}

// PopularCourses ranks the catalog by rating and skill breadth.
func (s *RecommendationService) PopularCourses(ctx context.Context, limit int) ([]domain.Course, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	courses, err := s.store.PopularCourses(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("popular courses: %w", err)
	}
	return RankPopular(courses), nil
}

// Recommend dispatches on the request shape: a course id gives similar
// courses, a skill list gives skill matches, anything else gives popular
// courses.
func (s *RecommendationService) Recommend(ctx context.Context, courseID string, skills []string, difficulty string, limit int) ([]domain.Course, error) {
	switch {
	case courseID != "":
		return s.SimilarCourses(ctx, courseID, limit)
	case len(skills) > 0:
		return s.CoursesForSkills(ctx, skills, difficulty, limit)
	default:
		return s.PopularCourses(ctx, limit)
	}
}
