package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/coursekg/coursekg-backend/internal/data/graph"
	"github.com/coursekg/coursekg-backend/internal/domain"
	pkgerrors "github.com/coursekg/coursekg-backend/internal/pkg/errors"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

// CourseService serves course catalog reads.
type CourseService struct {
	store graph.Store
	log   *logger.Logger
}

func NewCourseService(store graph.Store, log *logger.Logger) (*CourseService, error) {
	if store == nil {
		return nil, fmt.Errorf("course service: store required")
	}
	if log == nil {
		return nil, fmt.Errorf("course service: logger required")
	}
	return &CourseService{
		store: store,
		log:   log.With("service", "CourseService"),
	}, nil
}

// CourseDetail returns one course plus its most similar peers.
func (s *CourseService) CourseDetail(ctx context.Context, courseID string, similarLimit int) (*domain.CourseDetail, error) {
	if courseID == "" {
		return nil, fmt.Errorf("course detail: course id required: %w", pkgerrors.ErrInvalidArgument)
	}
	if similarLimit <= 0 {
		similarLimit = 5
	}

	course, err := s.store.CourseByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("course detail %s: %w", courseID, err)
	}

	candidates, err := s.store.SharedSkillCandidates(ctx, courseID, similarLimit)
	if err != nil {
		// Similar courses are an enrichment; the detail itself still serves.
		s.log.Warn("similar courses lookup failed", "course_id", courseID, "error", err)
		candidates = nil
	}

	return &domain.CourseDetail{
		Course:         *course,
		SimilarCourses: RankSimilar(candidates),
	}, nil
}

// ListCourses pages through the catalog, highest rated first.
func (s *CourseService) ListCourses(ctx context.Context, skip, limit int) ([]domain.Course, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	courses, err := s.store.AllCourses(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Search runs the filtered full-text catalog search.
func (s *CourseService) Search(ctx context.Context, query string, filter graph.CourseFilter) ([]domain.Course, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("course search: query required: %w", pkgerrors.ErrInvalidArgument)
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	courses, err := s.store.SearchCourses(ctx, query, filter)
	if err != nil {
		return nil, fmt.Errorf("course search: %w", err)
	}
	return courses, nil
}

// CoursesBySkill lists courses teaching a named skill.
func (s *CourseService) CoursesBySkill(ctx context.Context, skillName string, limit int) ([]domain.Course, error) {
	skillName = strings.TrimSpace(skillName)
	if skillName == "" {
		return nil, fmt.Errorf("courses by skill: skill name required: %w", pkgerrors.ErrInvalidArgument)
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	courses, err := s.store.CoursesBySkillName(ctx, skillName, limit)
	if err != nil {
		return nil, fmt.Errorf("courses by skill %q: %w", skillName, err)
	}
	return courses, nil
}
