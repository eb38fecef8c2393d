package services

import (
	"context"
	"fmt"

	"github.com/coursekg/coursekg-backend/internal/data/graph"
	"github.com/coursekg/coursekg-backend/internal/domain"
	pkgerrors "github.com/coursekg/coursekg-backend/internal/pkg/errors"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

// LearningPathService groups ranked search results into difficulty tiers and
// generates skill-targeted course progressions from the graph.
type LearningPathService struct {
	store graph.Store
	log   *logger.Logger
}

func NewLearningPathService(store graph.Store, log *logger.Logger) (*LearningPathService, error) {
	if store == nil {
		return nil, fmt.Errorf("learning path service: store required")
	}
	if log == nil {
		return nil, fmt.Errorf("learning path service: logger required")
	}
	return &LearningPathService{
		store: store,
		log:   log.With("service", "LearningPathService"),
	}, nil
}

// Build groups search results by difficulty tier, preserving the input
// ranking inside each tier. Unrecognized difficulties land in intermediate.
func (s *LearningPathService) Build(results []domain.SearchResult) domain.LearningPath {
	path := domain.LearningPath{
		Beginner:     []domain.SearchResult{},
		Intermediate: []domain.SearchResult{},
		Advanced:     []domain.SearchResult{},
	}

	for _, r := range results {
		switch domain.TierForDifficulty(r.Difficulty) {
		case domain.TierBeginner:
			path.Beginner = append(path.Beginner, r)
		case domain.TierAdvanced:
			path.Advanced = append(path.Advanced, r)
		default:
			path.Intermediate = append(path.Intermediate, r)
		}
	}

	s.log.Info("learning path built",
		"beginner", len(path.Beginner),
		"intermediate", len(path.Intermediate),
		"advanced", len(path.Advanced))
	return path
}

// Summary counts the tiers of a built path.
func (s *LearningPathService) Summary(path domain.LearningPath) domain.LearningPathSummary {
	return domain.LearningPathSummary{
		TotalCourses:      len(path.Beginner) + len(path.Intermediate) + len(path.Advanced),
		BeginnerCount:     len(path.Beginner),
		IntermediateCount: len(path.Intermediate),
		AdvancedCount:     len(path.Advanced),
	}
}

// CoreCourses picks the representative slice of a path used for cross-domain
// analysis: the top three beginner and top two intermediate results.
func (s *LearningPathService) CoreCourses(path domain.LearningPath) []domain.SearchResult {
	core := make([]domain.SearchResult, 0, 5)
	core = append(core, headResults(path.Beginner, 3)...)
	core = append(core, headResults(path.Intermediate, 2)...)
	return core
}

// PathToSkill generates an ordered course progression toward targetSkill.
// With a start course it walks the shortest graph path from there; otherwise
// it returns courses teaching the skill, easiest first.
func (s *LearningPathService) PathToSkill(ctx context.Context, targetSkill, startCourseID string, maxCourses int) ([]domain.Course, error) {
	if targetSkill == "" {
		return nil, fmt.Errorf("learning path: target skill required: %w", pkgerrors.ErrInvalidArgument)
	}
	if maxCourses <= 0 {
		maxCourses = 5
	}

	if startCourseID != "" {
		courses, err := s.store.ShortestPath(ctx, startCourseID, targetSkill, 6, maxCourses)
		if err != nil {
			return nil, fmt.Errorf("learning path via graph: %w", err)
		}
		if len(courses) > 0 {
			return courses, nil
		}
		s.log.Info("no graph path found, falling back to difficulty progression",
			"start_course_id", startCourseID,
			"target_skill", targetSkill)
	}

	courses, err := s.store.CoursesTeaching(ctx, targetSkill, maxCourses)
	if err != nil {
		return nil, fmt.Errorf("learning path by difficulty: %w", err)
	}
	return courses, nil
}

func headResults(results []domain.SearchResult, n int) []domain.SearchResult {
	if len(results) < n {
		n = len(results)
	}
	return results[:n]
}
