package services

import (
	"context"

	"github.com/coursekg/coursekg-backend/internal/data/graph"
	"github.com/coursekg/coursekg-backend/internal/domain"
	pkgerrors "github.com/coursekg/coursekg-backend/internal/pkg/errors"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

// fakeStore satisfies graph.Store from in-memory data. Function fields
// override individual queries per test.
type fakeStore struct {
	courses []domain.Course

	shortestPathFn    func(ctx context.Context, startCourseID, targetSkill string, maxHops, maxCourses int) ([]domain.Course, error)
	coursesTeachingFn func(ctx context.Context, targetSkill string, limit int) ([]domain.Course, error)
	popularFn         func(ctx context.Context, limit int) ([]domain.Course, error)
}

func (f *fakeStore) CourseByID(ctx context.Context, id string) (*domain.Course, error) {
	for _, c := range f.courses {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, pkgerrors.ErrNotFound
}

func (f *fakeStore) AllCourses(ctx context.Context, skip, limit int) ([]domain.Course, error) {
	if skip >= len(f.courses) {
		return nil, nil
	}
	end := skip + limit
	if end > len(f.courses) {
		end = len(f.courses)
	}
	return f.courses[skip:end], nil
}

func (f *fakeStore) CoursesBySkillName(ctx context.Context, skillName string, limit int) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range f.courses {
		for _, s := range c.Skills {
			if s == skillName {
				out = append(out, c)
				break
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) SearchCourses(ctx context.Context, query string, filter graph.CourseFilter) ([]domain.Course, error) {
	return f.courses, nil
}

func (f *fakeStore) CoursesTeaching(ctx context.Context, targetSkill string, limit int) ([]domain.Course, error) {
	if f.coursesTeachingFn != nil {
		return f.coursesTeachingFn(ctx, targetSkill, limit)
	}
	return f.CoursesBySkillName(ctx, targetSkill, limit)
}

func (f *fakeStore) SharedSkillCandidates(ctx context.Context, courseID string, limit int) ([]graph.CandidateCourse, error) {
	target, err := f.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	targetSkills := make(map[string]struct{}, len(target.Skills))
	for _, s := range target.Skills {
		targetSkills[s] = struct{}{}
	}

	var out []graph.CandidateCourse
	for _, c := range f.courses {
		if c.ID == courseID {
			continue
		}
		shared := 0
		for _, s := range c.Skills {
			if _, ok := targetSkills[s]; ok {
				shared++
			}
		}
		if shared > 0 {
			out = append(out, graph.CandidateCourse{Course: c, SharedSkills: shared})
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) ShortestPath(ctx context.Context, startCourseID, targetSkill string, maxHops, maxCourses int) ([]domain.Course, error) {
	if f.shortestPathFn != nil {
		return f.shortestPathFn(ctx, startCourseID, targetSkill, maxHops, maxCourses)
	}
	return nil, nil
}

func (f *fakeStore) PopularCourses(ctx context.Context, limit int) ([]domain.Course, error) {
	if f.popularFn != nil {
		return f.popularFn(ctx, limit)
	}
	out := f.courses
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) CoursesBySkills(ctx context.Context, skills []string, difficulty string, limit int) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range f.courses {
		if difficulty != "" && c.Difficulty != difficulty {
			continue
		}
		for _, want := range skills {
			matched := false
			for _, s := range c.Skills {
				if s == want {
					out = append(out, c)
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func testLogger(t interface{ Fatalf(string, ...any) }) *logger.Logger {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}
