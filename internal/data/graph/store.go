package graph

import (
	"context"

	"github.com/coursekg/coursekg-backend/internal/domain"
)

// CandidateCourse pairs a course with the number of skills it shares with a
// target course, as counted by the graph.
type CandidateCourse struct {
	Course       domain.Course
	SharedSkills int
}

// CourseFilter narrows a full-text course search.
type CourseFilter struct {
	Skills     []string
	Difficulty string
	MinRating  float64
	Limit      int
}

// Store is the narrow read surface the recommendation core consumes. The
// query language behind it is opaque; tests run against an in-memory fake.
type Store interface {
	CourseByID(ctx context.Context, id string) (*domain.Course, error)
	AllCourses(ctx context.Context, skip, limit int) ([]domain.Course, error)
	CoursesBySkillName(ctx context.Context, skillName string, limit int) ([]domain.Course, error)
	SearchCourses(ctx context.Context, query string, filter CourseFilter) ([]domain.Course, error)

	// CoursesTeaching returns courses that teach targetSkill, easiest first,
	// higher rated first within a difficulty rank.
	CoursesTeaching(ctx context.Context, targetSkill string, limit int) ([]domain.Course, error)
	// SharedSkillCandidates returns courses sharing at least one skill with
	// courseID, most shared skills first, then by descending rating.
	SharedSkillCandidates(ctx context.Context, courseID string, limit int) ([]CandidateCourse, error)
	// ShortestPath returns the courses along the shortest TEACHES|SIMILAR_TO
	// path from startCourseID to any course teaching targetSkill, bounded to
	// maxHops edges. A nil slice means no path exists.
	ShortestPath(ctx context.Context, startCourseID, targetSkill string, maxHops, maxCourses int) ([]domain.Course, error)
	// PopularCourses orders by rating, then by breadth of skills taught.
	PopularCourses(ctx context.Context, limit int) ([]domain.Course, error)
	CoursesBySkills(ctx context.Context, skills []string, difficulty string, limit int) ([]domain.Course, error)
}

// VectorSearch returns the top-K semantically nearest courses for a query
// embedding, with cosine similarity scores in [0,1].
type VectorSearch interface {
	SearchByEmbedding(ctx context.Context, embedding []float32, limit int) ([]domain.SearchResult, error)
}

// StatsReader serves the aggregate views over the graph.
type StatsReader interface {
	SkillsByPopularity(ctx context.Context, limit int) ([]domain.Skill, error)
	RelatedSkills(ctx context.Context, skillName string, limit int) ([]string, error)
	Universities(ctx context.Context, limit int) ([]domain.University, error)
	Stats(ctx context.Context) (*domain.GraphStats, error)
}
