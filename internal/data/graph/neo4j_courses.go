package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/coursekg/coursekg-backend/internal/domain"
	pkgerrors "github.com/coursekg/coursekg-backend/internal/pkg/errors"
	"github.com/coursekg/coursekg-backend/internal/platform/ctxutil"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
	"github.com/coursekg/coursekg-backend/internal/platform/neo4jdb"
)

// CourseStore is the Neo4j-backed implementation of Store, VectorSearch and
// StatsReader over the course knowledge graph.
type CourseStore struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewCourseStore(client *neo4jdb.Client, log *logger.Logger) (*CourseStore, error) {
	if client == nil || client.Driver == nil {
		return nil, fmt.Errorf("course store: neo4j client required")
	}
	if log == nil {
		return nil, fmt.Errorf("course store: logger required")
	}
	return &CourseStore{
		client: client,
		log:    log.With("store", "CourseStore"),
	}, nil
}

const courseReturnClause = `
RETURN c, u.name AS university, d.level AS difficulty,
       collect(DISTINCT s.name) AS skills`

func (cs *CourseStore) CourseByID(ctx context.Context, id string) (*domain.Course, error) {
	records, err := cs.read(ctx, `
MATCH (c:Course {id: $course_id})
OPTIONAL MATCH (c)-[:OFFERED_BY]->(u:University)
OPTIONAL MATCH (c)-[:HAS_DIFFICULTY]->(d:DifficultyLevel)
OPTIONAL MATCH (c)-[:TEACHES]->(s:Skill)`+courseReturnClause,
		map[string]any{"course_id": id})
	if err != nil {
		return nil, fmt.Errorf("course by id: %w", err)
	}
	if len(records) == 0 {
		return nil, pkgerrors.ErrNotFound
	}
	course := courseFromRecord(records[0])
	return &course, nil
}

func (cs *CourseStore) AllCourses(ctx context.Context, skip, limit int) ([]domain.Course, error) {
	records, err := cs.read(ctx, `
MATCH (c:Course)
OPTIONAL MATCH (c)-[:OFFERED_BY]->(u:University)
OPTIONAL MATCH (c)-[:HAS_DIFFICULTY]->(d:DifficultyLevel)
OPTIONAL MATCH (c)-[:TEACHES]->(s:Skill)`+courseReturnClause+`
ORDER BY c.rating DESC
SKIP $skip
LIMIT $limit`,
		map[string]any{"skip": skip, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("all courses: %w", err)
	}
	return coursesFromRecords(records), nil
}

func (cs *CourseStore) CoursesBySkillName(ctx context.Context, skillName string, limit int) ([]domain.Course, error) {
	records, err := cs.read(ctx, `
MATCH (c:Course)-[:TEACHES]->(match:Skill)
WHERE match.name CONTAINS $skill_name
OPTIONAL MATCH (c)-[:OFFERED_BY]->(u:University)
OPTIONAL MATCH (c)-[:HAS_DIFFICULTY]->(d:DifficultyLevel)
OPTIONAL MATCH (c)-[:TEACHES]->(s:Skill)`+courseReturnClause+`
ORDER BY c.rating DESC
LIMIT $limit`,
		map[string]any{"skill_name": skillName, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("courses by skill: %w", err)
	}
	return coursesFromRecords(records), nil
}

func (cs *CourseStore) SearchCourses(ctx context.Context, query string, filter CourseFilter) ([]domain.Course, error) {
	cypher := `
CALL db.index.fulltext.queryNodes('courseSearch', $query)
YIELD node AS c, score
OPTIONAL MATCH (c)-[:OFFERED_BY]->(u:University)
OPTIONAL MATCH (c)-[:HAS_DIFFICULTY]->(d:DifficultyLevel)
OPTIONAL MATCH (c)-[:TEACHES]->(s:Skill)`

	var where []string
	params := map[string]any{
		// Fuzzy matching on the full-text index.
		"query": query + "~",
		"limit": filter.Limit,
	}
	if filter.Difficulty != "" {
		where = append(where, "d.level = $difficulty")
		params["difficulty"] = filter.Difficulty
	}
	if filter.MinRating > 0 {
		where = append(where, "c.rating >= $min_rating")
		params["min_rating"] = filter.MinRating
	}
	if len(filter.Skills) > 0 {
		where = append(where, "ANY(skill IN $skills WHERE (c)-[:TEACHES]->(:Skill {name: skill}))")
		params["skills"] = filter.Skills
	}
	if len(where) > 0 {
		cypher += "\nWHERE " + strings.Join(where, " AND ")
	}
	cypher += courseReturnClause + `, score
ORDER BY score DESC, c.rating DESC
LIMIT $limit`

	records, err := cs.read(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}
	return coursesFromRecords(records), nil
}

func (cs *CourseStore) CoursesTeaching(ctx context.Context, targetSkill string, limit int) ([]domain.Course, error) {
	records, err := cs.read(ctx, `
MATCH (c:Course)-[:TEACHES]->(target:Skill {name: $target_skill})
MATCH (c)-[:HAS_DIFFICULTY]->(d:DifficultyLevel)
OPTIONAL MATCH (c)-[:OFFERED_BY]->(u:University)
OPTIONAL MATCH (c)-[:TEACHES]->(s:Skill)`+courseReturnClause+`, d.order AS diff_order
ORDER BY d.order ASC, c.rating DESC
LIMIT $limit`,
		map[string]any{"target_skill": targetSkill, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("courses teaching: %w", err)
	}
	return coursesFromRecords(records), nil
}

func (cs *CourseStore) SharedSkillCandidates(ctx context.Context, courseID string, limit int) ([]CandidateCourse, error) {
	records, err := cs.read(ctx, `
MATCH (c:Course {id: $course_id})-[:TEACHES]->(shared:Skill)
MATCH (similar:Course)-[:TEACHES]->(shared)
WHERE similar.id <> $course_id
WITH similar, COUNT(DISTINCT shared) AS common_skills
OPTIONAL MATCH (similar)-[:OFFERED_BY]->(u:University)
OPTIONAL MATCH (similar)-[:HAS_DIFFICULTY]->(d:DifficultyLevel)
OPTIONAL MATCH (similar)-[:TEACHES]->(s:Skill)
WITH similar AS c, common_skills, u, d, collect(DISTINCT s.name) AS skills
RETURN c, u.name AS university, d.level AS difficulty, skills, common_skills
ORDER BY common_skills DESC, c.rating DESC
LIMIT $limit`,
		map[string]any{"course_id": courseID, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("shared skill candidates: %w", err)
	}

	out := make([]CandidateCourse, 0, len(records))
	for _, record := range records {
		shared, _ := record.Get("common_skills")
		out = append(out, CandidateCourse{
			Course:       courseFromRecord(record),
			SharedSkills: int(asInt64(shared)),
		})
	}
	return out, nil
}

func (cs *CourseStore) ShortestPath(ctx context.Context, startCourseID, targetSkill string, maxHops, maxCourses int) ([]domain.Course, error) {
	if maxHops <= 0 {
		maxHops = 6
	}
	// Variable-length bounds cannot be parameterized, so the hop bound is
	// interpolated; it is always a small server-side integer.
	cypher := fmt.Sprintf(`
MATCH (start:Course {id: $start_course_id})
MATCH (target:Skill {name: $target_skill})
MATCH path = shortestPath((start)-[:TEACHES|SIMILAR_TO*1..%d]-(c:Course)-[:TEACHES]->(target))
WITH nodes(path) AS pathNodes
UNWIND pathNodes AS node
WITH node WHERE node:Course
OPTIONAL MATCH (node)-[:OFFERED_BY]->(u:University)
OPTIONAL MATCH (node)-[:HAS_DIFFICULTY]->(d:DifficultyLevel)
OPTIONAL MATCH (node)-[:TEACHES]->(s:Skill)
WITH node AS c, u, d, collect(DISTINCT s.name) AS skills
RETURN DISTINCT c, u.name AS university, d.level AS difficulty, skills
LIMIT $max_courses`, maxHops)

	records, err := cs.read(ctx, cypher, map[string]any{
		"start_course_id": startCourseID,
		"target_skill":    targetSkill,
		"max_courses":     maxCourses,
	})
	if err != nil {
		return nil, fmt.Errorf("shortest path: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return coursesFromRecords(records), nil
}

func (cs *CourseStore) PopularCourses(ctx context.Context, limit int) ([]domain.Course, error) {
	records, err := cs.read(ctx, `
MATCH (c:Course)
OPTIONAL MATCH (c)-[:TEACHES]->(taught:Skill)
WITH c, COUNT(taught) AS skill_count
OPTIONAL MATCH (c)-[:OFFERED_BY]->(u:University)
OPTIONAL MATCH (c)-[:HAS_DIFFICULTY]->(d:DifficultyLevel)
OPTIONAL MATCH (c)-[:TEACHES]->(s:Skill)`+courseReturnClause+`, skill_count
ORDER BY c.rating DESC, skill_count DESC
LIMIT $limit`,
		map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("popular courses: %w", err)
	}
	return coursesFromRecords(records), nil
}

func (cs *CourseStore) CoursesBySkills(ctx context.Context, skills []string, difficulty string, limit int) ([]domain.Course, error) {
	cypher := `
MATCH (c:Course)-[:TEACHES]->(wanted:Skill)
WHERE wanted.name IN $skills
`
	params := map[string]any{"skills": skills, "limit": limit}
	if difficulty != "" {
		cypher += `MATCH (c)-[:HAS_DIFFICULTY]->(:DifficultyLevel {level: $difficulty})
`
		params["difficulty"] = difficulty
	}
	cypher += `WITH c, COUNT(DISTINCT wanted) AS skill_matches
OPTIONAL MATCH (c)-[:OFFERED_BY]->(u:University)
OPTIONAL MATCH (c)-[:HAS_DIFFICULTY]->(d:DifficultyLevel)
OPTIONAL MATCH (c)-[:TEACHES]->(s:Skill)` + courseReturnClause + `, skill_matches
ORDER BY skill_matches DESC, c.rating DESC
LIMIT $limit`

	records, err := cs.read(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("courses by skills: %w", err)
	}
	return coursesFromRecords(records), nil
}

func (cs *CourseStore) read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	ctx = ctxutil.Default(ctx)
	session := cs.client.ReadSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	records, _ := result.([]*neo4j.Record)
	return records, nil
}

func courseFromRecord(record *neo4j.Record) domain.Course {
	course := domain.Course{}

	if raw, ok := record.Get("c"); ok {
		if node, ok := raw.(neo4j.Node); ok {
			course.ID = asString(node.Props["id"])
			course.Name = asString(node.Props["name"])
			course.Description = asString(node.Props["description"])
			course.URL = asString(node.Props["url"])
			course.Rating = asFloat64(node.Props["rating"])
		}
	}
	if raw, ok := record.Get("university"); ok {
		course.University = asString(raw)
	}
	if raw, ok := record.Get("difficulty"); ok {
		course.Difficulty = asString(raw)
	}
	if raw, ok := record.Get("skills"); ok {
		course.Skills = asStringSlice(raw)
	}
	return course
}

func coursesFromRecords(records []*neo4j.Record) []domain.Course {
	out := make([]domain.Course, 0, len(records))
	for _, record := range records {
		out = append(out, courseFromRecord(record))
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat64(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	default:
		return 0
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case float64:
		return int64(t)
	default:
		return 0
	}
}

func asStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
