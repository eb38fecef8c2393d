package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/coursekg/coursekg-backend/internal/domain"
	"github.com/coursekg/coursekg-backend/internal/platform/ctxutil"
)

const fulltextIndexName = "courseSearch"

// EnsureSchema creates the uniqueness constraints and the full-text index the
// read queries depend on. Safe to call repeatedly.
func (cs *CourseStore) EnsureSchema(ctx context.Context) error {
	ctx = ctxutil.Default(ctx)
	session := cs.client.WriteSession(ctx)
	defer session.Close(ctx)

	statements := []string{
		"CREATE CONSTRAINT course_id IF NOT EXISTS FOR (c:Course) REQUIRE c.id IS UNIQUE",
		"CREATE CONSTRAINT university_name IF NOT EXISTS FOR (u:University) REQUIRE u.name IS UNIQUE",
		"CREATE CONSTRAINT skill_name IF NOT EXISTS FOR (s:Skill) REQUIRE s.name IS UNIQUE",
		"CREATE CONSTRAINT difficulty_level IF NOT EXISTS FOR (d:DifficultyLevel) REQUIRE d.level IS UNIQUE",
		fmt.Sprintf("CREATE FULLTEXT INDEX %s IF NOT EXISTS FOR (c:Course) ON EACH [c.name, c.description]", fulltextIndexName),
	}
	for _, stmt := range statements {
		res, err := session.Run(ctx, stmt, nil)
		if err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		if _, err := res.Consume(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	cs.log.Info("graph schema ready")
	return nil
}

// ImportCourses upserts courses with their university, difficulty and skill
// relationships in a single batched write per call.
func (cs *CourseStore) ImportCourses(ctx context.Context, courses []domain.Course) error {
	if len(courses) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, map[string]any{
			"id":               c.ID,
			"name":             c.Name,
			"description":      c.Description,
			"url":              c.URL,
			"rating":           c.Rating,
			"university":       c.University,
			"difficulty":       c.Difficulty,
			"difficulty_order": domain.DifficultyOrder(c.Difficulty),
			"skills":           c.Skills,
		})
	}

	ctx = ctxutil.Default(ctx)
	session := cs.client.WriteSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
UNWIND $rows AS row
MERGE (c:Course {id: row.id})
SET c.name = row.name,
    c.description = row.description,
    c.url = row.url,
    c.rating = row.rating
MERGE (u:University {name: row.university})
MERGE (c)-[:OFFERED_BY]->(u)
MERGE (d:DifficultyLevel {level: row.difficulty})
SET d.order = row.difficulty_order
MERGE (c)-[:HAS_DIFFICULTY]->(d)
WITH c, row
UNWIND row.skills AS skill_name
MERGE (s:Skill {name: skill_name})
MERGE (c)-[:TEACHES]->(s)`,
			map[string]any{"rows": rows})
		if err != nil {
			return nil, err
		}
		return nil, consumeResult(ctx, res)
	})
	if err != nil {
		return fmt.Errorf("import courses: %w", err)
	}
	cs.log.Info("imported courses", "count", len(courses))
	return nil
}

// LinkRelatedSkills connects skills that co-occur on at least minShared
// courses with RELATED_TO edges.
func (cs *CourseStore) LinkRelatedSkills(ctx context.Context, minShared int) error {
	if minShared <= 0 {
		minShared = 5
	}
	ctx = ctxutil.Default(ctx)
	session := cs.client.WriteSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (s1:Skill)<-[:TEACHES]-(c:Course)-[:TEACHES]->(s2:Skill)
WHERE s1.name < s2.name
WITH s1, s2, count(c) AS shared
WHERE shared >= $min_shared
MERGE (s1)-[r:RELATED_TO]-(s2)
SET r.strength = shared`,
			map[string]any{"min_shared": minShared})
		if err != nil {
			return nil, err
		}
		return nil, consumeResult(ctx, res)
	})
	if err != nil {
		return fmt.Errorf("link related skills: %w", err)
	}
	return nil
}

// LinkSimilarCourses connects courses that share at least minShared skills
// with SIMILAR_TO edges, which the shortest-path queries traverse.
func (cs *CourseStore) LinkSimilarCourses(ctx context.Context, minShared int) error {
	if minShared <= 0 {
		minShared = 2
	}
	ctx = ctxutil.Default(ctx)
	session := cs.client.WriteSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (c1:Course)-[:TEACHES]->(s:Skill)<-[:TEACHES]-(c2:Course)
WHERE c1.id < c2.id
WITH c1, c2, count(s) AS shared
WHERE shared >= $min_shared
MERGE (c1)-[r:SIMILAR_TO]-(c2)
SET r.shared_skills = shared`,
			map[string]any{"min_shared": minShared})
		if err != nil {
			return nil, err
		}
		return nil, consumeResult(ctx, res)
	})
	if err != nil {
		return fmt.Errorf("link similar courses: %w", err)
	}
	return nil
}
