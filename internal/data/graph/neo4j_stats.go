package graph

import (
	"context"
	"fmt"

	"github.com/coursekg/coursekg-backend/internal/domain"
)

// SkillsByPopularity returns skills ordered by the number of courses that
// teach them.
func (cs *CourseStore) SkillsByPopularity(ctx context.Context, limit int) ([]domain.Skill, error) {
	if limit <= 0 {
		limit = 50
	}
	records, err := cs.read(ctx, `
MATCH (s:Skill)<-[:TEACHES]-(c:Course)
RETURN s.name AS name, count(c) AS course_count
ORDER BY course_count DESC
LIMIT $limit`,
		map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("skills by popularity: %w", err)
	}

	out := make([]domain.Skill, 0, len(records))
	for _, record := range records {
		name, _ := record.Get("name")
		count, _ := record.Get("course_count")
		out = append(out, domain.Skill{
			Name:        asString(name),
			CourseCount: int(asInt64(count)),
		})
	}
	return out, nil
}

// RelatedSkills follows RELATED_TO edges from the named skill.
func (cs *CourseStore) RelatedSkills(ctx context.Context, skillName string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	records, err := cs.read(ctx, `
MATCH (s:Skill {name: $skill_name})-[:RELATED_TO]-(related:Skill)
RETURN DISTINCT related.name AS name
LIMIT $limit`,
		map[string]any{"skill_name": skillName, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("related skills: %w", err)
	}

	out := make([]string, 0, len(records))
	for _, record := range records {
		name, _ := record.Get("name")
		out = append(out, asString(name))
	}
	return out, nil
}

// Universities lists universities with their course counts and average course
// rating, most courses first.
func (cs *CourseStore) Universities(ctx context.Context, limit int) ([]domain.University, error) {
	if limit <= 0 {
		limit = 100
	}
	records, err := cs.read(ctx, `
MATCH (u:University)<-[:OFFERED_BY]-(c:Course)
RETURN u.name AS name, count(c) AS course_count, avg(c.rating) AS avg_rating
ORDER BY course_count DESC
LIMIT $limit`,
		map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("universities: %w", err)
	}

	out := make([]domain.University, 0, len(records))
	for _, record := range records {
		name, _ := record.Get("name")
		count, _ := record.Get("course_count")
		rating, _ := record.Get("avg_rating")
		out = append(out, domain.University{
			Name:        asString(name),
			CourseCount: int(asInt64(count)),
			AvgRating:   asFloat64(rating),
		})
	}
	return out, nil
}

// Stats aggregates node and relationship counts plus the top skills and
// universities for the overview endpoint.
func (cs *CourseStore) Stats(ctx context.Context) (*domain.GraphStats, error) {
	records, err := cs.read(ctx, `
MATCH (c:Course)
WITH count(c) AS courses, avg(c.rating) AS avg_rating
MATCH (u:University)
WITH courses, avg_rating, count(u) AS universities
MATCH (s:Skill)
WITH courses, avg_rating, universities, count(s) AS skills
MATCH ()-[r]->()
RETURN courses, universities, skills, avg_rating, count(r) AS relationships`, nil)
	if err != nil {
		return nil, fmt.Errorf("graph stats: %w", err)
	}
	if len(records) == 0 {
		return &domain.GraphStats{}, nil
	}

	record := records[0]
	courses, _ := record.Get("courses")
	universities, _ := record.Get("universities")
	skills, _ := record.Get("skills")
	avgRating, _ := record.Get("avg_rating")
	relationships, _ := record.Get("relationships")

	stats := &domain.GraphStats{
		TotalCourses:       int(asInt64(courses)),
		TotalUniversities:  int(asInt64(universities)),
		TotalSkills:        int(asInt64(skills)),
		TotalRelationships: int(asInt64(relationships)),
		AvgRating:          asFloat64(avgRating),
	}

	if stats.TopSkills, err = cs.SkillsByPopularity(ctx, 10); err != nil {
		return nil, err
	}
	if stats.TopUniversities, err = cs.Universities(ctx, 10); err != nil {
		return nil, err
	}
	return stats, nil
}
