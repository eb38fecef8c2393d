package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/coursekg/coursekg-backend/internal/domain"
	"github.com/coursekg/coursekg-backend/internal/platform/ctxutil"
)

const vectorIndexName = "course_description_vector"

// SearchByEmbedding queries the course description vector index and returns
// the nearest courses with their cosine similarity scores.
func (cs *CourseStore) SearchByEmbedding(ctx context.Context, embedding []float32, limit int) ([]domain.SearchResult, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("vector search: empty query embedding")
	}
	if limit <= 0 {
		limit = 10
	}

	vec := make([]float64, len(embedding))
	for i, v := range embedding {
		vec[i] = float64(v)
	}

	records, err := cs.read(ctx, `
CALL db.index.vector.queryNodes($index_name, $limit, $query_embedding)
YIELD node, score
OPTIONAL MATCH (node)-[:OFFERED_BY]->(u:University)
OPTIONAL MATCH (node)-[:HAS_DIFFICULTY]->(d:DifficultyLevel)
OPTIONAL MATCH (node)-[:TEACHES]->(s:Skill)
WITH node AS c, u, d, collect(DISTINCT s.name) AS skills, score
RETURN c, u.name AS university, d.level AS difficulty, skills, score
ORDER BY score DESC`,
		map[string]any{
			"index_name":      vectorIndexName,
			"limit":           limit,
			"query_embedding": vec,
		})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	out := make([]domain.SearchResult, 0, len(records))
	for _, record := range records {
		score, _ := record.Get("score")
		out = append(out, domain.SearchResult{
			Course:          courseFromRecord(record),
			SimilarityScore: asFloat64(score),
		})
	}
	return out, nil
}

// EnsureVectorIndex creates (or recreates) the vector index used by semantic
// search. Dimension must match the embedding provider.
func (cs *CourseStore) EnsureVectorIndex(ctx context.Context, dimension int) error {
	ctx = ctxutil.Default(ctx)
	session := cs.client.WriteSession(ctx)
	defer session.Close(ctx)

	cypher := fmt.Sprintf(`
CREATE VECTOR INDEX %s IF NOT EXISTS
FOR (c:Course)
ON c.descriptionEmbedding
OPTIONS {
  indexConfig: {
    `+"`vector.dimensions`"+`: %d,
    `+"`vector.similarity_function`"+`: 'cosine'
  }
}`, vectorIndexName, dimension)

	if res, err := session.Run(ctx, cypher, nil); err != nil {
		return fmt.Errorf("create vector index: %w", err)
	} else if _, err := res.Consume(ctx); err != nil {
		return fmt.Errorf("create vector index: %w", err)
	}
	cs.log.Info("vector index ready", "index", vectorIndexName, "dimensions", dimension)
	return nil
}

// CoursesWithoutEmbedding lists course ids and descriptions still missing an
// embedding, for the backfill job.
func (cs *CourseStore) CoursesWithoutEmbedding(ctx context.Context) ([]domain.Course, error) {
	records, err := cs.read(ctx, `
MATCH (c:Course)
WHERE c.descriptionEmbedding IS NULL
RETURN c.id AS id, c.name AS name, c.description AS description
ORDER BY c.id`, nil)
	if err != nil {
		return nil, fmt.Errorf("courses without embedding: %w", err)
	}

	out := make([]domain.Course, 0, len(records))
	for _, record := range records {
		id, _ := record.Get("id")
		name, _ := record.Get("name")
		description, _ := record.Get("description")
		out = append(out, domain.Course{
			ID:          asString(id),
			Name:        asString(name),
			Description: asString(description),
		})
	}
	return out, nil
}

// SetCourseEmbeddings stores embeddings on course nodes in one write.
func (cs *CourseStore) SetCourseEmbeddings(ctx context.Context, byCourseID map[string][]float32) error {
	if len(byCourseID) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(byCourseID))
	for id, embedding := range byCourseID {
		vec := make([]float64, len(embedding))
		for i, v := range embedding {
			vec[i] = float64(v)
		}
		rows = append(rows, map[string]any{"id": id, "embedding": vec})
	}

	ctx = ctxutil.Default(ctx)
	session := cs.client.WriteSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
UNWIND $rows AS row
MATCH (c:Course {id: row.id})
SET c.descriptionEmbedding = row.embedding`,
			map[string]any{"rows": rows})
		if err != nil {
			return nil, err
		}
		return nil, consumeResult(ctx, res)
	})
	if err != nil {
		return fmt.Errorf("set course embeddings: %w", err)
	}
	return nil
}

func consumeResult(ctx context.Context, res neo4j.ResultWithContext) error {
	_, err := res.Consume(ctx)
	return err
}
