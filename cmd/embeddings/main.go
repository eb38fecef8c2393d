// Backfills description embeddings onto course nodes and ensures the vector
// index used by semantic search.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/coursekg/coursekg-backend/internal/data/graph"
	"github.com/coursekg/coursekg-backend/internal/domain"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
	"github.com/coursekg/coursekg-backend/internal/platform/neo4jdb"
	"github.com/coursekg/coursekg-backend/internal/platform/openai"
)

const embedBatchSize = 50

func main() {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), log); err != nil {
		log.Fatal("embedding backfill failed", "error", err)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	neo, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		return fmt.Errorf("init neo4j: %w", err)
	}
	defer neo.Close(ctx)

	store, err := graph.NewCourseStore(neo, log)
	if err != nil {
		return err
	}

	embedder, err := openai.NewClient(log)
	if err != nil {
		return fmt.Errorf("init embeddings client: %w", err)
	}

	if err := store.EnsureVectorIndex(ctx, embedder.Dimension()); err != nil {
		return err
	}

	pending, err := store.CoursesWithoutEmbedding(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		log.Info("all courses already embedded")
		return nil
	}
	log.Info("backfilling embeddings", "courses", len(pending))

	for start := 0; start < len(pending); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(pending) {
			end = len(pending)
		}
		if err := embedBatch(ctx, store, embedder, pending[start:end]); err != nil {
			return fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		log.Info("embedded batch", "done", end, "total", len(pending))
	}
	return nil
}

func embedBatch(ctx context.Context, store *graph.CourseStore, embedder openai.Client, courses []domain.Course) error {
	inputs := make([]string, len(courses))
	for i, c := range courses {
		text := c.Description
		if text == "" {
			text = c.Name
		}
		inputs[i] = text
	}

	embeddings, err := embedder.Embed(ctx, inputs)
	if err != nil {
		return err
	}

	byID := make(map[string][]float32, len(courses))
	for i, c := range courses {
		byID[c.ID] = embeddings[i]
	}
	return store.SetCourseEmbeddings(ctx, byID)
}
