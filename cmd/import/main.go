// Imports the course catalog CSV into the Neo4j knowledge graph: schema,
// course nodes with their relationships, and the derived RELATED_TO and
// SIMILAR_TO edges.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/coursekg/coursekg-backend/internal/data/graph"
	"github.com/coursekg/coursekg-backend/internal/ingestion"
	"github.com/coursekg/coursekg-backend/internal/platform/envutil"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
	"github.com/coursekg/coursekg-backend/internal/platform/neo4jdb"
)

const importBatchSize = 200

func main() {
	csvPath := flag.String("csv", envutil.String("COURSE_CSV_PATH", "data/coursera.csv"), "path to the course catalog CSV")
	limit := flag.Int("limit", envutil.Int("DATA_LIMIT", 0), "max rows to import, 0 for all")
	flag.Parse()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), log, *csvPath, *limit); err != nil {
		log.Fatal("import failed", "error", err)
	}
}

func run(ctx context.Context, log *logger.Logger, csvPath string, limit int) error {
	neo, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		return fmt.Errorf("init neo4j: %w", err)
	}
	defer neo.Close(ctx)

	store, err := graph.NewCourseStore(neo, log)
	if err != nil {
		return err
	}

	loader, err := ingestion.NewLoader(log)
	if err != nil {
		return err
	}
	courses, err := loader.LoadFile(csvPath, limit)
	if err != nil {
		return err
	}

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	for start := 0; start < len(courses); start += importBatchSize {
		end := start + importBatchSize
		if end > len(courses) {
			end = len(courses)
		}
		if err := store.ImportCourses(ctx, courses[start:end]); err != nil {
			return fmt.Errorf("import batch %d-%d: %w", start, end, err)
		}
	}

	if err := store.LinkRelatedSkills(ctx, 0); err != nil {
		return err
	}
	if err := store.LinkSimilarCourses(ctx, 0); err != nil {
		return err
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	log.Info("import complete",
		"courses", stats.TotalCourses,
		"universities", stats.TotalUniversities,
		"skills", stats.TotalSkills,
		"relationships", stats.TotalRelationships)
	return nil
}
