package services

import (
	"context"
	"errors"
	"testing"

	"github.com/coursekg/coursekg-backend/internal/domain"
	pkgerrors "github.com/coursekg/coursekg-backend/internal/pkg/errors"
)

type fakeEmbedder struct {
	embedErr error
}

func (f *fakeEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	out := make([][]float32, len(inputs))
	for i := range inputs {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

func (f *fakeEmbedder) Dimension() int { return 3 }

type fakeVectorSearch struct {
	results []domain.SearchResult
	err     error
}

func (f *fakeVectorSearch) SearchByEmbedding(ctx context.Context, embedding []float32, limit int) ([]domain.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) > limit {
		return f.results[:limit], nil
	}
	return f.results, nil
}

func newAISearchService(t *testing.T, vector *fakeVectorSearch) *AISearchService {
	t.Helper()
	log := testLogger(t)

	search, err := NewSearchService(&fakeEmbedder{}, vector, log)
	if err != nil {
		t.Fatalf("NewSearchService: %v", err)
	}
	paths, err := NewLearningPathService(&fakeStore{}, log)
	if err != nil {
		t.Fatalf("NewLearningPathService: %v", err)
	}
	svc, err := NewAISearchService(search, paths, newCrossDomainService(t), log)
	if err != nil {
		t.Fatalf("NewAISearchService: %v", err)
	}
	return svc
}

func searchResult(id, name, difficulty string, score float64, skills ...string) domain.SearchResult {
	return domain.SearchResult{
		Course: domain.Course{
			ID:         id,
			Name:       name,
			Difficulty: difficulty,
			Skills:     skills,
		},
		SimilarityScore: score,
	}
}

func TestAISearchBuildsPath(t *testing.T) {
	vector := &fakeVectorSearch{results: []domain.SearchResult{
		searchResult("b1", "Python Basics", "Beginner", 0.95, "Python"),
		searchResult("b2", "Intro to Programming", "Beginner", 0.93, "Python"),
		searchResult("i1", "Data Structures in Python", "Intermediate", 0.91, "Python", "Algorithms"),
		searchResult("a1", "Distributed Systems in Python", "Advanced", 0.89, "Python", "Networking"),
		// Different domain, outside the core tier selection, high
		// similarity plus a shared skill: survives the cross-domain filter.
		searchResult("x1", "Clinical Data Analysis in Healthcare", "Advanced", 0.90, "Python", "Clinical Research", "Patient Care"),
	}}
	svc := newAISearchService(t, vector)

	got, err := svc.Search(context.Background(), "learn python", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(got.LearningPath.Beginner) != 2 {
		t.Fatalf("beginner tier = %+v", got.LearningPath.Beginner)
	}
	if len(got.LearningPath.Intermediate) != 1 || len(got.LearningPath.Advanced) != 2 {
		t.Fatalf("tiers = %d intermediate, %d advanced",
			len(got.LearningPath.Intermediate), len(got.LearningPath.Advanced))
	}

	if len(got.CrossDomainCourses) != 1 || got.CrossDomainCourses[0].ID != "x1" {
		t.Fatalf("cross domain = %+v", got.CrossDomainCourses)
	}
	if got.CrossDomainCourses[0].Domain != "Health & Medicine" {
		t.Fatalf("cross domain label = %q", got.CrossDomainCourses[0].Domain)
	}

	if got.Summary.TotalCourses != 5 || got.Summary.CrossDomainCount != 1 {
		t.Fatalf("summary = %+v", got.Summary)
	}
}

func TestAISearchEmptyResults(t *testing.T) {
	svc := newAISearchService(t, &fakeVectorSearch{})

	got, err := svc.Search(context.Background(), "nothing matches", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got.Summary.TotalCourses != 0 {
		t.Fatalf("summary = %+v", got.Summary)
	}
	// Tiers serialize as empty arrays, not null.
	if got.LearningPath.Beginner == nil || got.CrossDomainCourses == nil {
		t.Fatalf("expected empty slices, got %+v", got)
	}
}

func TestAISearchRejectsBlankQuery(t *testing.T) {
	svc := newAISearchService(t, &fakeVectorSearch{})

	if _, err := svc.Search(context.Background(), "   ", 10); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("blank query error = %v", err)
	}
}

func TestAISearchPropagatesSearchFailure(t *testing.T) {
	svc := newAISearchService(t, &fakeVectorSearch{err: errors.New("index offline")})

	if _, err := svc.Search(context.Background(), "learn python", 10); err == nil {
		t.Fatalf("expected error from vector search")
	}
}
