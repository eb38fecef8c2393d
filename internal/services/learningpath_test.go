package services

import (
	"context"
	"testing"

	"github.com/coursekg/coursekg-backend/internal/domain"
)

func newPathService(t *testing.T, store *fakeStore) *LearningPathService {
	t.Helper()
	svc, err := NewLearningPathService(store, testLogger(t))
	if err != nil {
		t.Fatalf("NewLearningPathService: %v", err)
	}
	return svc
}

func TestBuildGroupsByTier(t *testing.T) {
	svc := newPathService(t, &fakeStore{})

	results := []domain.SearchResult{
		{Course: domain.Course{ID: "1", Difficulty: "Beginner"}},
		{Course: domain.Course{ID: "2", Difficulty: "Advanced"}},
		{Course: domain.Course{ID: "3", Difficulty: "Intermediate"}},
		{Course: domain.Course{ID: "4", Difficulty: "Conversant"}},
		{Course: domain.Course{ID: "5", Difficulty: "Expert"}},
		{Course: domain.Course{ID: "6", Difficulty: ""}},
		{Course: domain.Course{ID: "7", Difficulty: "Beginner"}},
	}

	path := svc.Build(results)

	if got := resultIDs(path.Beginner); len(got) != 2 || got[0] != "1" || got[1] != "7" {
		t.Fatalf("beginner = %v, want [1 7]", got)
	}
	// Conversant, unrecognized and missing difficulties all land in
	// intermediate, in input order.
	if got := resultIDs(path.Intermediate); len(got) != 4 || got[0] != "3" || got[1] != "4" || got[2] != "5" || got[3] != "6" {
		t.Fatalf("intermediate = %v, want [3 4 5 6]", got)
	}
	if got := resultIDs(path.Advanced); len(got) != 1 || got[0] != "2" {
		t.Fatalf("advanced = %v, want [2]", got)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	svc := newPathService(t, &fakeStore{})

	path := svc.Build(nil)
	if path.Beginner == nil || path.Intermediate == nil || path.Advanced == nil {
		t.Fatalf("tiers must be empty slices, not nil: %+v", path)
	}

	summary := svc.Summary(path)
	if summary.TotalCourses != 0 {
		t.Fatalf("summary of empty path = %+v", summary)
	}
}

func TestSummaryCounts(t *testing.T) {
	svc := newPathService(t, &fakeStore{})

	path := domain.LearningPath{
		Beginner:     make([]domain.SearchResult, 3),
		Intermediate: make([]domain.SearchResult, 2),
		Advanced:     make([]domain.SearchResult, 1),
	}

	summary := svc.Summary(path)
	if summary.TotalCourses != 6 || summary.BeginnerCount != 3 || summary.IntermediateCount != 2 || summary.AdvancedCount != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestCoreCourses(t *testing.T) {
	svc := newPathService(t, &fakeStore{})

	path := domain.LearningPath{
		Beginner: []domain.SearchResult{
			{Course: domain.Course{ID: "b1"}},
			{Course: domain.Course{ID: "b2"}},
			{Course: domain.Course{ID: "b3"}},
			{Course: domain.Course{ID: "b4"}},
		},
		Intermediate: []domain.SearchResult{
			{Course: domain.Course{ID: "i1"}},
			{Course: domain.Course{ID: "i2"}},
			{Course: domain.Course{ID: "i3"}},
		},
	}

	core := svc.CoreCourses(path)
	want := []string{"b1", "b2", "b3", "i1", "i2"}
	if len(core) != len(want) {
		t.Fatalf("core has %d courses, want %d", len(core), len(want))
	}
	for i, id := range want {
		if core[i].ID != id {
			t.Fatalf("core[%d] = %q, want %q", i, core[i].ID, id)
		}
	}

	// Short tiers just yield fewer core courses.
	short := svc.CoreCourses(domain.LearningPath{
		Beginner: []domain.SearchResult{{Course: domain.Course{ID: "b1"}}},
	})
	if len(short) != 1 || short[0].ID != "b1" {
		t.Fatalf("short core = %v", short)
	}
}

func TestPathToSkillUsesGraphThenFallsBack(t *testing.T) {
	viaGraph := []domain.Course{{ID: "g1"}, {ID: "g2"}}
	byDifficulty := []domain.Course{{ID: "d1"}}

	store := &fakeStore{
		shortestPathFn: func(ctx context.Context, start, skill string, maxHops, maxCourses int) ([]domain.Course, error) {
			if start == "known" {
				return viaGraph, nil
			}
			return nil, nil
		},
		coursesTeachingFn: func(ctx context.Context, skill string, limit int) ([]domain.Course, error) {
			return byDifficulty, nil
		},
	}
	svc := newPathService(t, store)

	got, err := svc.PathToSkill(context.Background(), "SQL", "known", 5)
	if err != nil {
		t.Fatalf("PathToSkill: %v", err)
	}
	if len(got) != 2 || got[0].ID != "g1" {
		t.Fatalf("graph path = %v", got)
	}

	// No path from this start course: fall back to difficulty progression.
	got, err = svc.PathToSkill(context.Background(), "SQL", "isolated", 5)
	if err != nil {
		t.Fatalf("PathToSkill fallback: %v", err)
	}
	if len(got) != 1 || got[0].ID != "d1" {
		t.Fatalf("fallback path = %v", got)
	}

	// No start course: straight to difficulty progression.
	got, err = svc.PathToSkill(context.Background(), "SQL", "", 5)
	if err != nil {
		t.Fatalf("PathToSkill no start: %v", err)
	}
	if len(got) != 1 || got[0].ID != "d1" {
		t.Fatalf("no-start path = %v", got)
	}

	if _, err := svc.PathToSkill(context.Background(), "", "", 5); err == nil {
		t.Fatalf("expected error for empty target skill")
	}
}

func resultIDs(results []domain.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}
