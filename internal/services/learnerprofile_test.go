package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/coursekg/coursekg-backend/internal/clients/mlserve"
	"github.com/coursekg/coursekg-backend/internal/domain"
	pkgerrors "github.com/coursekg/coursekg-backend/internal/pkg/errors"
)

// fakeModelServer returns canned predictions, keyed by nothing: every student
// gets the same answer unless a function field overrides it.
type fakeModelServer struct {
	profile    mlserve.Prediction
	outcome    mlserve.Prediction
	embedding  []float64
	profileErr error
	outcomeErr error

	transformFn func(features domain.StudentFeatures) ([]float64, error)
}

func (f *fakeModelServer) PredictProfile(ctx context.Context, features domain.StudentFeatures) (*mlserve.Prediction, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p := f.profile
	return &p, nil
}

func (f *fakeModelServer) PredictOutcome(ctx context.Context, features domain.StudentFeatures) (*mlserve.Prediction, error) {
	if f.outcomeErr != nil {
		return nil, f.outcomeErr
	}
	p := f.outcome
	return &p, nil
}

func (f *fakeModelServer) Transform(ctx context.Context, features domain.StudentFeatures) ([]float64, error) {
	if f.transformFn != nil {
		return f.transformFn(features)
	}
	if f.embedding == nil {
		return nil, errors.New("no embedding pipeline")
	}
	return f.embedding, nil
}

func (f *fakeModelServer) Status(ctx context.Context) (*mlserve.ModelStatus, error) {
	return &mlserve.ModelStatus{
		ProfileClassifier: true,
		OutcomePredictor:  true,
		EmbeddingPipeline: f.embedding != nil,
	}, nil
}

func newLearnerService(t *testing.T, models ModelServer) *LearnerProfileService {
	t.Helper()
	svc, err := NewLearnerProfileService(models, &fakeStore{}, testLogger(t))
	if err != nil {
		t.Fatalf("NewLearnerProfileService: %v", err)
	}
	return svc
}

func TestClassifyProfile(t *testing.T) {
	svc := newLearnerService(t, &fakeModelServer{
		profile: mlserve.Prediction{
			ClassID:    2,
			Confidence: 0.8,
			Probabilities: map[string]float64{
				"Fast Learner": 0.05, "Balanced": 0.1, "Struggling": 0.8, "Disengaged": 0.05,
			},
		},
	})

	got := svc.ClassifyProfile(context.Background(), domain.StudentInput{StudentID: "s1"})
	if got.Profile != "Struggling" || got.ProfileID != 2 || got.Confidence != 0.8 {
		t.Fatalf("classification = %+v", got)
	}
	if got.Error != "" {
		t.Fatalf("unexpected error field: %q", got.Error)
	}
}

func TestClassifyProfileUnavailable(t *testing.T) {
	svc := newLearnerService(t, nil)

	got := svc.ClassifyProfile(context.Background(), domain.StudentInput{StudentID: "s1"})
	if got.Profile != domain.LabelUnknown || got.Error == "" {
		t.Fatalf("expected Unknown with error note, got %+v", got)
	}
}

func TestClassifyProfileModelError(t *testing.T) {
	svc := newLearnerService(t, &fakeModelServer{profileErr: errors.New("server down")})

	got := svc.ClassifyProfile(context.Background(), domain.StudentInput{StudentID: "s1"})
	if got.Profile != domain.LabelUnknown || got.Error == "" {
		t.Fatalf("expected degraded classification, got %+v", got)
	}
}

func TestPredictOutcomeDerivesRisk(t *testing.T) {
	svc := newLearnerService(t, &fakeModelServer{
		outcome: mlserve.Prediction{ClassID: 3, Confidence: 0.9},
	})

	got := svc.PredictOutcome(context.Background(), domain.StudentInput{StudentID: "s1"})
	if got.Outcome != "Withdrawn" || got.RiskLevel != domain.RiskVeryHigh || !got.IsAtRisk {
		t.Fatalf("prediction = %+v", got)
	}
}

func TestAnalyzeAssemblesEverything(t *testing.T) {
	svc := newLearnerService(t, &fakeModelServer{
		profile:   mlserve.Prediction{ClassID: 3, Confidence: 0.7},
		outcome:   mlserve.Prediction{ClassID: 1, Confidence: 0.8},
		embedding: []float64{0.1, 0.2},
	})

	got := svc.Analyze(context.Background(), domain.StudentInput{StudentID: "s1"})
	if got.StudentID != "s1" {
		t.Fatalf("student id = %q", got.StudentID)
	}
	if got.Profile.Profile != "Disengaged" || got.Outcome.Outcome != "Fail" {
		t.Fatalf("analysis = %+v", got)
	}
	if len(got.Embedding) != 2 {
		t.Fatalf("embedding = %v", got.Embedding)
	}
	// Disengaged (2) + at-risk Fail at 0.8 (2) advisories.
	if len(got.Recommendations) != 4 {
		t.Fatalf("got %d recommendations: %+v", len(got.Recommendations), got.Recommendations)
	}
	if got.AnalysisTimestamp == "" {
		t.Fatalf("missing analysis timestamp")
	}

	missing := svc.Analyze(context.Background(), domain.StudentInput{})
	if missing.StudentID != "unknown" {
		t.Fatalf("missing id = %q, want unknown", missing.StudentID)
	}
}

func TestAnalyzeBatch(t *testing.T) {
	svc := newLearnerService(t, &fakeModelServer{
		profile: mlserve.Prediction{ClassID: 1, Confidence: 0.9},
		outcome: mlserve.Prediction{ClassID: 0, Confidence: 0.9},
	})

	students := []domain.StudentInput{
		{StudentID: "s1"},
		{}, // missing id: recorded as an item error, siblings unaffected
		{StudentID: "s3"},
	}

	result, err := svc.AnalyzeBatch(context.Background(), students)
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	if result.TotalProcessed != 2 || len(result.Results) != 2 {
		t.Fatalf("processed = %d, results = %d", result.TotalProcessed, len(result.Results))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %+v", result.Errors)
	}
	// Input order survives the concurrent fan-out.
	if result.Results[0].StudentID != "s1" || result.Results[1].StudentID != "s3" {
		t.Fatalf("order lost: %q, %q", result.Results[0].StudentID, result.Results[1].StudentID)
	}
	if result.ProcessingSeconds < 0 {
		t.Fatalf("processing seconds = %v", result.ProcessingSeconds)
	}
}

func TestAnalyzeBatchLimits(t *testing.T) {
	svc := newLearnerService(t, nil)

	if _, err := svc.AnalyzeBatch(context.Background(), nil); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("empty batch error = %v", err)
	}

	tooMany := make([]domain.StudentInput, 101)
	for i := range tooMany {
		tooMany[i] = domain.StudentInput{StudentID: fmt.Sprintf("s%d", i)}
	}
	if _, err := svc.AnalyzeBatch(context.Background(), tooMany); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("oversize batch error = %v", err)
	}
}

func TestSimilarStudents(t *testing.T) {
	clicksLow, clicksHigh := 10, 1000

	models := &fakeModelServer{
		transformFn: func(features domain.StudentFeatures) ([]float64, error) {
			// Two distinguishable clusters based on clicks.
			if features.TotalClicks > 100 {
				return []float64{1, 0}, nil
			}
			return []float64{0, 1}, nil
		},
	}
	svc := newLearnerService(t, models)

	target := domain.StudentInput{StudentID: "t", TotalClicks: &clicksHigh}
	cohort := []domain.StudentInput{
		{StudentID: "t", TotalClicks: &clicksHigh}, // self, skipped
		{StudentID: "near", TotalClicks: &clicksHigh},
		{StudentID: "far", TotalClicks: &clicksLow},
	}

	got := svc.SimilarStudents(context.Background(), target, cohort, 5)
	if len(got) != 2 {
		t.Fatalf("got %d similar students: %+v", len(got), got)
	}
	if got[0].StudentID != "near" || got[0].Similarity <= got[1].Similarity {
		t.Fatalf("ordering wrong: %+v", got)
	}
}

func TestSimilarStudentsUnavailable(t *testing.T) {
	svc := newLearnerService(t, nil)

	got := svc.SimilarStudents(context.Background(), domain.StudentInput{StudentID: "t"}, nil, 5)
	if len(got) != 0 {
		t.Fatalf("expected empty, got %+v", got)
	}
}

func TestRecommendCourses(t *testing.T) {
	store := &fakeStore{courses: []domain.Course{
		{ID: "adv1", Name: "Deep Learning", Difficulty: "Advanced", Rating: 4.8, University: "U1"},
		{ID: "beg1", Name: "Intro", Difficulty: "Beginner", Rating: 4.9, University: "U2"},
		{ID: "adv2", Name: "Compilers", Difficulty: "Advanced", Rating: 4.5, University: "U3"},
	}}
	models := &fakeModelServer{
		profile: mlserve.Prediction{ClassID: 0, Confidence: 0.9}, // Fast Learner
		outcome: mlserve.Prediction{ClassID: 0, Confidence: 0.9}, // Pass
	}
	svc, err := NewLearnerProfileService(models, store, testLogger(t))
	if err != nil {
		t.Fatalf("NewLearnerProfileService: %v", err)
	}

	got, err := svc.RecommendCourses(context.Background(), domain.StudentInput{StudentID: "s1"}, "", 2)
	if err != nil {
		t.Fatalf("RecommendCourses: %v", err)
	}
	if got.StudentProfile != "Fast Learner" || got.RiskLevel != domain.RiskLow {
		t.Fatalf("header = %+v", got)
	}
	if len(got.RecommendedCourses) != 2 {
		t.Fatalf("got %d courses", len(got.RecommendedCourses))
	}
	// Fast learners are steered to Advanced courses first.
	for _, c := range got.RecommendedCourses {
		if c.Difficulty != "Advanced" {
			t.Fatalf("difficulty = %q, want Advanced: %+v", c.Difficulty, got.RecommendedCourses)
		}
		if c.Reasoning == "" || c.MatchScore <= 0 {
			t.Fatalf("missing score or reasoning: %+v", c)
		}
	}
}

func TestModelStatus(t *testing.T) {
	svc := newLearnerService(t, &fakeModelServer{embedding: []float64{1}})

	got := svc.ModelStatus(context.Background())
	if !got.ModelsConfigured || !got.ProfileClassifier || !got.OutcomePredictor || !got.EmbeddingPipeline {
		t.Fatalf("status = %+v", got)
	}

	unconfigured := newLearnerService(t, nil)
	if got := unconfigured.ModelStatus(context.Background()); got.ModelsConfigured {
		t.Fatalf("expected unconfigured status, got %+v", got)
	}
}
