package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coursekg/coursekg-backend/internal/clients/mlserve"
	"github.com/coursekg/coursekg-backend/internal/data/graph"
	"github.com/coursekg/coursekg-backend/internal/domain"
	pkgerrors "github.com/coursekg/coursekg-backend/internal/pkg/errors"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

// ModelServer abstracts the external model server so tests can substitute
// fake classifier heads.
type ModelServer interface {
	PredictProfile(ctx context.Context, features domain.StudentFeatures) (*mlserve.Prediction, error)
	PredictOutcome(ctx context.Context, features domain.StudentFeatures) (*mlserve.Prediction, error)
	Transform(ctx context.Context, features domain.StudentFeatures) ([]float64, error)
	Status(ctx context.Context) (*mlserve.ModelStatus, error)
}

const (
	maxBatchStudents     = 100
	batchWorkers         = 8
	errClassifierMissing = "Profile classifier not loaded"
	errPredictorMissing  = "Outcome predictor not loaded"
)

// LearnerProfileService classifies students into learner profiles, predicts
// their outcomes, derives risk, and assembles the resulting advisories. A nil
// model server means every classification degrades to Unknown with an error
// note instead of failing the request.
type LearnerProfileService struct {
	models ModelServer
	store  graph.Store
	log    *logger.Logger
}

func NewLearnerProfileService(models ModelServer, store graph.Store, log *logger.Logger) (*LearnerProfileService, error) {
	if store == nil {
		return nil, fmt.Errorf("learner profile service: store required")
	}
	if log == nil {
		return nil, fmt.Errorf("learner profile service: logger required")
	}
	return &LearnerProfileService{
		models: models,
		store:  store,
		log:    log.With("service", "LearnerProfileService"),
	}, nil
}

// ClassifyProfile runs the profile classifier over one student. Model
// failures degrade to an Unknown classification carrying the error text.
func (s *LearnerProfileService) ClassifyProfile(ctx context.Context, input domain.StudentInput) domain.ProfileClassification {
	if s.models == nil {
		return domain.ProfileClassification{Profile: domain.LabelUnknown, Error: errClassifierMissing}
	}

	features := EngineerFeatures(input)
	pred, err := s.models.PredictProfile(ctx, features)
	if err != nil {
		s.log.Error("profile classification failed", "student_id", input.StudentID, "error", err)
		return domain.ProfileClassification{Profile: domain.LabelUnknown, Error: err.Error()}
	}

	return domain.ProfileClassification{
		Profile:          labelFor(domain.ProfileLabels, pred.ClassID),
		ProfileID:        pred.ClassID,
		Confidence:       pred.Confidence,
		AllProbabilities: pred.Probabilities,
	}
}

// PredictOutcome runs the outcome predictor and derives the risk level.
func (s *LearnerProfileService) PredictOutcome(ctx context.Context, input domain.StudentInput) domain.OutcomePrediction {
	if s.models == nil {
		return domain.OutcomePrediction{Outcome: domain.LabelUnknown, Error: errPredictorMissing}
	}

	features := EngineerFeatures(input)
	pred, err := s.models.PredictOutcome(ctx, features)
	if err != nil {
		s.log.Error("outcome prediction failed", "student_id", input.StudentID, "error", err)
		return domain.OutcomePrediction{Outcome: domain.LabelUnknown, Error: err.Error()}
	}

	outcome := labelFor(domain.OutcomeLabels, pred.ClassID)
	risk := RiskForOutcome(outcome, pred.Confidence)
	return domain.OutcomePrediction{
		Outcome:          outcome,
		OutcomeID:        pred.ClassID,
		Confidence:       pred.Confidence,
		RiskLevel:        risk,
		IsAtRisk:         risk.AtRisk(),
		AllProbabilities: pred.Probabilities,
	}
}

// StudentEmbedding maps a student into the fitted model feature space. Nil
// when the embedding pipeline is unavailable or errors.
func (s *LearnerProfileService) StudentEmbedding(ctx context.Context, input domain.StudentInput) []float64 {
	if s.models == nil {
		return nil
	}
	embedding, err := s.models.Transform(ctx, EngineerFeatures(input))
	if err != nil {
		s.log.Error("student embedding failed", "student_id", input.StudentID, "error", err)
		return nil
	}
	return embedding
}

// Analyze runs the full per-student pipeline: classification, outcome
// prediction, embedding and advisories.
func (s *LearnerProfileService) Analyze(ctx context.Context, input domain.StudentInput) domain.StudentAnalysis {
	profile := s.ClassifyProfile(ctx, input)
	outcome := s.PredictOutcome(ctx, input)
	embedding := s.StudentEmbedding(ctx, input)

	studentID := input.StudentID
	if studentID == "" {
		studentID = "unknown"
	}

	return domain.StudentAnalysis{
		StudentID:         studentID,
		Profile:           profile,
		Outcome:           outcome,
		Embedding:         embedding,
		Recommendations:   RiskRecommendations(profile.Profile, outcome.Outcome, outcome.RiskLevel),
		AnalysisTimestamp: time.Now().Format(time.RFC3339),
	}
}

// AnalyzeBatch analyzes up to maxBatchStudents students concurrently. One
// student's failure never aborts the rest; failures are reported per item.
func (s *LearnerProfileService) AnalyzeBatch(ctx context.Context, students []domain.StudentInput) (*domain.BatchAnalysisResult, error) {
	if len(students) == 0 {
		return nil, fmt.Errorf("analyze batch: no students given: %w", pkgerrors.ErrInvalidArgument)
	}
	if len(students) > maxBatchStudents {
		return nil, fmt.Errorf("analyze batch: %d students exceeds limit of %d: %w",
			len(students), maxBatchStudents, pkgerrors.ErrInvalidArgument)
	}

	start := time.Now()
	analyses := make([]*domain.StudentAnalysis, len(students))

	var mu sync.Mutex
	var itemErrors []domain.BatchItemError

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)
	for i, student := range students {
		g.Go(func() error {
			if student.StudentID == "" {
				mu.Lock()
				itemErrors = append(itemErrors, domain.BatchItemError{
					StudentID: fmt.Sprintf("index %d", i),
					Error:     "student_id required",
				})
				mu.Unlock()
				return nil
			}
			analysis := s.Analyze(gctx, student)
			analyses[i] = &analysis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze batch: %w", err)
	}

	results := make([]domain.StudentAnalysis, 0, len(students))
	for _, a := range analyses {
		if a != nil {
			results = append(results, *a)
		}
	}

	return &domain.BatchAnalysisResult{
		Results:           results,
		Errors:            itemErrors,
		TotalProcessed:    len(results),
		ProcessingSeconds: time.Since(start).Seconds(),
	}, nil
}

// SimilarStudents ranks cohort members by cosine similarity of their model
// embeddings to the target student. Without the embedding pipeline this
// enrichment returns empty.
func (s *LearnerProfileService) SimilarStudents(ctx context.Context, target domain.StudentInput, cohort []domain.StudentInput, topK int) []domain.SimilarStudent {
	if s.models == nil {
		return []domain.SimilarStudent{}
	}
	if topK <= 0 {
		topK = 5
	}

	targetEmbedding := s.StudentEmbedding(ctx, target)
	if targetEmbedding == nil {
		return []domain.SimilarStudent{}
	}

	similar := make([]domain.SimilarStudent, 0, len(cohort))
	for _, other := range cohort {
		if other.StudentID == target.StudentID {
			continue
		}
		otherEmbedding := s.StudentEmbedding(ctx, other)
		if otherEmbedding == nil {
			continue
		}
		similar = append(similar, domain.SimilarStudent{
			StudentID:  other.StudentID,
			Similarity: cosineSimilarity(targetEmbedding, otherEmbedding),
		})
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Similarity > similar[j].Similarity
	})
	if len(similar) > topK {
		similar = similar[:topK]
	}
	return similar
}

// RecommendCourses suggests graph courses matched to the student's classified
// profile. Fast learners get Advanced courses, struggling students Beginner,
// everyone else the preferred difficulty or Intermediate.
func (s *LearnerProfileService) RecommendCourses(ctx context.Context, input domain.StudentInput, preferredDifficulty string, limit int) (*domain.LearnerCourseRecommendations, error) {
	if limit <= 0 {
		limit = 5
	}

	profile := s.ClassifyProfile(ctx, input)
	outcome := s.PredictOutcome(ctx, input)

	difficulty := preferredDifficulty
	switch profile.Profile {
	case "Fast Learner":
		difficulty = domain.DifficultyAdvanced
	case "Struggling":
		difficulty = domain.DifficultyBeginner
	}
	if difficulty == "" {
		difficulty = domain.DifficultyIntermediate
	}

	// Over-fetch so the difficulty filter still leaves enough candidates.
	popular, err := s.store.PopularCourses(ctx, limit*5)
	if err != nil {
		return nil, fmt.Errorf("recommend courses: %w", err)
	}

	matched := make([]domain.Course, 0, limit)
	for _, c := range popular {
		if c.Difficulty == difficulty {
			matched = append(matched, c)
		}
	}
	if len(matched) < limit {
		for _, c := range popular {
			if len(matched) >= limit {
				break
			}
			if c.Difficulty != difficulty {
				matched = append(matched, c)
			}
		}
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	recommendations := make([]domain.LearnerCourseRecommendation, 0, len(matched))
	for _, c := range matched {
		score := c.Rating / 5
		reasoning := fmt.Sprintf("Popular %s course", c.Difficulty)
		if c.Difficulty == difficulty && profile.Profile != domain.LabelUnknown {
			score = math.Min(1, score+0.1)
			reasoning = fmt.Sprintf("%s difficulty suits your %s profile", c.Difficulty, profile.Profile)
		}
		recommendations = append(recommendations, domain.LearnerCourseRecommendation{
			CourseID:   c.ID,
			CourseName: c.Name,
			University: c.University,
			Difficulty: c.Difficulty,
			Rating:     c.Rating,
			MatchScore: score,
			Reasoning:  reasoning,
		})
	}

	return &domain.LearnerCourseRecommendations{
		StudentProfile:     profile.Profile,
		RiskLevel:          outcome.RiskLevel,
		RecommendedCourses: recommendations,
	}, nil
}

// ModelStatus reports which model heads are usable right now.
func (s *LearnerProfileService) ModelStatus(ctx context.Context) domain.ModelStatus {
	if s.models == nil {
		return domain.ModelStatus{}
	}
	status, err := s.models.Status(ctx)
	if err != nil {
		s.log.Warn("model status check failed", "error", err)
		return domain.ModelStatus{ModelsConfigured: true}
	}
	return domain.ModelStatus{
		ModelsConfigured:  true,
		ProfileClassifier: status.ProfileClassifier,
		OutcomePredictor:  status.OutcomePredictor,
		EmbeddingPipeline: status.EmbeddingPipeline,
	}
}

func labelFor(labels []string, classID int) string {
	if classID < 0 || classID >= len(labels) {
		return domain.LabelUnknown
	}
	return labels[classID]
}

func cosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
