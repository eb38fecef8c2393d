package domain

// Learner profiles and outcomes form small closed label sets; the external
// classifiers index into these by class id.
var (
	ProfileLabels = []string{"Fast Learner", "Balanced", "Struggling", "Disengaged"}
	OutcomeLabels = []string{"Pass", "Fail", "Distinction", "Withdrawn"}
)

const LabelUnknown = "Unknown"

// StudentFeatures is the engineered OULAD feature set for one learner.
// Constructed fresh per request; never persisted.
type StudentFeatures struct {
	// VLE engagement
	TotalClicks        int     `json:"total_clicks"`
	ActiveDays         int     `json:"active_days"`
	AvgClicksPerDay    float64 `json:"avg_clicks_per_day"`
	ClicksLastWeek     int     `json:"clicks_last_week"`
	ClicksPerActiveDay float64 `json:"clicks_per_active_day"`

	// Assessment performance
	AvgAssessmentScore   float64 `json:"avg_assessment_score"`
	AssessmentsCompleted int     `json:"assessments_completed"`
	LateSubmissions      int     `json:"late_submissions"`
	AssessmentPassRate   float64 `json:"assessment_pass_rate"`

	// Demographics
	AgeBand          string `json:"age_band"`
	Gender           string `json:"gender"`
	Disability       string `json:"disability"`
	HighestEducation string `json:"highest_education"`
	Region           string `json:"region"`
	IMDBand          string `json:"imd_band"`

	// Course engagement
	NumPrevAttempts int `json:"num_prev_attempts"`
	StudiedCredits  int `json:"studied_credits"`

	// Temporal
	DaysSinceRegistration int     `json:"days_since_registration"`
	EngagementTrend       float64 `json:"engagement_trend"`
	DaysInactive          int     `json:"days_inactive"`

	// Behavioral patterns
	WeekendActivityRatio  float64 `json:"weekend_activity_ratio"`
	EveningActivityRatio  float64 `json:"evening_activity_ratio"`
	EngagementConsistency float64 `json:"engagement_consistency"`

	// Resource usage
	ContentViews      int `json:"content_views"`
	ResourceDownloads int `json:"resource_downloads"`
	ForumPosts        int `json:"forum_posts"`
	QuizAttempts      int `json:"quiz_attempts"`
}

// StudentInput is the raw per-student payload accepted by the learner API.
// Missing fields default during feature engineering, not here.
type StudentInput struct {
	StudentID string `json:"student_id"`

	TotalClicks     *int     `json:"total_clicks,omitempty"`
	ActiveDays      *int     `json:"active_days,omitempty"`
	AvgClicksPerDay *float64 `json:"avg_clicks_per_day,omitempty"`
	ClicksLastWeek  *int     `json:"clicks_last_week,omitempty"`

	AvgAssessmentScore   *float64 `json:"avg_assessment_score,omitempty"`
	AssessmentsCompleted *int     `json:"assessments_completed,omitempty"`
	LateSubmissions      *int     `json:"late_submissions,omitempty"`
	AssessmentPassRate   *float64 `json:"assessment_pass_rate,omitempty"`

	AgeBand          string `json:"age_band,omitempty"`
	Gender           string `json:"gender,omitempty"`
	Disability       string `json:"disability,omitempty"`
	HighestEducation string `json:"highest_education,omitempty"`
	Region           string `json:"region,omitempty"`
	IMDBand          string `json:"imd_band,omitempty"`

	NumPrevAttempts *int `json:"num_prev_attempts,omitempty"`
	StudiedCredits  *int `json:"studied_credits,omitempty"`

	DaysSinceRegistration *int     `json:"days_since_registration,omitempty"`
	EngagementTrend       *float64 `json:"engagement_trend,omitempty"`
	DaysInactive          *int     `json:"days_inactive,omitempty"`

	WeekendActivityRatio  *float64 `json:"weekend_activity_ratio,omitempty"`
	EveningActivityRatio  *float64 `json:"evening_activity_ratio,omitempty"`
	EngagementConsistency *float64 `json:"engagement_consistency,omitempty"`

	ContentViews      *int `json:"content_views,omitempty"`
	ResourceDownloads *int `json:"resource_downloads,omitempty"`
	ForumPosts        *int `json:"forum_posts,omitempty"`
	QuizAttempts      *int `json:"quiz_attempts,omitempty"`
}

// ProfileClassification is the profile classifier output for one student.
// Error carries the "collaborator unavailable" explanation when the
// classifier could not produce a signal.
type ProfileClassification struct {
	Profile          string             `json:"profile"`
	ProfileID        int                `json:"profile_id"`
	Confidence       float64            `json:"confidence"`
	AllProbabilities map[string]float64 `json:"all_probabilities,omitempty"`
	Error            string             `json:"error,omitempty"`
}

// OutcomePrediction is the outcome predictor output plus the derived risk.
type OutcomePrediction struct {
	Outcome          string             `json:"outcome"`
	OutcomeID        int                `json:"outcome_id"`
	Confidence       float64            `json:"confidence"`
	RiskLevel        RiskLevel          `json:"risk_level"`
	IsAtRisk         bool               `json:"is_at_risk"`
	AllProbabilities map[string]float64 `json:"all_probabilities,omitempty"`
	Error            string             `json:"error,omitempty"`
}

// RiskLevel is a five-point ordinal summarizing predicted-outcome severity.
type RiskLevel string

const (
	RiskVeryLow  RiskLevel = "Very Low"
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskVeryHigh RiskLevel = "Very High"
)

func (r RiskLevel) AtRisk() bool {
	return r == RiskHigh || r == RiskVeryHigh
}

type RecommendationPriority string

const (
	PriorityLow      RecommendationPriority = "low"
	PriorityHigh     RecommendationPriority = "high"
	PriorityCritical RecommendationPriority = "critical"
)

type LearnerRecommendation struct {
	Type     string                 `json:"type"`
	Message  string                 `json:"message"`
	Priority RecommendationPriority `json:"priority"`
}

// StudentAnalysis is the full per-student result of the analysis pipeline.
type StudentAnalysis struct {
	StudentID         string                  `json:"student_id"`
	Profile           ProfileClassification   `json:"profile"`
	Outcome           OutcomePrediction       `json:"outcome"`
	Embedding         []float64               `json:"embedding,omitempty"`
	Recommendations   []LearnerRecommendation `json:"recommendations"`
	AnalysisTimestamp string                  `json:"analysis_timestamp"`
}

// BatchAnalysisResult records per-student outcomes; a failed item carries its
// error and does not abort siblings.
type BatchAnalysisResult struct {
	Results           []StudentAnalysis `json:"results"`
	Errors            []BatchItemError  `json:"errors,omitempty"`
	TotalProcessed    int               `json:"total_processed"`
	ProcessingSeconds float64           `json:"processing_time"`
}

type BatchItemError struct {
	StudentID string `json:"student_id"`
	Error     string `json:"error"`
}

type SimilarStudent struct {
	StudentID  string  `json:"student_id"`
	Similarity float64 `json:"similarity"`
}

// LearnerCourseRecommendation is one course suggested for a student based on
// their classified profile.
type LearnerCourseRecommendation struct {
	CourseID   string  `json:"course_id"`
	CourseName string  `json:"course_name"`
	University string  `json:"university"`
	Difficulty string  `json:"difficulty"`
	Rating     float64 `json:"rating"`
	MatchScore float64 `json:"match_score"`
	Reasoning  string  `json:"reasoning"`
}

// LearnerCourseRecommendations is the profile-conditioned recommendation
// payload for one student.
type LearnerCourseRecommendations struct {
	StudentProfile     string                        `json:"student_profile"`
	RiskLevel          RiskLevel                     `json:"risk_level"`
	RecommendedCourses []LearnerCourseRecommendation `json:"recommended_courses"`
}

// ModelStatus reports which learner-model heads are currently usable.
type ModelStatus struct {
	ModelsConfigured  bool `json:"models_configured"`
	ProfileClassifier bool `json:"profile_classifier"`
	OutcomePredictor  bool `json:"outcome_predictor"`
	EmbeddingPipeline bool `json:"embedding_pipeline"`
}
