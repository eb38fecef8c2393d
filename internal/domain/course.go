package domain

import "strings"

// Course is one node of the course knowledge graph. The ID is a stable hash
// of name+university assigned at import time; everything else is immutable
// after import except rating and skill additions.
type Course struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Rating      float64  `json:"rating"`
	University  string   `json:"university,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Skills      []string `json:"skills"`
}

// CourseDetail is a Course enriched with its similar-course neighborhood.
type CourseDetail struct {
	Course
	SimilarCourses []Course `json:"similar_courses,omitempty"`
}

type Skill struct {
	Name        string `json:"name"`
	CourseCount int    `json:"course_count,omitempty"`
}

type University struct {
	Name        string  `json:"name"`
	CourseCount int     `json:"course_count,omitempty"`
	AvgRating   float64 `json:"avg_rating,omitempty"`
}

// Difficulty labels as stored on DifficultyLevel nodes.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
	DifficultyConversant   = "Conversant"
)

// DifficultyOrder ranks a difficulty label for sequencing. Conversant is
// treated as Intermediate; any unrecognized label also falls back to the
// Intermediate rank.
func DifficultyOrder(label string) int {
	switch strings.TrimSpace(label) {
	case DifficultyBeginner:
		return 1
	case DifficultyAdvanced:
		return 3
	default:
		return 2
	}
}

// PathTierLabels in ascending difficulty order.
const (
	TierBeginner     = "beginner"
	TierIntermediate = "intermediate"
	TierAdvanced     = "advanced"
)

// TierForDifficulty maps a stored difficulty label to its learning-path tier.
func TierForDifficulty(label string) string {
	switch DifficultyOrder(label) {
	case 1:
		return TierBeginner
	case 3:
		return TierAdvanced
	default:
		return TierIntermediate
	}
}

// SearchResult is a Course plus its semantic-search similarity score.
// Ephemeral; produced per query.
type SearchResult struct {
	Course
	SimilarityScore float64 `json:"similarity_score"`
}

// LearningPath groups ranked search results into difficulty tiers. Order
// within each tier is the order of the input ranking.
type LearningPath struct {
	Beginner     []SearchResult `json:"beginner"`
	Intermediate []SearchResult `json:"intermediate"`
	Advanced     []SearchResult `json:"advanced"`
}

type LearningPathSummary struct {
	TotalCourses      int `json:"total_courses"`
	BeginnerCount     int `json:"beginner_count"`
	IntermediateCount int `json:"intermediate_count"`
	AdvancedCount     int `json:"advanced_count"`
	CrossDomainCount  int `json:"cross_domain_count,omitempty"`
}

// CrossDomainCourse is a search result from outside the learner's primary
// domain, kept because it is still relevant, with a human-readable reason.
type CrossDomainCourse struct {
	Course          string  `json:"course"`
	ID              string  `json:"id"`
	URL             string  `json:"url"`
	Domain          string  `json:"domain"`
	Rating          float64 `json:"rating"`
	Difficulty      string  `json:"difficulty"`
	SimilarityScore float64 `json:"similarity_score"`
	SkillOverlap    float64 `json:"skill_overlap"`
	Reason          string  `json:"reason"`
}

// AISearchResponse is the structured learning path returned by the
// semantic-search orchestration.
type AISearchResponse struct {
	LearningPath       LearningPath        `json:"learning_path"`
	CrossDomainCourses []CrossDomainCourse `json:"cross_domain_courses"`
	Summary            LearningPathSummary `json:"summary"`
}

type GraphStats struct {
	TotalCourses       int          `json:"total_courses"`
	TotalUniversities  int          `json:"total_universities"`
	TotalSkills        int          `json:"total_skills"`
	TotalRelationships int          `json:"total_relationships"`
	AvgRating          float64      `json:"avg_rating"`
	TopSkills          []Skill      `json:"top_skills"`
	TopUniversities    []University `json:"top_universities"`
}
