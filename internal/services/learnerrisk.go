package services

import "github.com/coursekg/coursekg-backend/internal/domain"

// RiskForOutcome derives a five-point risk level from a predicted outcome and
// the predictor's confidence in it.
func RiskForOutcome(outcome string, confidence float64) domain.RiskLevel {
	switch outcome {
	case "Fail", "Withdrawn":
		switch {
		case confidence > 0.75:
			return domain.RiskVeryHigh
		case confidence > 0.5:
			return domain.RiskHigh
		default:
			return domain.RiskModerate
		}
	case "Pass":
		if confidence < 0.4 {
			return domain.RiskModerate
		}
		return domain.RiskLow
	default: // Distinction
		return domain.RiskVeryLow
	}
}

// RiskRecommendations emits the advisory list for one student, in fixed
// order: profile-based, then risk-based, then outcome-based. Messages may
// repeat a theme; consumers render them as-is.
func RiskRecommendations(profile, outcome string, risk domain.RiskLevel) []domain.LearnerRecommendation {
	recs := []domain.LearnerRecommendation{}

	switch profile {
	case "Fast Learner":
		recs = append(recs, domain.LearnerRecommendation{
			Type:     "course_difficulty",
			Message:  "Consider enrolling in Advanced level courses to challenge yourself",
			Priority: domain.PriorityLow,
		})
	case "Struggling":
		recs = append(recs,
			domain.LearnerRecommendation{
				Type:     "support",
				Message:  "Beginner courses recommended with additional tutorial support",
				Priority: domain.PriorityHigh,
			},
			domain.LearnerRecommendation{
				Type:     "engagement",
				Message:  "Set daily learning goals to improve engagement",
				Priority: domain.PriorityHigh,
			})
	case "Disengaged":
		recs = append(recs,
			domain.LearnerRecommendation{
				Type:     "intervention",
				Message:  "Immediate intervention needed - contact student advisor",
				Priority: domain.PriorityCritical,
			},
			domain.LearnerRecommendation{
				Type:     "engagement",
				Message:  "Interactive and project-based courses may improve engagement",
				Priority: domain.PriorityHigh,
			})
	}

	if risk.AtRisk() {
		recs = append(recs,
			domain.LearnerRecommendation{
				Type:     "early_warning",
				Message:  "Student is at high risk - schedule check-in meeting",
				Priority: domain.PriorityCritical,
			},
			domain.LearnerRecommendation{
				Type:     "course_load",
				Message:  "Consider reducing course load or providing additional support",
				Priority: domain.PriorityHigh,
			})
	}

	if outcome == "Withdrawn" {
		recs = append(recs, domain.LearnerRecommendation{
			Type:     "retention",
			Message:  "High withdrawal risk - engage with retention team",
			Priority: domain.PriorityCritical,
		})
	}

	return recs
}

// EngineerFeatures fills a full feature set from a raw student payload,
// applying the training-time defaults for anything missing. Numeric fields
// default to zero, demographics to the training cohort's modal values.
func EngineerFeatures(input domain.StudentInput) domain.StudentFeatures {
	f := domain.StudentFeatures{
		TotalClicks:           intOr(input.TotalClicks, 0),
		ActiveDays:            intOr(input.ActiveDays, 0),
		AvgClicksPerDay:       floatOr(input.AvgClicksPerDay, 0),
		ClicksLastWeek:        intOr(input.ClicksLastWeek, 0),
		AvgAssessmentScore:    floatOr(input.AvgAssessmentScore, 0),
		AssessmentsCompleted:  intOr(input.AssessmentsCompleted, 0),
		LateSubmissions:       intOr(input.LateSubmissions, 0),
		AssessmentPassRate:    floatOr(input.AssessmentPassRate, 0),
		AgeBand:               stringOr(input.AgeBand, "0-35"),
		Gender:                stringOr(input.Gender, "M"),
		Disability:            stringOr(input.Disability, "N"),
		HighestEducation:      stringOr(input.HighestEducation, "A Level or Equivalent"),
		Region:                stringOr(input.Region, "Unknown"),
		IMDBand:               stringOr(input.IMDBand, "50-75%"),
		NumPrevAttempts:       intOr(input.NumPrevAttempts, 0),
		StudiedCredits:        intOr(input.StudiedCredits, 0),
		DaysSinceRegistration: intOr(input.DaysSinceRegistration, 0),
		EngagementTrend:       floatOr(input.EngagementTrend, 0),
		DaysInactive:          intOr(input.DaysInactive, 0),
		WeekendActivityRatio:  floatOr(input.WeekendActivityRatio, 0),
		EveningActivityRatio:  floatOr(input.EveningActivityRatio, 0),
		EngagementConsistency: floatOr(input.EngagementConsistency, 0),
		ContentViews:          intOr(input.ContentViews, 0),
		ResourceDownloads:     intOr(input.ResourceDownloads, 0),
		ForumPosts:            intOr(input.ForumPosts, 0),
		QuizAttempts:          intOr(input.QuizAttempts, 0),
	}

	if f.ActiveDays > 0 {
		f.ClicksPerActiveDay = float64(f.TotalClicks) / float64(f.ActiveDays)
	}
	return f
}

func intOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

func floatOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
