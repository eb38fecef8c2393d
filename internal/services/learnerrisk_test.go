package services

import (
	"testing"

	"github.com/coursekg/coursekg-backend/internal/domain"
)

func TestRiskForOutcome(t *testing.T) {
	tests := []struct {
		outcome    string
		confidence float64
		want       domain.RiskLevel
	}{
		{"Fail", 0.80, domain.RiskVeryHigh},
		{"Fail", 0.75, domain.RiskHigh},
		{"Fail", 0.60, domain.RiskHigh},
		{"Fail", 0.50, domain.RiskModerate},
		{"Fail", 0.30, domain.RiskModerate},
		{"Withdrawn", 0.90, domain.RiskVeryHigh},
		{"Withdrawn", 0.55, domain.RiskHigh},
		{"Withdrawn", 0.40, domain.RiskModerate},
		{"Pass", 0.39, domain.RiskModerate},
		{"Pass", 0.40, domain.RiskLow},
		{"Pass", 0.95, domain.RiskLow},
		{"Distinction", 0.10, domain.RiskVeryLow},
		{"Distinction", 0.99, domain.RiskVeryLow},
	}

	for _, tt := range tests {
		got := RiskForOutcome(tt.outcome, tt.confidence)
		if got != tt.want {
			t.Fatalf("RiskForOutcome(%q, %v) = %q, want %q", tt.outcome, tt.confidence, got, tt.want)
		}
	}
}

func TestRiskLevelAtRisk(t *testing.T) {
	atRisk := []domain.RiskLevel{domain.RiskHigh, domain.RiskVeryHigh}
	for _, r := range atRisk {
		if !r.AtRisk() {
			t.Fatalf("%q should be at risk", r)
		}
	}
	notAtRisk := []domain.RiskLevel{domain.RiskVeryLow, domain.RiskLow, domain.RiskModerate}
	for _, r := range notAtRisk {
		if r.AtRisk() {
			t.Fatalf("%q should not be at risk", r)
		}
	}
}

func TestRiskRecommendationsOrderAndContent(t *testing.T) {
	t.Run("disengaged withdrawn very high risk", func(t *testing.T) {
		recs := RiskRecommendations("Disengaged", "Withdrawn", domain.RiskVeryHigh)

		wantTypes := []string{"intervention", "engagement", "early_warning", "course_load", "retention"}
		if len(recs) != len(wantTypes) {
			t.Fatalf("got %d recommendations, want %d: %+v", len(recs), len(wantTypes), recs)
		}
		for i, wantType := range wantTypes {
			if recs[i].Type != wantType {
				t.Fatalf("position %d: type %q, want %q", i, recs[i].Type, wantType)
			}
		}
		if recs[0].Priority != domain.PriorityCritical {
			t.Fatalf("intervention priority = %q", recs[0].Priority)
		}
		if recs[4].Message != "High withdrawal risk - engage with retention team" {
			t.Fatalf("retention message = %q", recs[4].Message)
		}
	})

	t.Run("fast learner low risk", func(t *testing.T) {
		recs := RiskRecommendations("Fast Learner", "Distinction", domain.RiskVeryLow)
		if len(recs) != 1 {
			t.Fatalf("got %d recommendations, want 1: %+v", len(recs), recs)
		}
		if recs[0].Type != "course_difficulty" || recs[0].Priority != domain.PriorityLow {
			t.Fatalf("unexpected recommendation: %+v", recs[0])
		}
	})

	t.Run("struggling keeps both advisories", func(t *testing.T) {
		recs := RiskRecommendations("Struggling", "Pass", domain.RiskLow)
		if len(recs) != 2 {
			t.Fatalf("got %d recommendations, want 2: %+v", len(recs), recs)
		}
		if recs[0].Type != "support" || recs[1].Type != "engagement" {
			t.Fatalf("order wrong: %+v", recs)
		}
	})

	t.Run("balanced not at risk yields none", func(t *testing.T) {
		recs := RiskRecommendations("Balanced", "Pass", domain.RiskLow)
		if len(recs) != 0 {
			t.Fatalf("got %d recommendations, want 0: %+v", len(recs), recs)
		}
	})
}

func TestEngineerFeaturesDefaults(t *testing.T) {
	f := EngineerFeatures(domain.StudentInput{StudentID: "s1"})

	if f.TotalClicks != 0 || f.ActiveDays != 0 || f.AvgAssessmentScore != 0 {
		t.Fatalf("numeric defaults wrong: %+v", f)
	}
	if f.AgeBand != "0-35" || f.Gender != "M" || f.Disability != "N" {
		t.Fatalf("demographic defaults wrong: %+v", f)
	}
	if f.HighestEducation != "A Level or Equivalent" || f.Region != "Unknown" || f.IMDBand != "50-75%" {
		t.Fatalf("demographic defaults wrong: %+v", f)
	}
	if f.ClicksPerActiveDay != 0 {
		t.Fatalf("clicks_per_active_day = %v, want 0 for zero active days", f.ClicksPerActiveDay)
	}
}

func TestEngineerFeaturesDerived(t *testing.T) {
	clicks := 300
	days := 60
	f := EngineerFeatures(domain.StudentInput{
		StudentID:   "s1",
		TotalClicks: &clicks,
		ActiveDays:  &days,
	})
	if f.ClicksPerActiveDay != 5 {
		t.Fatalf("clicks_per_active_day = %v, want 5", f.ClicksPerActiveDay)
	}

	// Explicit zeros are respected, not replaced by defaults.
	zero := 0
	f = EngineerFeatures(domain.StudentInput{StudentID: "s1", TotalClicks: &zero})
	if f.TotalClicks != 0 {
		t.Fatalf("explicit zero lost: %v", f.TotalClicks)
	}
}
