package services

import (
	"testing"

	"github.com/coursekg/coursekg-backend/internal/domain"
)

func TestInferDomain(t *testing.T) {
	registry, err := NewDomainRegistry()
	if err != nil {
		t.Fatalf("NewDomainRegistry: %v", err)
	}

	tests := []struct {
		name   string
		course domain.Course
		want   string
	}{
		{
			name: "programming course",
			course: domain.Course{
				Name:        "Intro to Python Programming",
				Description: "Learn coding and algorithms",
				Skills:      []string{"Python", "Software Engineering"},
			},
			want: "Computer Science",
		},
		{
			name: "health course",
			course: domain.Course{
				Name:        "Public Health Fundamentals",
				Description: "Epidemiology and clinical research for healthcare workers",
			},
			want: "Health & Medicine",
		},
		{
			name: "no keyword hits",
			course: domain.Course{
				Name:        "Underwater Basket Weaving",
				Description: "Weave baskets",
			},
			want: DomainOther,
		},
		{
			name: "keywords match as substrings of the blob",
			course: domain.Course{
				Name: "Thermodynamics of Electrical Circuits",
			},
			want: "Engineering",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := registry.InferDomain(tt.course); got != tt.want {
				t.Fatalf("InferDomain = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInferDomainTieBreaksByRegistrationOrder(t *testing.T) {
	registry, err := NewDomainRegistry()
	if err != nil {
		t.Fatalf("NewDomainRegistry: %v", err)
	}

	// One Computer Science keyword and one Mathematics keyword. Computer
	// Science registers first, so it wins the tie.
	course := domain.Course{Name: "calculus", Description: "coding"}
	if got := registry.InferDomain(course); got != "Computer Science" {
		t.Fatalf("tie-break: got %q, want Computer Science", got)
	}
}

func TestInferDomainKeepsUppercaseKeywordsInert(t *testing.T) {
	registry, err := NewDomainRegistry()
	if err != nil {
		t.Fatalf("NewDomainRegistry: %v", err)
	}

	tests := []struct {
		name   string
		course domain.Course
		want   string
	}{
		{
			// "academic" contains "cad"; a case-folded CAD keyword would
			// hand this to Engineering instead of Arts & Humanities.
			name:   "academic writing stays humanities",
			course: domain.Course{Name: "Academic Writing", Skills: []string{"Writing"}},
			want:   "Arts & Humanities",
		},
		{
			// "combat" contains "mba"; a case-folded MBA keyword would
			// hand this to Business.
			name:   "combat history stays humanities",
			course: domain.Course{Name: "Combat History", Skills: []string{"History"}},
			want:   "Arts & Humanities",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := registry.InferDomain(tt.course); got != tt.want {
				t.Fatalf("InferDomain = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrimaryDomain(t *testing.T) {
	registry, err := NewDomainRegistry()
	if err != nil {
		t.Fatalf("NewDomainRegistry: %v", err)
	}

	courses := []domain.Course{
		{Name: "Python coding with algorithms"},
		{Name: "Java software programming"},
		{Name: "Public health and medicine"},
	}
	if got := registry.PrimaryDomain(courses); got != "Computer Science" {
		t.Fatalf("PrimaryDomain = %q, want Computer Science", got)
	}

	if got := registry.PrimaryDomain(nil); got != DomainOther {
		t.Fatalf("PrimaryDomain(nil) = %q, want %q", got, DomainOther)
	}
}
