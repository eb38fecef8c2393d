package services

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coursekg/coursekg-backend/internal/domain"
)

// DomainOther is returned when no registered domain keyword matches.
const DomainOther = "Other"

//go:embed domains.yaml
var domainsYAML []byte

type domainEntry struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type domainsFile struct {
	Domains []domainEntry `yaml:"domains"`
}

// DomainRegistry classifies courses into broad subject domains by counting
// keyword hits over a course's name, description and skills.
type DomainRegistry struct {
	entries []domainEntry
}

// NewDomainRegistry loads the embedded keyword registry.
func NewDomainRegistry() (*DomainRegistry, error) {
	var file domainsFile
	if err := yaml.Unmarshal(domainsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse domain registry: %w", err)
	}
	if len(file.Domains) == 0 {
		return nil, fmt.Errorf("domain registry is empty")
	}
	// Keywords match as declared against the lowercased course text, so
	// uppercase entries like "MBA" and "CAD" never fire. Folding them would
	// let "mba" match inside "combat" and "cad" inside "academic".
	return &DomainRegistry{entries: file.Domains}, nil
}

// InferDomain scores each registered domain by substring keyword hits over
// the lowercased skills, description and name. Ties go to the domain listed
// first in the registry.
func (r *DomainRegistry) InferDomain(course domain.Course) string {
	blob := strings.ToLower(strings.Join([]string{
		strings.Join(course.Skills, " "),
		course.Description,
		course.Name,
	}, " "))

	best := DomainOther
	bestScore := 0
	for _, entry := range r.entries {
		score := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(blob, kw) {
				score++
			}
		}
		if score > bestScore {
			best = entry.Name
			bestScore = score
		}
	}
	return best
}

// PrimaryDomain returns the most common domain among courses. Ties go to the
// domain appearing earliest in the registry, then to DomainOther.
func (r *DomainRegistry) PrimaryDomain(courses []domain.Course) string {
	if len(courses) == 0 {
		return DomainOther
	}

	counts := make(map[string]int, len(courses))
	for _, c := range courses {
		counts[r.InferDomain(c)]++
	}

	best := DomainOther
	bestCount := counts[DomainOther]
	for _, entry := range r.entries {
		if n := counts[entry.Name]; n > bestCount {
			best = entry.Name
			bestCount = n
		}
	}
	return best
}
