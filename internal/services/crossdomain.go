package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coursekg/coursekg-backend/internal/domain"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

// CrossDomainThresholds tune which out-of-domain courses are kept.
type CrossDomainThresholds struct {
	Limit           int
	MinSimilarity   float64
	MinSkillOverlap float64
}

// DefaultCrossDomainThresholds matches the tuning the discovery feature
// shipped with.
func DefaultCrossDomainThresholds() CrossDomainThresholds {
	return CrossDomainThresholds{
		Limit:           3,
		MinSimilarity:   0.7,
		MinSkillOverlap: 0.15,
	}
}

// CrossDomainService surfaces courses from outside a learning path's primary
// domain that are still relevant by semantic similarity or skill overlap.
type CrossDomainService struct {
	registry   *DomainRegistry
	thresholds CrossDomainThresholds
	log        *logger.Logger
}

func NewCrossDomainService(registry *DomainRegistry, thresholds CrossDomainThresholds, log *logger.Logger) (*CrossDomainService, error) {
	if registry == nil {
		return nil, fmt.Errorf("cross-domain service: domain registry required")
	}
	if log == nil {
		return nil, fmt.Errorf("cross-domain service: logger required")
	}
	if thresholds.Limit <= 0 {
		thresholds = DefaultCrossDomainThresholds()
	}
	return &CrossDomainService{
		registry:   registry,
		thresholds: thresholds,
		log:        log.With("service", "CrossDomainService"),
	}, nil
}

// Find returns up to Limit courses from allResults whose inferred domain
// differs from the core courses' primary domain and that clear either the
// similarity or the skill-overlap threshold. Candidates are ordered by
// similarity plus overlap, descending. Never fails: an enrichment step that
// goes wrong returns an empty slice.
func (s *CrossDomainService) Find(core []domain.SearchResult, allResults []domain.SearchResult) []domain.CrossDomainCourse {
	if len(core) == 0 || len(allResults) == 0 {
		return []domain.CrossDomainCourse{}
	}

	coreCourses := make([]domain.Course, len(core))
	coreIDs := make(map[string]struct{}, len(core))
	coreSkills := make(map[string]struct{})
	for i, r := range core {
		coreCourses[i] = r.Course
		coreIDs[r.ID] = struct{}{}
		for _, skill := range r.Skills {
			coreSkills[strings.ToLower(strings.TrimSpace(skill))] = struct{}{}
		}
	}
	primaryDomain := s.registry.PrimaryDomain(coreCourses)

	coreSkillList := make([]string, 0, len(coreSkills))
	for skill := range coreSkills {
		coreSkillList = append(coreSkillList, skill)
	}

	candidates := make([]domain.CrossDomainCourse, 0, len(allResults))
	for _, result := range allResults {
		if _, ok := coreIDs[result.ID]; ok {
			continue
		}
		courseDomain := s.registry.InferDomain(result.Course)
		if courseDomain == primaryDomain {
			continue
		}

		overlap := SkillOverlap(coreSkillList, result.Skills)
		if result.SimilarityScore < s.thresholds.MinSimilarity && overlap < s.thresholds.MinSkillOverlap {
			continue
		}

		candidates = append(candidates, domain.CrossDomainCourse{
			Course:          result.Name,
			ID:              result.ID,
			URL:             result.URL,
			Domain:          courseDomain,
			Rating:          result.Rating,
			Difficulty:      result.Difficulty,
			SimilarityScore: result.SimilarityScore,
			SkillOverlap:    overlap,
			Reason:          s.explain(courseDomain, primaryDomain, result.SimilarityScore, overlap, result.Skills, coreSkills),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SimilarityScore+candidates[i].SkillOverlap >
			candidates[j].SimilarityScore+candidates[j].SkillOverlap
	})

	if len(candidates) > s.thresholds.Limit {
		candidates = candidates[:s.thresholds.Limit]
	}

	s.log.Info("cross-domain courses found",
		"count", len(candidates),
		"primary_domain", primaryDomain)
	return candidates
}

func (s *CrossDomainService) explain(courseDomain, primaryDomain string, similarity, overlap float64, courseSkills []string, coreSkills map[string]struct{}) string {
	shared := SharedSkills(courseSkills, coreSkills)

	switch {
	case overlap > 0.3 && len(shared) > 0:
		return fmt.Sprintf("Applies %s concepts in %s context (shared: %s)",
			primaryDomain, courseDomain, strings.Join(head(shared, 3), ", "))
	case similarity > 0.8:
		return fmt.Sprintf("Highly relevant %s perspective on similar topics", courseDomain)
	case len(shared) > 0:
		return fmt.Sprintf("Complementary %s skills (%s)",
			courseDomain, strings.Join(head(shared, 2), ", "))
	default:
		return fmt.Sprintf("Related %s concepts with transferable knowledge", courseDomain)
	}
}

func head(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	return items[:n]
}
