package services

import "strings"

// SkillOverlap is the Jaccard ratio between two skill lists, compared
// case-insensitively. Either list empty gives 0.
func SkillOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := lowerSet(a)
	setB := lowerSet(b)

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// SharedSkills returns the skills from course that also appear in core,
// lowercased, preserving course order.
func SharedSkills(course []string, core map[string]struct{}) []string {
	var shared []string
	for _, s := range course {
		lower := strings.ToLower(strings.TrimSpace(s))
		if _, ok := core[lower]; ok {
			shared = append(shared, lower)
		}
	}
	return shared
}

func lowerSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return set
}
