package services

import (
	"sort"

	"github.com/coursekg/coursekg-backend/internal/data/graph"
	"github.com/coursekg/coursekg-backend/internal/domain"
)

// RankSimilar orders candidates by shared-skill count, breaking ties by
// rating. The sort is stable so graph order decides remaining ties.
func RankSimilar(candidates []graph.CandidateCourse) []domain.Course {
	ranked := make([]graph.CandidateCourse, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].SharedSkills != ranked[j].SharedSkills {
			return ranked[i].SharedSkills > ranked[j].SharedSkills
		}
		return ranked[i].Course.Rating > ranked[j].Course.Rating
	})

	out := make([]domain.Course, len(ranked))
	for i, c := range ranked {
		out[i] = c.Course
	}
	return out
}

// RankPopular orders courses by rating, breaking ties by breadth of skills
// taught. Stable for the same reason as RankSimilar.
func RankPopular(courses []domain.Course) []domain.Course {
	ranked := make([]domain.Course, len(courses))
	copy(ranked, courses)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return len(ranked[i].Skills) > len(ranked[j].Skills)
	})
	return ranked
}
