// Package ranking orders assessment dimensions by normalized score.
package ranking

import (
	"sort"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/scoring"
	"github.com/jonathan/revops-assessment/internal/types"
)

// RankDimensions normalizes each section score against its own maximum and
// orders sections from strongest to weakest.
//
// Ties keep catalog order. Strongest is the earliest-declared section with the
// highest percentage and Weakest is the earliest-declared section with the
// lowest, so a uniform score set reports the first section in both slots.
func RankDimensions(c *catalog.Catalog, scores types.ScoreSet) types.Ranking {
	sections := c.Sections()
	dims := make([]types.DimensionScore, 0, len(sections))
	for _, section := range sections {
		score := scores.Section(section.ID)
		dims = append(dims, types.DimensionScore{
			SectionID: section.ID,
			Title:     section.Title,
			Score:     score,
			Max:       section.MaxScore(),
			Percent:   scoring.Percent(score, section.MaxScore()),
		})
	}

	weakest := dims[0]
	for _, d := range dims[1:] {
		if compareRatio(d, weakest) < 0 {
			weakest = d
		}
	}

	// Sort by normalized score (descending)
	sort.SliceStable(dims, func(i, j int) bool {
		return compareRatio(dims[i], dims[j]) > 0
	})

	return types.Ranking{
		Dimensions: dims,
		Strongest:  dims[0],
		Weakest:    weakest,
	}
}

// compareRatio compares a.Score/a.Max with b.Score/b.Max exactly, returning
// -1, 0 or 1. Rounded percentages are not used so 5/12 and 4/10 stay distinct.
func compareRatio(a, b types.DimensionScore) int {
	left := a.Score * b.Max
	right := b.Score * a.Max
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}
