// Package scoring turns questionnaire responses into section totals and maturity tiers.
package scoring

import (
	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/types"
)

// Score sums response values per section. Unanswered questions contribute 0.
func Score(c *catalog.Catalog, responses types.Responses) types.ScoreSet {
	sections := c.Sections()
	scores := types.ScoreSet{Sections: make(map[string]int, len(sections))}

	for _, section := range sections {
		sectionScore := 0
		for _, q := range section.Questions {
			sectionScore += responses[q.ID]
		}
		scores.Sections[section.ID] = sectionScore
		scores.Total += sectionScore
	}

	return scores
}

// Percent returns score as a rounded percentage of maxScore.
func Percent(score, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return (score*100 + maxScore/2) / maxScore
}
