package scoring

import (
	"testing"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformResponses(c *catalog.Catalog, value int) types.Responses {
	responses := make(types.Responses)
	for _, id := range c.QuestionIDs() {
		responses[id] = value
	}
	return responses
}

func TestScore_AllMax(t *testing.T) {
	c := catalog.Default()
	scores := Score(c, uniformResponses(c, 2))

	assert.Equal(t, 98, scores.Total)
	for _, s := range c.Sections() {
		assert.Equal(t, s.MaxScore(), scores.Section(s.ID))
	}
}

func TestScore_AllZero(t *testing.T) {
	c := catalog.Default()
	scores := Score(c, uniformResponses(c, 0))

	assert.Equal(t, 0, scores.Total)
	assert.Len(t, scores.Sections, 8)
}

func TestScore_PartialTreatsMissingAsZero(t *testing.T) {
	c := catalog.Default()
	scores := Score(c, types.Responses{"f1": 2, "f2": 1, "g5": 2})

	assert.Equal(t, 3, scores.Section("foundations"))
	assert.Equal(t, 2, scores.Section("governance"))
	assert.Equal(t, 0, scores.Section("datamodel"))
	assert.Equal(t, 5, scores.Total)
}

func TestScore_TotalIsSumAndSectionsBounded(t *testing.T) {
	c := catalog.Default()
	ids := c.QuestionIDs()

	// Deterministic sweep over varied answer patterns.
	for seed := 0; seed < 50; seed++ {
		responses := make(types.Responses, len(ids))
		for i, id := range ids {
			responses[id] = (i*7 + seed*3) % 3
		}

		scores := Score(c, responses)
		sum := 0
		for _, s := range c.Sections() {
			v := scores.Section(s.ID)
			require.GreaterOrEqual(t, v, 0)
			require.LessOrEqual(t, v, s.MaxScore())
			sum += v
		}
		require.Equal(t, sum, scores.Total)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 100, Percent(12, 12))
	assert.Equal(t, 0, Percent(0, 10))
	assert.Equal(t, 67, Percent(8, 12))
	assert.Equal(t, 50, Percent(5, 10))
	assert.Equal(t, 0, Percent(3, 0))
}
