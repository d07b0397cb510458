package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/revops-assessment/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintScorecard(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	foundations := types.DimensionScore{SectionID: "foundations", Title: "GTM Foundations", Score: 12, Max: 12, Percent: 100}
	governance := types.DimensionScore{SectionID: "governance", Title: "Governance", Score: 0, Max: 10, Percent: 0}
	card := &types.ScoreResponse{
		Scores:     types.ScoreSet{Sections: map[string]int{"foundations": 12, "governance": 0}, Total: 12},
		MaxScore:   22,
		Percent:    55,
		Tier:       types.Tier{Label: "Emerging Revenue Operations"},
		Strongest:  foundations,
		Weakest:    governance,
		Dimensions: []types.DimensionScore{foundations, governance},
	}

	p.PrintScorecard(card)
	output := buf.String()

	assert.Contains(t, output, "REVOPS MATURITY SCORECARD")
	assert.Contains(t, output, "12/22 (55%)")
	assert.Contains(t, output, "Emerging Revenue Operations")
	assert.Contains(t, output, strings.Repeat("█", barWidth))
	assert.Contains(t, output, "Strongest: GTM Foundations (100%)")
	assert.Contains(t, output, "Weakest:   Governance (0%)")
}

func TestPrintScorecard_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScorecard(nil)
	assert.Empty(t, buf.String())
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &types.Report{
		Summary: "Acme has strong foundations but governance needs an owner before the next planning cycle.",
		Risks:   []types.Insight{{Title: "No owner", Desc: "Field changes ship without review."}, {Title: "Drift", Desc: "Definitions diverge."}},
		Wins:    []types.Insight{{Title: "Council", Desc: "Stand up a change council."}, {Title: "Audit", Desc: "Audit fields quarterly."}},
	}

	p.PrintReport(report)
	output := buf.String()

	assert.Contains(t, output, "ANALYSIS")
	assert.Contains(t, output, "⚠ No owner")
	assert.Contains(t, output, "✓ Audit")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", truncate(strings.Repeat("é", 20), 10))
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", barWidth), bar(0, 10))
	assert.Equal(t, strings.Repeat("█", 10)+strings.Repeat("░", 10), bar(5, 10))
	assert.Equal(t, strings.Repeat("░", barWidth), bar(0, 0))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrap("one two three", 8))
	assert.Equal(t, "  one\n  two", wrap("one two", 4, "  "))
	assert.Equal(t, "", wrap("", 10))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", "json")
	assert.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	logger, err = NewLogger("warn", "console")
	assert.NoError(t, err)
	assert.False(t, logger.Core().Enabled(0))
}
