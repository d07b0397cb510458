package report

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/prompts"
	"github.com/jonathan/revops-assessment/internal/scoring"
	"github.com/jonathan/revops-assessment/internal/types"
)

const (
	promptFile = "report.json"
	// maxLeadFieldRunes bounds user-supplied text embedded in prompts and fallbacks.
	maxLeadFieldRunes = 120
)

// templates holds the prompt and fallback templates for one variant.
type templates struct {
	prompt    string
	summary   string
	riskTitle [2]string
	riskDesc  [2]string
	winTitle  [2]string
	winDesc   [2]string
}

func loadTemplates(variant string) (*templates, error) {
	get := func(key string) (string, error) {
		return prompts.GetVariant(promptFile, key, variant)
	}

	var t templates
	var err error
	if t.prompt, err = get("analysis"); err != nil {
		return nil, err
	}
	if t.summary, err = get("fallback.summary"); err != nil {
		return nil, err
	}
	for i := 0; i < types.ReportInsightCount; i++ {
		n := strconv.Itoa(i + 1)
		if t.riskTitle[i], err = get("fallback.risk" + n + ".title"); err != nil {
			return nil, err
		}
		if t.riskDesc[i], err = get("fallback.risk" + n + ".desc"); err != nil {
			return nil, err
		}
		if t.winTitle[i], err = get("fallback.win" + n + ".title"); err != nil {
			return nil, err
		}
		if t.winDesc[i], err = get("fallback.win" + n + ".desc"); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// SanitizeField collapses whitespace and control characters to single spaces
// and truncates the result to maxLeadFieldRunes.
func SanitizeField(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxLeadFieldRunes {
		s = strings.TrimSpace(string(r[:maxLeadFieldRunes]))
	}
	return s
}

// templateData builds the placeholder values shared by the prompt and the fallback.
func templateData(c *catalog.Catalog, in Input) map[string]string {
	globalMax := c.GlobalMax()

	var lines []string
	for _, section := range c.Sections() {
		lines = append(lines, fmt.Sprintf("- %s: %d/%d", section.Title, in.Scores.Section(section.ID), section.MaxScore()))
	}

	return map[string]string{
		"Company":        SanitizeField(in.Lead.Company),
		"Size":           SanitizeField(in.Lead.Size),
		"Category":       SanitizeField(in.Lead.Category),
		"Total":          strconv.Itoa(in.Scores.Total),
		"Max":            strconv.Itoa(globalMax),
		"Percent":        strconv.Itoa(scoring.Percent(in.Scores.Total, globalMax)),
		"Tier":           in.Tier.Label,
		"SectionScores":  strings.Join(lines, "\n"),
		"Strongest":      in.Strongest.Title,
		"StrongestScore": strconv.Itoa(in.Strongest.Score),
		"StrongestMax":   strconv.Itoa(in.Strongest.Max),
		"Weakest":        in.Weakest.Title,
		"WeakestScore":   strconv.Itoa(in.Weakest.Score),
		"WeakestMax":     strconv.Itoa(in.Weakest.Max),
	}
}

func (t *templates) buildPrompt(data map[string]string) string {
	return prompts.Format(t.prompt, data)
}

// fallback renders the deterministic report. It never touches the network.
func (t *templates) fallback(data map[string]string) types.Report {
	report := types.Report{
		Summary: prompts.Format(t.summary, data),
		Risks:   make([]types.Insight, types.ReportInsightCount),
		Wins:    make([]types.Insight, types.ReportInsightCount),
	}
	for i := 0; i < types.ReportInsightCount; i++ {
		report.Risks[i] = types.Insight{Title: prompts.Format(t.riskTitle[i], data), Desc: prompts.Format(t.riskDesc[i], data)}
		report.Wins[i] = types.Insight{Title: prompts.Format(t.winTitle[i], data), Desc: prompts.Format(t.winDesc[i], data)}
	}
	return report
}
