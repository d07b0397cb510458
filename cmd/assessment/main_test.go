package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/types"
)

func resetFlags() {
	configPath = ""
	scoreResponses, scoreJSON = "", false
	reportResponses, reportCompany = "", ""
	reportSize, reportCategory, reportVariant = "Mid-Market", "SaaS", ""
	reportPretty, reportPrompt = false, false
}

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeResponses(t *testing.T, body any) string {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "responses.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func uniform(value int) map[string]int {
	raw := map[string]int{}
	for _, id := range catalog.Default().QuestionIDs() {
		raw[id] = value
	}
	return raw
}

func TestScoreCommand_JSON(t *testing.T) {
	path := writeResponses(t, map[string]any{"responses": uniform(2)})

	out, _, err := executeCommand(t, "score", "--responses", path, "--json")
	require.NoError(t, err)

	var card types.ScoreResponse
	require.NoError(t, json.Unmarshal([]byte(out), &card))
	assert.Equal(t, 98, card.Scores.Total)
	assert.Equal(t, "scalable", card.Tier.ID)
	assert.Equal(t, 100, card.Percent)
}

func TestScoreCommand_BareMapScorecard(t *testing.T) {
	path := writeResponses(t, map[string]int{"f1": 2, "f2": 1})

	out, _, err := executeCommand(t, "score", "--responses", path)
	require.NoError(t, err)

	assert.Contains(t, out, "REVOPS MATURITY SCORECARD")
	assert.Contains(t, out, "47 of 49 questions unanswered")
}

func TestScoreCommand_Errors(t *testing.T) {
	_, _, err := executeCommand(t, "score")
	assert.Error(t, err)

	_, _, err = executeCommand(t, "score", "--responses", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeResponses(t, map[string]int{"f1": 9})
	_, _, err = executeCommand(t, "score", "--responses", path)
	var respErr *types.ResponseError
	assert.ErrorAs(t, err, &respErr)
}

func TestReportCommand_Fallback(t *testing.T) {
	path := writeResponses(t, uniform(1))

	out, stderr, err := executeCommand(t, "report", "--responses", path, "--company", "Acme")
	require.NoError(t, err)

	var rpt types.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rpt))
	assert.True(t, rpt.IsComplete())
	assert.Contains(t, stderr, "unconfigured")
}

func TestReportCommand_Prompt(t *testing.T) {
	path := writeResponses(t, uniform(0))

	out, _, err := executeCommand(t, "report", "--responses", path, "--company", "Acme", "--variant", "executive", "--prompt")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "revenue leadership")
}

func TestReportCommand_RejectsIncomplete(t *testing.T) {
	path := writeResponses(t, map[string]int{"f1": 1})

	_, _, err := executeCommand(t, "report", "--responses", path, "--company", "Acme")
	var incomplete *types.IncompleteError
	assert.ErrorAs(t, err, &incomplete)
}

func TestReportCommand_RejectsUnknownVariant(t *testing.T) {
	path := writeResponses(t, uniform(1))

	_, _, err := executeCommand(t, "report", "--responses", path, "--company", "Acme", "--variant", "casual")
	assert.Error(t, err)
}
