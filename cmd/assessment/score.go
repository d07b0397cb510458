package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/observability"
	"github.com/jonathan/revops-assessment/internal/pipeline"
	"github.com/jonathan/revops-assessment/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a responses file offline",
	Long:  "Scores a JSON file of questionnaire responses and prints the maturity tier, per-section scores and the strongest and weakest dimensions.",
	RunE:  runScore,
}

var (
	scoreResponses string
	scoreJSON      bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResponses, "responses", "r", "", "Path to responses JSON file (required)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the score as JSON instead of a scorecard")

	if err := scoreCmd.MarkFlagRequired("responses"); err != nil {
		panic(fmt.Sprintf("failed to mark responses flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	raw, err := readResponses(scoreResponses)
	if err != nil {
		return err
	}

	c := catalog.Default()
	responses, err := types.ParseResponses(raw, c)
	if err != nil {
		return err
	}

	card := pipeline.Evaluate(c, responses).ScoreResponse(c)
	out := cmd.OutOrStdout()

	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(card)
	}

	if missing := responses.Missing(c); len(missing) > 0 {
		fmt.Fprintf(out, "Note: %d of %d questions unanswered; they score 0.\n", len(missing), c.QuestionCount())
	}
	observability.NewPrinter(out).PrintScorecard(&card)
	return nil
}
