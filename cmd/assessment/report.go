package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/observability"
	"github.com/jonathan/revops-assessment/internal/pipeline"
	"github.com/jonathan/revops-assessment/internal/report"
	"github.com/jonathan/revops-assessment/internal/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compose the narrative report for a responses file",
	Long: "Scores a complete responses file and composes the summary, risks and wins. " +
		"Uses Gemini when GEMINI_API_KEY is set and the templated fallback otherwise.",
	RunE: runReport,
}

var (
	reportResponses string
	reportCompany   string
	reportSize      string
	reportCategory  string
	reportVariant   string
	reportPretty    bool
	reportPrompt    bool
)

func init() {
	reportCmd.Flags().StringVarP(&reportResponses, "responses", "r", "", "Path to responses JSON file (required)")
	reportCmd.Flags().StringVarP(&reportCompany, "company", "c", "", "Company name (required)")
	reportCmd.Flags().StringVar(&reportSize, "size", "Mid-Market", "Company size (SMB, Mid-Market, Enterprise)")
	reportCmd.Flags().StringVar(&reportCategory, "category", "SaaS", "Company category (SaaS, Hardware, DSO, Other)")
	reportCmd.Flags().StringVar(&reportVariant, "variant", "", "Report variant: standard or executive (overrides config)")
	reportCmd.Flags().BoolVar(&reportPretty, "pretty", false, "Print a formatted report instead of JSON")
	reportCmd.Flags().BoolVar(&reportPrompt, "prompt", false, "Print the generation prompt and exit")

	if err := reportCmd.MarkFlagRequired("responses"); err != nil {
		panic(fmt.Sprintf("failed to mark responses flag as required: %v", err))
	}
	if err := reportCmd.MarkFlagRequired("company"); err != nil {
		panic(fmt.Sprintf("failed to mark company flag as required: %v", err))
	}

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if reportVariant != "" {
		cfg.LLM.Variant = reportVariant
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	raw, err := readResponses(reportResponses)
	if err != nil {
		return err
	}
	c := catalog.Default()
	responses, err := types.ParseCompleteResponses(raw, c)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	composer, closeComposer, err := newComposer(ctx, cfg, c, logger)
	if err != nil {
		return err
	}
	defer closeComposer()

	eval := pipeline.Evaluate(c, responses)
	in := report.Input{
		Lead: types.LeadData{
			Company:  reportCompany,
			Size:     reportSize,
			Category: reportCategory,
		},
		Scores:    eval.Scores,
		Tier:      eval.Tier,
		Strongest: eval.Ranking.Strongest,
		Weakest:   eval.Ranking.Weakest,
	}

	out := cmd.OutOrStdout()
	if reportPrompt {
		_, err := fmt.Fprintln(out, composer.Prompt(in))
		return err
	}

	rpt, outcome := composer.ComposeWithOutcome(ctx, in)
	if outcome != report.OutcomeGenerated {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using templated report (%s)\n", outcome)
	}

	if reportPretty {
		card := eval.ScoreResponse(c)
		printer := observability.NewPrinter(out)
		printer.PrintScorecard(&card)
		printer.PrintReport(&rpt)
		return nil
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rpt)
}
