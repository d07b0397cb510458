// Package report composes the narrative analysis for a completed assessment.
//
// A Composer asks the configured generator for a JSON report and falls back to a
// deterministic template whenever the generator is absent, slow, rate limited or
// returns anything that does not match the report shape. Compose never fails.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/llm"
	"github.com/jonathan/revops-assessment/internal/observability"
	"github.com/jonathan/revops-assessment/internal/schemas"
	"github.com/jonathan/revops-assessment/internal/types"
)

// Outcome records which path produced a report.
type Outcome string

// Composition outcomes. Every outcome except OutcomeGenerated returns the fallback report.
const (
	OutcomeGenerated     Outcome = "generated"
	OutcomeUnconfigured  Outcome = "unconfigured"
	OutcomeRateLimited   Outcome = "rate_limited"
	OutcomeTimeout       Outcome = "timeout"
	OutcomeUpstreamError Outcome = "upstream_error"
	OutcomeEmptyResponse Outcome = "empty_response"
	OutcomeMalformed     Outcome = "malformed"
)

// Input is everything a report is composed from.
type Input struct {
	Lead      types.LeadData
	Scores    types.ScoreSet
	Tier      types.Tier
	Strongest types.DimensionScore
	Weakest   types.DimensionScore
}

// Composer builds reports. It is safe for concurrent use.
type Composer struct {
	catalog   *catalog.Catalog
	client    llm.Client
	llmConfig *llm.Config
	variant   llm.Variant
	templates *templates
	logger    *zap.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithClient sets the generator. A nil client means generation is unconfigured.
func WithClient(client llm.Client) Option {
	return func(c *Composer) { c.client = client }
}

// WithLLMConfig sets the model, sampling and timeout configuration.
func WithLLMConfig(cfg *llm.Config) Option {
	return func(c *Composer) {
		if cfg != nil {
			c.llmConfig = cfg
		}
	}
}

// WithVariant selects the prompt and fallback phrasing.
func WithVariant(variant llm.Variant) Option {
	return func(c *Composer) { c.variant = variant }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewComposer creates a Composer for the catalog. Templates are loaded eagerly
// so a missing template is a startup error rather than a request-time one.
func NewComposer(c *catalog.Catalog, opts ...Option) (*Composer, error) {
	composer := &Composer{
		catalog:   c,
		llmConfig: llm.DefaultConfig(),
		variant:   llm.VariantStandard,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(composer)
	}

	t, err := loadTemplates(string(composer.variant))
	if err != nil {
		return nil, fmt.Errorf("failed to load report templates for variant %s: %w", composer.variant, err)
	}
	composer.templates = t
	return composer, nil
}

// Generative reports whether a generator is configured.
func (c *Composer) Generative() bool {
	return c.client != nil
}

// Compose returns a structurally valid report for the input.
func (c *Composer) Compose(ctx context.Context, in Input) types.Report {
	report, _ := c.ComposeWithOutcome(ctx, in)
	return report
}

// ComposeWithOutcome is Compose that also reports which path produced the report.
func (c *Composer) ComposeWithOutcome(ctx context.Context, in Input) (types.Report, Outcome) {
	start := time.Now()
	data := templateData(c.catalog, in)

	report, outcome, err := c.generate(ctx, data)
	if outcome != OutcomeGenerated {
		report = c.templates.fallback(data)
	}

	c.record(outcome, err, time.Since(start))
	return report, outcome
}

// Fallback returns the deterministic report for the input.
func (c *Composer) Fallback(in Input) types.Report {
	return c.templates.fallback(templateData(c.catalog, in))
}

// Prompt returns the generator prompt for the input.
func (c *Composer) Prompt(in Input) string {
	return c.templates.buildPrompt(templateData(c.catalog, in))
}

func (c *Composer) generate(ctx context.Context, data map[string]string) (types.Report, Outcome, error) {
	if c.client == nil {
		return types.Report{}, OutcomeUnconfigured, nil
	}

	callCtx := ctx
	if c.llmConfig.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.llmConfig.Timeout)
		defer cancel()
	}

	raw, err := c.client.GenerateJSON(callCtx, c.templates.buildPrompt(data), c.llmConfig.Options(c.variant))
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return types.Report{}, OutcomeTimeout, err
		}
		return types.Report{}, outcomeFor(llm.KindOf(err)), err
	}

	report, err := decode(raw)
	if err != nil {
		return types.Report{}, OutcomeMalformed, err
	}
	return report, OutcomeGenerated, nil
}

func outcomeFor(kind llm.FailureKind) Outcome {
	switch kind {
	case llm.FailureRateLimited:
		return OutcomeRateLimited
	case llm.FailureTimeout:
		return OutcomeTimeout
	case llm.FailureEmptyResponse:
		return OutcomeEmptyResponse
	default:
		return OutcomeUpstreamError
	}
}

// decode parses generator output strictly: it must be one JSON object matching the report schema.
func decode(raw string) (types.Report, error) {
	raw = llm.CleanJSONBlock(raw)
	if raw == "" {
		return types.Report{}, errors.New("empty document")
	}
	if err := schemas.ValidateReport(raw); err != nil {
		return types.Report{}, err
	}

	var report types.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return types.Report{}, fmt.Errorf("failed to decode report: %w", err)
	}

	report.Summary = strings.TrimSpace(report.Summary)
	for _, items := range [][]types.Insight{report.Risks, report.Wins} {
		for i := range items {
			items[i].Title = strings.TrimSpace(items[i].Title)
			items[i].Desc = strings.TrimSpace(items[i].Desc)
		}
	}
	if !report.IsComplete() {
		return types.Report{}, errors.New("report has blank fields")
	}
	return report, nil
}

func (c *Composer) record(outcome Outcome, err error, elapsed time.Duration) {
	observability.ReportOutcomes.WithLabelValues(string(outcome), string(c.variant)).Inc()
	observability.ReportDuration.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())

	fields := []zap.Field{
		zap.String("outcome", string(outcome)),
		zap.String("variant", string(c.variant)),
		zap.Duration("duration", elapsed),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	switch outcome {
	case OutcomeGenerated:
		c.logger.Debug("report generated", fields...)
	case OutcomeUnconfigured:
		c.logger.Info("generator not configured, using fallback report", fields...)
	case OutcomeRateLimited, OutcomeTimeout:
		c.logger.Warn("generator unavailable, using fallback report", fields...)
	default:
		c.logger.Error("report generation failed, using fallback report", fields...)
	}
}
