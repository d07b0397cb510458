// Package pipeline orchestrates an assessment from raw responses to a finished, reported submission.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/delivery"
	"github.com/jonathan/revops-assessment/internal/ranking"
	"github.com/jonathan/revops-assessment/internal/report"
	"github.com/jonathan/revops-assessment/internal/scoring"
	"github.com/jonathan/revops-assessment/internal/types"
)

// Step names reported through ProgressCallback.
const (
	StepValidate = "validate"
	StepScore    = "score"
	StepReport   = "report"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Evaluation is the local, deterministic part of an assessment.
type Evaluation struct {
	Scores  types.ScoreSet
	Tier    types.Tier
	Ranking types.Ranking
}

// Evaluate scores responses, classifies the total and ranks the dimensions.
func Evaluate(c *catalog.Catalog, responses types.Responses) Evaluation {
	scores := scoring.Score(c, responses)
	return Evaluation{
		Scores:  scores,
		Tier:    scoring.Classify(c, scores.Total),
		Ranking: ranking.RankDimensions(c, scores),
	}
}

// ScoreResponse renders the evaluation as the score preview.
func (e Evaluation) ScoreResponse(c *catalog.Catalog) types.ScoreResponse {
	return types.ScoreResponse{
		Scores:     e.Scores,
		MaxScore:   c.GlobalMax(),
		Percent:    scoring.Percent(e.Scores.Total, c.GlobalMax()),
		Tier:       e.Tier,
		Strongest:  e.Ranking.Strongest,
		Weakest:    e.Ranking.Weakest,
		Dimensions: e.Ranking.Dimensions,
	}
}

// RunOptions holds the inputs of one submission.
type RunOptions struct {
	Lead types.LeadData
	// Responses are the raw answers; they are validated against the catalog.
	Responses map[string]int
	// ClaimedScores are the client's own totals, compared for diagnostics only.
	ClaimedScores *types.ScoreSet
	ClientIP      string
	UserAgent     string
	OnProgress    ProgressCallback
}

// Result is a finished submission plus how its report was produced.
type Result struct {
	Submission delivery.Submission
	Evaluation Evaluation
	Outcome    report.Outcome
}

// Pipeline runs submissions against one catalog and composer.
type Pipeline struct {
	catalog  *catalog.Catalog
	composer *report.Composer
	logger   *zap.Logger
}

// New creates a Pipeline.
func New(c *catalog.Catalog, composer *report.Composer, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{catalog: c, composer: composer, logger: logger}
}

// Catalog returns the catalog the pipeline scores against.
func (p *Pipeline) Catalog() *catalog.Catalog {
	return p.catalog
}

func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// Run validates, scores and reports one submission. Invalid lead data or
// responses are returned as errors; generator failures never are.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	lead := opts.Lead.Normalize()
	if err := lead.Validate(); err != nil {
		return nil, err
	}
	responses, err := types.ParseCompleteResponses(opts.Responses, p.catalog)
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, StepValidate, "lead and responses validated", nil)

	eval := Evaluate(p.catalog, responses)
	if opts.ClaimedScores != nil && !opts.ClaimedScores.Equal(eval.Scores) {
		p.logger.Warn("client scores differ from recomputed scores",
			zap.Int("claimed_total", opts.ClaimedScores.Total),
			zap.Int("total", eval.Scores.Total))
	}
	emitProgress(&opts, StepScore, fmt.Sprintf("scored %d/%d (%s)", eval.Scores.Total, p.catalog.GlobalMax(), eval.Tier.Label), eval.ScoreResponse(p.catalog))

	rpt, outcome := p.composer.ComposeWithOutcome(ctx, report.Input{
		Lead:      lead,
		Scores:    eval.Scores,
		Tier:      eval.Tier,
		Strongest: eval.Ranking.Strongest,
		Weakest:   eval.Ranking.Weakest,
	})
	emitProgress(&opts, StepReport, fmt.Sprintf("report composed (%s)", outcome), rpt)

	sub := delivery.NewSubmission(lead, eval.Scores, eval.Tier, responses, rpt)
	sub.ClientIP = opts.ClientIP
	sub.UserAgent = opts.UserAgent

	return &Result{Submission: sub, Evaluation: eval, Outcome: outcome}, nil
}
