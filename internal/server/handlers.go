package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/revops-assessment/internal/observability"
	"github.com/jonathan/revops-assessment/internal/pipeline"
	"github.com/jonathan/revops-assessment/internal/scoring"
	"github.com/jonathan/revops-assessment/internal/types"
)

// Submission status labels.
const (
	statusSuccess = "success"
	statusInvalid = "invalid"
	statusError   = "error"
)

// CatalogSection is a section as exposed by GET /api/catalog.
type CatalogSection struct {
	types.Section
	MaxScore int `json:"max_score"`
}

// CatalogResponse describes the questionnaire and its scoring bands.
type CatalogResponse struct {
	Sections      []CatalogSection `json:"sections"`
	MaxScore      int              `json:"max_score"`
	QuestionCount int              `json:"question_count"`
	Tiers         []types.Tier     `json:"tiers"`
}

func (s *Server) runOptions(r *http.Request, req types.SubmissionRequest) pipeline.RunOptions {
	return pipeline.RunOptions{
		Lead:          req.LeadData,
		Responses:     req.Responses,
		ClaimedScores: req.Scores,
		ClientIP:      clientIP(r),
		UserAgent:     r.UserAgent(),
	}
}

func submissionStatus(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return statusError
	}
	return statusInvalid
}

// handleSubmit validates a completed assessment, returns the analysis and
// delivers the submission in the background.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req types.SubmissionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		observability.SubmissionsTotal.WithLabelValues(statusInvalid).Inc()
		s.failureResponse(w, HTTPStatus(err), PublicMessage(err))
		return
	}

	result, err := s.pipeline.Run(r.Context(), s.runOptions(r, req))
	if err != nil {
		observability.SubmissionsTotal.WithLabelValues(submissionStatus(err)).Inc()
		s.logger.Info("submission rejected", zap.Error(err))
		s.failureResponse(w, HTTPStatus(err), PublicMessage(err))
		return
	}

	observability.SubmissionsTotal.WithLabelValues(statusSuccess).Inc()
	s.logger.Info("submission accepted",
		zap.String("submission_id", result.Submission.ID),
		zap.Int("total", result.Submission.Scores.Total),
		zap.String("tier", result.Submission.Tier.ID),
		zap.String("report", string(result.Outcome)))

	report := result.Submission.Report
	s.jsonResponse(w, http.StatusOK, types.SubmissionResponse{Success: true, Analysis: &report})
	s.dispatch(result.Submission)
}

// handleSubmitStream runs a submission and streams progress via SSE
func (s *Server) handleSubmitStream(w http.ResponseWriter, r *http.Request) {
	var req types.SubmissionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		observability.SubmissionsTotal.WithLabelValues(statusInvalid).Inc()
		s.failureResponse(w, HTTPStatus(err), PublicMessage(err))
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.failureResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.runOptions(r, req)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteStep(event); err != nil {
			s.logger.Warn("error writing SSE event", zap.Error(err))
		}
	}

	result, err := s.pipeline.Run(r.Context(), opts)
	if err != nil {
		observability.SubmissionsTotal.WithLabelValues(submissionStatus(err)).Inc()
		sse.WriteError(PublicMessage(err))
		return
	}

	observability.SubmissionsTotal.WithLabelValues(statusSuccess).Inc()
	report := result.Submission.Report
	sse.WriteComplete(result.Submission.ID, types.SubmissionResponse{Success: true, Analysis: &report})
	s.dispatch(result.Submission)
}

// handleScore returns the score preview for a set of responses.
// Partial response sets are accepted; unanswered questions score zero.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), PublicMessage(err))
		return
	}

	c := s.pipeline.Catalog()
	responses, err := types.ParseResponses(req.Responses, c)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), PublicMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, pipeline.Evaluate(c, responses).ScoreResponse(c))
}

// handleCatalog returns the questionnaire definition.
func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	c := s.pipeline.Catalog()
	sections := c.Sections()
	resp := CatalogResponse{
		Sections:      make([]CatalogSection, 0, len(sections)),
		MaxScore:      c.GlobalMax(),
		QuestionCount: c.QuestionCount(),
		Tiers:         scoring.Tiers(c),
	}
	for _, sec := range sections {
		resp.Sections = append(resp.Sections, CatalogSection{Section: sec, MaxScore: sec.MaxScore()})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
