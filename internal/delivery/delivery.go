// Package delivery hands finished submissions to external sinks (email, spreadsheet webhook).
// Sink failures never change the outcome of a submission; they are logged and counted.
package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/revops-assessment/internal/types"
)

// Submission is a completed, scored and reported assessment.
type Submission struct {
	ID         string
	ReceivedAt time.Time
	Lead       types.LeadData
	Scores     types.ScoreSet
	Tier       types.Tier
	Responses  types.Responses
	Report     types.Report
	ClientIP   string
	UserAgent  string
}

// NewSubmission stamps a submission with a fresh id and the current time.
func NewSubmission(lead types.LeadData, scores types.ScoreSet, tier types.Tier, responses types.Responses, report types.Report) Submission {
	return Submission{
		ID:         uuid.NewString(),
		ReceivedAt: time.Now().UTC(),
		Lead:       lead,
		Scores:     scores,
		Tier:       tier,
		Responses:  responses,
		Report:     report,
	}
}

// Sink delivers a submission to one external destination.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, sub Submission) error
}

// Error represents a failed delivery.
type Error struct {
	Sink    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s delivery failed: %s: %v", e.Sink, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s delivery failed: %s", e.Sink, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
