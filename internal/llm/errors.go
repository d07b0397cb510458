package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrMissingAPIKey is returned when a client is constructed without a credential.
var ErrMissingAPIKey = errors.New("API key is required")

// FailureKind classifies why a generation call did not produce text.
type FailureKind string

// Failure kinds. Rate limiting is expected under load and is kept apart from
// unexpected upstream failures in logs and metrics.
const (
	FailureTimeout       FailureKind = "timeout"
	FailureRateLimited   FailureKind = "rate_limited"
	FailureEmptyResponse FailureKind = "empty_response"
	FailureUpstream      FailureKind = "upstream_error"
)

// GenerationError represents a failed call to the generation backend
type GenerationError struct {
	Kind    FailureKind
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation error (%s): %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// KindOf returns the failure kind carried by err, classifying it if needed.
func KindOf(err error) FailureKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return Classify(err)
}

// Classify maps a transport or API error to a FailureKind.
func Classify(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPCode() == http.StatusTooManyRequests || apiErr.GRPCStatus().Code() == codes.ResourceExhausted {
			return FailureRateLimited
		}
		if apiErr.GRPCStatus().Code() == codes.DeadlineExceeded {
			return FailureTimeout
		}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusTooManyRequests {
		return FailureRateLimited
	}

	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.ResourceExhausted:
			return FailureRateLimited
		case codes.DeadlineExceeded:
			return FailureTimeout
		}
	}

	return FailureUpstream
}
