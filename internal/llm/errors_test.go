package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassify(t *testing.T) {
	apiErr, ok := apierror.FromError(&googleapi.Error{Code: 429, Message: "quota"})
	require.True(t, ok)

	tests := []struct {
		name     string
		err      error
		expected FailureKind
	}{
		{name: "deadline", err: context.DeadlineExceeded, expected: FailureTimeout},
		{name: "wrapped deadline", err: fmt.Errorf("call: %w", context.DeadlineExceeded), expected: FailureTimeout},
		{name: "googleapi 429", err: &googleapi.Error{Code: 429}, expected: FailureRateLimited},
		{name: "wrapped googleapi 429", err: fmt.Errorf("generate: %w", &googleapi.Error{Code: 429}), expected: FailureRateLimited},
		{name: "apierror 429", err: apiErr, expected: FailureRateLimited},
		{name: "grpc resource exhausted", err: status.Error(codes.ResourceExhausted, "quota"), expected: FailureRateLimited},
		{name: "grpc deadline", err: status.Error(codes.DeadlineExceeded, "slow"), expected: FailureTimeout},
		{name: "googleapi 500", err: &googleapi.Error{Code: 500}, expected: FailureUpstream},
		{name: "plain error", err: errors.New("connection refused"), expected: FailureUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.err))
		})
	}
}

func TestKindOf_UsesGenerationErrorKind(t *testing.T) {
	err := fmt.Errorf("compose: %w", &GenerationError{Kind: FailureEmptyResponse, Message: "no candidates"})
	assert.Equal(t, FailureEmptyResponse, KindOf(err))
	assert.Equal(t, FailureRateLimited, KindOf(&googleapi.Error{Code: 429}))
}

func TestGenerationError_Message(t *testing.T) {
	cause := errors.New("boom")
	err := &GenerationError{Kind: FailureUpstream, Message: "failed to generate content", Cause: cause}
	assert.Equal(t, "generation error (upstream_error): failed to generate content: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := &GenerationError{Kind: FailureEmptyResponse, Message: "no candidates in response"}
	assert.Equal(t, "generation error (empty_response): no candidates in response", bare.Error())
}
