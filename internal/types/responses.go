package types

import (
	"fmt"
	"sort"
	"strings"
)

// QuestionSet is the view of the catalog needed to validate responses.
type QuestionSet interface {
	HasQuestion(id string) bool
	QuestionIDs() []string
}

// Responses maps question IDs to answers in {0, 1, 2}.
// An absent key means the question is unanswered.
type Responses map[string]int

// ResponseError describes why a raw response map was rejected.
type ResponseError struct {
	QuestionID string
	Value      int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("invalid response for %q: %s", e.QuestionID, e.Message)
}

// IncompleteError lists questions that have no answer.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("assessment incomplete: %d unanswered question(s): %s", len(e.Missing), strings.Join(e.Missing, ", "))
}

// ParseResponses validates a raw answer map against the question set.
// Unknown question IDs and values outside {0, 1, 2} are rejected.
// Keys are checked in sorted order so the reported error is stable.
func ParseResponses(raw map[string]int, questions QuestionSet) (Responses, error) {
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make(Responses, len(raw))
	for _, id := range ids {
		value := raw[id]
		if !questions.HasQuestion(id) {
			return nil, &ResponseError{QuestionID: id, Value: value, Message: "unknown question"}
		}
		if value < 0 || value > MaxResponseValue {
			return nil, &ResponseError{
				QuestionID: id,
				Value:      value,
				Message:    fmt.Sprintf("value %d outside 0-%d", value, MaxResponseValue),
			}
		}
		out[id] = value
	}
	return out, nil
}

// ParseCompleteResponses is ParseResponses plus a completeness check.
func ParseCompleteResponses(raw map[string]int, questions QuestionSet) (Responses, error) {
	responses, err := ParseResponses(raw, questions)
	if err != nil {
		return nil, err
	}
	if missing := responses.Missing(questions); len(missing) > 0 {
		return nil, &IncompleteError{Missing: missing}
	}
	return responses, nil
}

// Missing returns unanswered question IDs in catalog order.
func (r Responses) Missing(questions QuestionSet) []string {
	var missing []string
	for _, id := range questions.QuestionIDs() {
		if _, ok := r[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Complete reports whether every question has an answer.
func (r Responses) Complete(questions QuestionSet) bool {
	return len(r.Missing(questions)) == 0
}
